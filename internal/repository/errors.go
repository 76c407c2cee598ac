package repository

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a local scan over a successful response finds no match
	ErrNotFound = errors.New("not found")

	// ErrAmbiguous is returned when a name lookup matches more than one remote entity
	ErrAmbiguous = errors.New("ambiguous result")

	// ErrInvalidArgument is returned when the caller supplies an invalid or incomplete set of inputs
	ErrInvalidArgument = errors.New("invalid argument")
)

// RemoteError is returned when the TestLink service reports a failure for a
// well-formed request. Message is the service text, unmodified.
type RemoteError struct {
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// NewRemoteError builds a RemoteError from a formatted message.
func NewRemoteError(format string, args ...any) *RemoteError {
	return &RemoteError{Message: fmt.Sprintf(format, args...)}
}

// IsRemote reports whether err carries a RemoteError.
func IsRemote(err error) bool {
	var remoteErr *RemoteError
	return errors.As(err, &remoteErr)
}

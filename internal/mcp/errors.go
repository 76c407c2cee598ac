package mcp

import (
	"errors"
	"fmt"

	"github.com/ganot/tlink/internal/repository"
	"github.com/ganot/tlink/internal/transport"
)

// APIError represents an MCP error response.
type APIError struct {
	Code         string `json:"code"`
	Message      string `json:"message"`
	Details      any    `json:"details,omitempty"`
	RecoveryHint string `json:"recovery_hint,omitempty"`
}

func (e *APIError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.RecoveryHint)
}

// MapError maps domain errors to MCP error codes. Unknown errors map to nil.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	var remoteErr *repository.RemoteError
	switch {
	case errors.Is(err, repository.ErrInvalidArgument):
		return &APIError{Code: "INVALID_ARGUMENT", Message: err.Error(), RecoveryHint: "Check the tool arguments"}
	case errors.Is(err, repository.ErrAmbiguous):
		return &APIError{Code: "AMBIGUOUS", Message: err.Error(), RecoveryHint: "Use the internal or external id instead of the name"}
	case errors.Is(err, repository.ErrNotFound):
		return &APIError{Code: "NOT_FOUND", Message: err.Error(), RecoveryHint: "Check name spelling"}
	case errors.Is(err, transport.ErrUnauthorized):
		return &APIError{Code: "UNAUTHORIZED", Message: err.Error(), RecoveryHint: "Configure a valid TestLink dev key"}
	case errors.As(err, &remoteErr):
		return &APIError{Code: "REMOTE_ERROR", Message: remoteErr.Message}
	default:
		return nil
	}
}

func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}

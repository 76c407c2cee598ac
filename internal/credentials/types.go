package credentials

import (
	"context"
	"errors"
	"fmt"
)

const (
	// ServiceName groups every secret of this tool in the OS credential store.
	ServiceName = "tlink"

	// DevKeyName is the account the TestLink developer key is stored under.
	DevKeyName = "dev-key"
)

var (
	// ErrUnsupported is returned on platforms without a credential store backend
	ErrUnsupported = errors.New("credential store not supported on this OS")

	// ErrNotSet is returned when no secret is stored under the requested name
	ErrNotSet = errors.New("secret not set")

	// ErrNoDevKey is returned when neither the configuration nor the store holds a dev key
	ErrNoDevKey = errors.New("no TestLink dev key configured")
)

// Store keeps secrets. Implementations must never log secret values.
type Store interface {
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name, value string) error
	Unset(ctx context.Context, name string) error
}

// New returns the credential store of the current platform.
func New() Store {
	return newKeychainStore()
}

// DevKey returns configured when it is set, else the key held by store.
func DevKey(ctx context.Context, store Store, configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	if store == nil {
		return "", ErrNoDevKey
	}
	key, err := store.Get(ctx, DevKeyName)
	switch {
	case errors.Is(err, ErrNotSet), errors.Is(err, ErrUnsupported):
		return "", ErrNoDevKey
	case err != nil:
		return "", fmt.Errorf("reading dev key: %w", err)
	case key == "":
		return "", ErrNoDevKey
	}
	return key, nil
}

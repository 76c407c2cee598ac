//go:build !darwin

package credentials

import "context"

type unsupportedStore struct{}

func newKeychainStore() Store { return unsupportedStore{} }

func (unsupportedStore) Get(context.Context, string) (string, error) {
	return "", ErrUnsupported
}

func (unsupportedStore) Set(context.Context, string, string) error {
	return ErrUnsupported
}

func (unsupportedStore) Unset(context.Context, string) error {
	return ErrUnsupported
}

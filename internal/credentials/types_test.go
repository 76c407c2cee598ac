package credentials_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ganot/tlink/internal/credentials"
	"github.com/stretchr/testify/require"
)

type mapStore map[string]string

func (m mapStore) Get(_ context.Context, name string) (string, error) {
	v, ok := m[name]
	if !ok {
		return "", credentials.ErrNotSet
	}
	return v, nil
}

func (m mapStore) Set(_ context.Context, name, value string) error {
	m[name] = value
	return nil
}

func (m mapStore) Unset(_ context.Context, name string) error {
	delete(m, name)
	return nil
}

type brokenStore struct{ mapStore }

func (brokenStore) Get(context.Context, string) (string, error) {
	return "", errors.New("user interaction is not allowed")
}

func TestDevKey(t *testing.T) {
	ctx := context.Background()

	key, err := credentials.DevKey(ctx, mapStore{credentials.DevKeyName: "stored"}, "configured")
	require.NoError(t, err)
	require.Equal(t, "configured", key)

	key, err = credentials.DevKey(ctx, mapStore{credentials.DevKeyName: "stored"}, "")
	require.NoError(t, err)
	require.Equal(t, "stored", key)

	_, err = credentials.DevKey(ctx, mapStore{}, "")
	require.ErrorIs(t, err, credentials.ErrNoDevKey)

	_, err = credentials.DevKey(ctx, nil, "")
	require.ErrorIs(t, err, credentials.ErrNoDevKey)

	_, err = credentials.DevKey(ctx, brokenStore{}, "")
	require.ErrorContains(t, err, "user interaction is not allowed")
}

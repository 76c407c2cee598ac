package transport

import (
	"context"
	"errors"
)

// ErrUnauthorized indicates a missing developer key.
var ErrUnauthorized = errors.New("unauthorized: developer key is required")

// DevKeyArg is the argument name TestLink reads the developer key from.
const DevKeyArg = "devKey"

// KeyedCaller adds the fixed developer key to every call's arguments.
type KeyedCaller struct {
	next   Caller
	devKey string
}

// WithDevKey wraps next so every call carries devKey.
func WithDevKey(next Caller, devKey string) (*KeyedCaller, error) {
	if devKey == "" {
		return nil, ErrUnauthorized
	}
	return &KeyedCaller{next: next, devKey: devKey}, nil
}

// Call copies args, sets the developer key and forwards the call.
func (k *KeyedCaller) Call(ctx context.Context, method string, args map[string]any) (any, error) {
	keyed := make(map[string]any, len(args)+1)
	for name, value := range args {
		keyed[name] = value
	}
	keyed[DevKeyArg] = k.devKey
	return k.next.Call(ctx, method, keyed)
}

//go:build darwin

package credentials

import (
	"context"
	"errors"
	"fmt"

	keychain "github.com/keybase/go-keychain"
)

// keychainStore keeps secrets as generic passwords under Service=tlink and
// Account=<name>.
type keychainStore struct{}

func newKeychainStore() Store { return keychainStore{} }

func (keychainStore) Get(_ context.Context, name string) (string, error) {
	q := keychain.NewItem()
	q.SetSecClass(keychain.SecClassGenericPassword)
	q.SetService(ServiceName)
	q.SetAccount(name)
	q.SetMatchLimit(keychain.MatchLimitOne)
	q.SetReturnData(true)
	rr, err := keychain.QueryItem(q)
	if err != nil {
		return "", fmt.Errorf("keychain get: %w", err)
	}
	if len(rr) == 0 || rr[0].Data == nil {
		return "", fmt.Errorf("%w: %s", ErrNotSet, name)
	}
	return string(rr[0].Data), nil
}

func (keychainStore) Set(_ context.Context, name, value string) error {
	query := keychain.NewItem()
	query.SetSecClass(keychain.SecClassGenericPassword)
	query.SetService(ServiceName)
	query.SetAccount(name)

	item := keychain.NewItem()
	item.SetSecClass(keychain.SecClassGenericPassword)
	item.SetService(ServiceName)
	item.SetAccount(name)
	item.SetLabel("tlink: " + name)
	item.SetData([]byte(value))
	item.SetAccessible(keychain.AccessibleAfterFirstUnlock)

	err := keychain.UpdateItem(query, item)
	if errors.Is(err, keychain.ErrorItemNotFound) {
		err = keychain.AddItem(item)
	}
	if err != nil {
		return fmt.Errorf("keychain set: %w", err)
	}
	return nil
}

func (keychainStore) Unset(_ context.Context, name string) error {
	del := keychain.NewItem()
	del.SetSecClass(keychain.SecClassGenericPassword)
	del.SetService(ServiceName)
	del.SetAccount(name)
	err := keychain.DeleteItem(del)
	if errors.Is(err, keychain.ErrorItemNotFound) {
		return fmt.Errorf("%w: %s", ErrNotSet, name)
	}
	if err != nil {
		return fmt.Errorf("keychain unset: %w", err)
	}
	return nil
}

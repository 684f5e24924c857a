// Package auth stores the staffdesk API token in the OS keychain. It holds
// tokens only; obtaining one is up to the operator.
package auth

import (
	"errors"

	"nathanbeddoewebdev/staffdesk/internal/util"
)

const ServiceName = "staffdesk"

// DefaultAccount is the keychain account used when no profile is given.
const DefaultAccount = "default"

var ErrTokenNotFound = errors.New("auth token not found")

type Store interface {
	SetToken(account string, token string) error
	GetToken(account string) (string, error)
	DeleteToken(account string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeAccount normalizes an account name for consistent key lookup.
// An empty name maps to DefaultAccount.
func NormalizeAccount(account string) string {
	key := util.NormalizeKey(account)
	if key == "" {
		return DefaultAccount
	}
	return key
}

// TokenOrEmpty returns the stored token for account, or "" when none is
// stored. Other keychain errors are returned.
func TokenOrEmpty(store Store, account string) (string, error) {
	token, err := store.GetToken(account)
	if errors.Is(err, ErrTokenNotFound) {
		return "", nil
	}
	return token, err
}

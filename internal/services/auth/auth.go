// Package auth stores the optional gateway bearer token in the OS keychain.
package auth

import (
	"errors"

	"ironrod/dash/internal/util"
)

const ServiceName = "ironrod"

// DefaultGateway is the keychain account used when no gateway name is given.
const DefaultGateway = "gateway"

var ErrTokenNotFound = errors.New("auth token not found")

type Store interface {
	SetToken(gateway string, token string) error
	GetToken(gateway string) (string, error)
	DeleteToken(gateway string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeGateway normalizes a gateway name for consistent key lookup.
// An empty name maps to DefaultGateway.
func NormalizeGateway(gateway string) string {
	if key := util.NormalizeKey(gateway); key != "" {
		return key
	}
	return DefaultGateway
}

// Lookup returns the stored token for gateway, or "" when none is stored.
// Other keychain errors are returned so callers can report them.
func Lookup(store Store, gateway string) (string, error) {
	token, err := store.GetToken(gateway)
	if errors.Is(err, ErrTokenNotFound) {
		return "", nil
	}
	return token, err
}

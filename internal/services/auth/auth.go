// Package auth keeps per-service API tokens in the OS keychain.
package auth

import (
	"errors"

	"nathanbeddoewebdev/homegrid/internal/util"
)

// ServiceName is the keychain service entries are filed under.
const ServiceName = "homegrid"

var ErrTokenNotFound = errors.New("auth token not found")

// Store reads and writes the API token of a configured service, keyed by
// service id.
type Store interface {
	SetToken(serviceID string, token string) error
	GetToken(serviceID string) (string, error)
	DeleteToken(serviceID string) error
}

// DefaultStore returns the standard auth store backed by the OS keychain.
func DefaultStore() Store {
	return NewKeyringStore(ServiceName)
}

// NormalizeServiceID normalizes a service id for consistent key lookup.
func NormalizeServiceID(id string) string {
	return util.NormalizeKey(id)
}

// TokenOrEmpty returns the stored token for serviceID, or "" when none is
// stored. Other store errors are returned.
func TokenOrEmpty(s Store, serviceID string) (string, error) {
	if s == nil {
		return "", nil
	}
	token, err := s.GetToken(serviceID)
	if errors.Is(err, ErrTokenNotFound) {
		return "", nil
	}
	return token, err
}

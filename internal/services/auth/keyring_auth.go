package auth

import (
	"errors"

	"github.com/zalando/go-keyring"
)

type KeyringStore struct {
	serviceName string
}

func NewKeyringStore(serviceName string) *KeyringStore {
	if serviceName == "" {
		serviceName = ServiceName
	}
	return &KeyringStore{serviceName: serviceName}
}

func (k *KeyringStore) SetToken(serviceID string, token string) error {
	return keyring.Set(k.serviceName, NormalizeServiceID(serviceID), token)
}

func (k *KeyringStore) GetToken(serviceID string) (string, error) {
	token, err := keyring.Get(k.serviceName, NormalizeServiceID(serviceID))
	if err == nil {
		return token, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrTokenNotFound
	}
	return "", err
}

func (k *KeyringStore) DeleteToken(serviceID string) error {
	err := keyring.Delete(k.serviceName, NormalizeServiceID(serviceID))
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrTokenNotFound
	}
	return err
}

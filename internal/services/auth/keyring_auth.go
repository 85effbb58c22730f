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

func (k *KeyringStore) SetToken(gateway string, token string) error {
	return keyring.Set(k.serviceName, NormalizeGateway(gateway), token)
}

func (k *KeyringStore) GetToken(gateway string) (string, error) {
	token, err := keyring.Get(k.serviceName, NormalizeGateway(gateway))
	if err == nil {
		return token, nil
	}
	if errors.Is(err, keyring.ErrNotFound) {
		return "", ErrTokenNotFound
	}
	return "", err
}

func (k *KeyringStore) DeleteToken(gateway string) error {
	err := keyring.Delete(k.serviceName, NormalizeGateway(gateway))
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrTokenNotFound
	}
	return err
}

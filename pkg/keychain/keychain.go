package keychain

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"
)

// ServiceName имя сервиса, под которым секреты лежат в системном хранилище
const ServiceName = "smc-botcore"

var (
	// ErrNotFound секрета для аккаунта нет в хранилище
	ErrNotFound = errors.New("pkg.keychain: secret not found")
	// ErrEmptyAccount аккаунт не задан
	ErrEmptyAccount = errors.New("pkg.keychain: account is empty")
)

// Get читает секрет аккаунта из системного хранилища
func Get(account string) (string, error) {
	if account == "" {
		return "", ErrEmptyAccount
	}

	secret, err := keyring.Get(ServiceName, account)
	if errors.Is(err, keyring.ErrNotFound) {
		return "", fmt.Errorf("%w: account %q", ErrNotFound, account)
	}
	if err != nil {
		return "", fmt.Errorf("pkg.keychain: get %q: %w", account, err)
	}

	return secret, nil
}

// Set сохраняет секрет аккаунта, существующее значение перезаписывается
func Set(account, secret string) error {
	if account == "" {
		return ErrEmptyAccount
	}

	if err := keyring.Set(ServiceName, account, secret); err != nil {
		return fmt.Errorf("pkg.keychain: set %q: %w", account, err)
	}

	return nil
}

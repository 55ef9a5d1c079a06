// Package keyring keeps the password for a remote storage backend in the OS
// keyring so it never has to appear in the store location.
package keyring

import (
	"errors"
	"fmt"

	"github.com/zalando/go-keyring"

	"github.com/julianstephens/pado/internal/constants"
)

var (
	// ErrNotFound is returned when no password is stored
	ErrNotFound = errors.New("backend password not found in keyring")
	// ErrKeyringUnavailable is returned when the OS keyring cannot be reached
	ErrKeyringUnavailable = errors.New("OS keyring is not available")
)

func GetBackendPassword() (string, error) {
	pw, err := keyring.Get(constants.AppName, constants.DefaultKeyringUser)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("%w: %v", ErrKeyringUnavailable, err)
	}
	return pw, nil
}

func SetBackendPassword(pw string) error {
	if pw == "" {
		return errors.New("password cannot be empty")
	}
	if err := keyring.Set(constants.AppName, constants.DefaultKeyringUser, pw); err != nil {
		return fmt.Errorf("failed to store password in keyring: %w", err)
	}
	return nil
}

func DeleteBackendPassword() error {
	if err := keyring.Delete(constants.AppName, constants.DefaultKeyringUser); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete password from keyring: %w", err)
	}
	return nil
}

// ResolvePassword prefers an explicitly configured password and falls back
// to the keyring. A missing entry is not an error: the backend may not need one.
func ResolvePassword(configured string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	pw, err := GetBackendPassword()
	if errors.Is(err, ErrNotFound) {
		return "", nil
	}
	return pw, err
}

// IsAvailable is a best-effort probe of the OS keyring
func IsAvailable() bool {
	_, err := keyring.Get(constants.AppName, "test-availability")
	return err == nil || errors.Is(err, keyring.ErrNotFound)
}

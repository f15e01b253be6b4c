// Package secrets stores the hub admin password in the OS keyring, with a
// file fallback for systems without one.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zalando/go-keyring"
)

const (
	// KeyringService is the service name used in the OS keyring.
	KeyringService = "hubctl"
	// KeyringUser is the account name the password is filed under.
	KeyringUser = "hub-password"
	// FallbackFileName holds the password when no keyring is available.
	FallbackFileName = "password"
)

// StorePassword saves the hub password in the OS keyring, falling back to a
// mode-0600 file under ~/.hubctl when the keyring is unavailable.
func StorePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}
	if err := keyring.Set(KeyringService, KeyringUser, password); err == nil {
		return nil
	}
	return storePasswordInFile(password)
}

// LoadPassword retrieves the stored hub password. It returns an error when
// no password has been stored anywhere.
func LoadPassword() (string, error) {
	if password, err := keyring.Get(KeyringService, KeyringUser); err == nil {
		return password, nil
	}
	return loadPasswordFromFile()
}

// ClearPassword removes the stored password from both backends.
func ClearPassword() error {
	keyringErr := keyring.Delete(KeyringService, KeyringUser)
	fileErr := deletePasswordFile()
	if keyringErr != nil && fileErr != nil {
		return fmt.Errorf("failed to clear password from keyring (%v) and file (%v)", keyringErr, fileErr)
	}
	return nil
}

func passwordFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine home directory: %w", err)
	}
	return filepath.Join(home, ".hubctl", FallbackFileName), nil
}

func storePasswordInFile(password string) error {
	path, err := passwordFilePath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(password), 0600); err != nil {
		return fmt.Errorf("failed to write password file: %w", err)
	}
	return nil
}

func loadPasswordFromFile() (string, error) {
	path, err := passwordFilePath()
	if err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("no hub password found in keyring or file storage")
		}
		return "", fmt.Errorf("failed to read password file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

func deletePasswordFile() error {
	path, err := passwordFilePath()
	if err != nil {
		return err
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(path)
}

package client

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// tokenFileName is the fixed key the session token is stored under.
const tokenFileName = "devconnector_token"

// TokenStorage persists the session token in a file, playing the role
// durable browser storage does for the web client. Only the auth action
// layer writes to it.
type TokenStorage struct {
	dir string
}

// NewTokenStorage stores the token under dir, defaulting to the user config
// directory when dir is empty.
func NewTokenStorage(dir string) (*TokenStorage, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(base, "devconnector")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &TokenStorage{dir: dir}, nil
}

func (t *TokenStorage) path() string {
	return filepath.Join(t.dir, tokenFileName)
}

// Load returns the stored token, or "" when none is stored.
func (t *TokenStorage) Load() (string, error) {
	b, err := os.ReadFile(t.path())
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

// Save persists the token.
func (t *TokenStorage) Save(token string) error {
	return os.WriteFile(t.path(), []byte(token), 0o600)
}

// Clear removes the stored token. Clearing an empty storage is a no-op.
func (t *TokenStorage) Clear() error {
	err := os.Remove(t.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

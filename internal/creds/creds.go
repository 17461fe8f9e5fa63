// Package creds persists the bearer token between runs.
// The token is stored in ~/.config/shop/credentials.toml.
package creds

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Credentials holds the persisted session token.
type Credentials struct {
	AccessToken string `toml:"access_token"`
}

const defaultCredsPath = "~/.config/shop/credentials.toml"

// DefaultPath returns the default credentials file path.
func DefaultPath() string {
	return defaultCredsPath
}

// Load reads credentials from the given path. A missing or unreadable file
// degrades to empty credentials rather than failing startup.
func Load(path string) (Credentials, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Credentials{}, nil
	}

	raw, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Credentials{}, nil
		}
		return Credentials{}, nil // Graceful degradation
	}

	var c Credentials
	if err := toml.Unmarshal(raw, &c); err != nil {
		return Credentials{}, nil // Graceful degradation
	}
	return c, nil
}

// Save writes credentials to the given path, creating directories as needed.
func Save(path string, c Credentials) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create creds dir: %w", err)
	}

	raw, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal creds: %w", err)
	}
	if err := os.WriteFile(resolved, raw, 0o600); err != nil {
		return fmt.Errorf("write creds: %w", err)
	}
	return nil
}

// Clear removes the credentials file. Missing file is not an error.
func Clear(path string) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if err := os.Remove(resolved); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove creds: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if path == "" {
		path = defaultCredsPath
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	return path, nil
}

package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// MinPasswordLength is the shortest admin password accepted.
const MinPasswordLength = 8

var (
	ErrIncorrectPassword = errors.New("current password is incorrect")
	ErrWeakPassword      = errors.New("password must be at least 8 characters")
	ErrNotConfigured     = errors.New("admin password has not been set")
)

// FileCredentials stores the admin password hash in a single file.
// Files written by older versions hold the password in plain text; such a
// file is accepted once and rewritten as a hash on the first successful
// Verify.
type FileCredentials struct {
	path   string
	hasher Hasher
	mu     sync.Mutex
}

// NewFileCredentials creates credentials stored at path.
func NewFileCredentials(path string, hasher Hasher) *FileCredentials {
	return &FileCredentials{path: path, hasher: hasher}
}

// ValidateCredential checks if the password meets minimum requirements.
func ValidateCredential(password string) error {
	if len(password) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// Bootstrap sets the initial password when none is stored yet. It reports
// whether the password was written. An empty initial password is ignored.
func (c *FileCredentials) Bootstrap(initial string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, err := c.load(); !errors.Is(err, ErrNotConfigured) {
		return false, err
	}
	if initial == "" {
		return false, nil
	}
	if err := ValidateCredential(initial); err != nil {
		return false, err
	}
	if err := c.store(initial); err != nil {
		return false, err
	}
	slog.Info("Admin password initialized", "path", c.path)
	return true, nil
}

// Verify returns nil when password is the admin password.
func (c *FileCredentials) Verify(ctx context.Context, password string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.verify(password)
}

// Change replaces the admin password after verifying current.
func (c *FileCredentials) Change(ctx context.Context, current, next string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.verify(current); err != nil {
		return err
	}
	if err := ValidateCredential(next); err != nil {
		return err
	}
	return c.store(next)
}

func (c *FileCredentials) verify(password string) error {
	stored, err := c.load()
	if err != nil {
		return err
	}

	if c.hasher.Recognizes(stored) {
		return c.hasher.Compare(stored, password)
	}

	// Legacy plain-text file.
	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return ErrIncorrectPassword
	}
	if err := c.store(password); err != nil {
		slog.Warn("Failed to upgrade plain-text password file", "path", c.path, "error", err)
	} else {
		slog.Info("Upgraded plain-text password file to a hash", "path", c.path)
	}
	return nil
}

func (c *FileCredentials) load() (string, error) {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNotConfigured
	}
	if err != nil {
		return "", fmt.Errorf("failed to read password file: %w", err)
	}
	stored := strings.TrimSpace(string(data))
	if stored == "" {
		return "", ErrNotConfigured
	}
	return stored, nil
}

func (c *FileCredentials) store(password string) error {
	hashed, err := c.hasher.Hash(password)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(c.path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("failed to create password directory: %w", err)
		}
	}
	if err := os.WriteFile(c.path, []byte(hashed+"\n"), 0600); err != nil {
		return fmt.Errorf("failed to write password file: %w", err)
	}
	return nil
}

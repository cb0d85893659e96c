package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher defines how admin passwords are hashed and verified.
// This abstraction allows swapping hashing schemes (bcrypt, argon2, etc.)
// without changing the credentials store.
type Hasher interface {
	// Hash returns an encoded hash of password suitable for storage.
	Hash(password string) (string, error)

	// Compare returns nil when password matches hash.
	Compare(hash, password string) error

	// Recognizes reports whether stored looks like a hash this Hasher produced.
	Recognizes(stored string) bool
}

// BcryptHasher implements Hasher using bcrypt.
type BcryptHasher struct {
	// Cost is the bcrypt cost; zero means bcrypt.DefaultCost.
	Cost int
}

// Hash hashes password with bcrypt.
func (h BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare checks password against a bcrypt hash.
func (h BcryptHasher) Compare(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrIncorrectPassword
	}
	return nil
}

// Recognizes reports whether stored is a bcrypt hash.
func (h BcryptHasher) Recognizes(stored string) bool {
	_, err := bcrypt.Cost([]byte(stored))
	return err == nil
}

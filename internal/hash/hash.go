// Package hash wraps bcrypt for credential hashing. Each call salts
// independently, so two hashes of the same secret never match.
package hash

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor used for new hashes. Existing hashes
// carry their own cost and verify regardless.
const Cost = bcrypt.DefaultCost

// Password hashes the given secret. Empty or whitespace-only secrets
// are rejected before hashing.
func Password(secret string) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", errors.New("password is empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(secret), Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// Verify reports whether secret matches the stored hash. A malformed
// hash fails closed: the answer is false, never an error or a panic.
func Verify(hashed, secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(secret)) == nil
}

// Package password isolates the password hashing primitive from callers.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/rosterlab/memberd/internal/model"
)

var _ model.PasswordHasher = (*Hasher)(nil)

// Hasher hashes and verifies secrets with bcrypt. The salt is generated
// fresh on every Hash call and embedded in the resulting string.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the given bcrypt cost.
// A cost of 0 selects the library default.
func NewHasher(cost int) *Hasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash produces a salted one-way hash of plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches hash. A plain mismatch is
// (false, nil). A hash that bcrypt cannot parse is a data-integrity
// failure, not a silent false: the stored record is corrupted.
func (h *Hasher) Verify(plaintext, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %v", model.ErrDataIntegrity, err)
}

// Package secret holds the cryptographic leaves of the credential core:
// password hashing and random token generation.
package secret

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/ndanilin/accountd/internal/model"
)

var _ model.SecretHasher = (*Hasher)(nil)

// DefaultHashCost is the bcrypt work factor used when none is configured.
const DefaultHashCost = 12

var (
	// ErrHash is returned when computing a password hash fails. Fatal to
	// the operation; never skip hashing or retry silently.
	ErrHash = errors.New("password hashing failed")

	// ErrMalformedHash is returned when a stored hash record cannot be
	// parsed. A plain mismatch is not an error.
	ErrMalformedHash = errors.New("malformed password hash")
)

// Hasher produces and verifies salted password hashes. bcrypt embeds the
// salt and cost in the encoded record, so verification needs no extra
// state, and comparison is constant time.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher with the given bcrypt cost. Costs outside the
// supported range fall back to DefaultHashCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultHashCost
	}
	return &Hasher{cost: cost}
}

// Hash computes a salted hash of plaintext with a fresh random salt.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHash, err)
	}
	return string(hashed), nil
}

// Verify reports whether plaintext matches the stored salted hash. A
// mismatch returns (false, nil); only a record that cannot be parsed
// produces an error.
func (h *Hasher) Verify(plaintext, saltedHash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(saltedHash), []byte(plaintext))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("%w: %w", ErrMalformedHash, err)
}

// Package hash wraps bcrypt password hashing behind a small fixed contract:
// a non-deterministic salted hash and a constant-time verify.
package hash

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinCost is the lowest accepted work factor. Anything weaker is bumped up
// at construction time.
const MinCost = 10

// Hasher produces and checks bcrypt digests at a fixed work factor.
type Hasher struct {
	cost int
}

// NewHasher builds a Hasher. Costs below MinCost are raised to MinCost.
func NewHasher(cost int) *Hasher {
	if cost < MinCost {
		cost = MinCost
	}
	return &Hasher{cost: cost}
}

// Hash digests the plaintext with a per-call salt. Two calls with the same
// input produce different digests.
func (h *Hasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plaintext matches the stored digest.
func (h *Hasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

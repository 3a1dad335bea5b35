package security

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes and verifies passwords with a configurable bcrypt cost
type Hasher struct {
	cost int
}

// NewHasher creates a password hasher. Costs outside bcrypt's valid range
// fall back to the library default.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of a password
func (h *Hasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Check reports whether a password matches a stored hash
func (h *Hasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

package auth

import "golang.org/x/crypto/bcrypt"

// DefaultBcryptCost matches bcrypt's own default work factor.
const DefaultBcryptCost = bcrypt.DefaultCost

// HashPassword produces a salted bcrypt hash of the plaintext. cost
// values outside bcrypt's valid range fall back to the default.
func HashPassword(plaintext string, cost int) (string, error) {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword reports whether the plaintext matches the stored hash.
// Any mismatch, including a malformed stored hash, yields false rather
// than an error.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost is the bcrypt work factor. 12 keeps hashing around 250ms on
// current hardware, slow enough to blunt offline guessing.
const bcryptCost = 12

// HashPassword hashes a plaintext password with bcrypt. The salt is
// generated per call and embedded in the returned hash string.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the candidate password matches the stored
// bcrypt hash. A mismatch is a normal false, not an error.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

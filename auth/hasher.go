package auth

import (
	"github.com/ashishjangde/flip-weather/apperror"
	"golang.org/x/crypto/bcrypt"
)

// hashCost is the bcrypt work factor. bcrypt generates a fresh random salt per
// call and embeds it in the digest.
const hashCost = bcrypt.DefaultCost

// HashPassword hashes a plaintext password. A hashing failure is an internal
// error; it must never be confused with a wrong password.
func HashPassword(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", apperror.NewInternalError("failed to hash password", err)
	}
	return string(digest), nil
}

// CheckPassword reports whether plaintext matches the stored digest.
func CheckPassword(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

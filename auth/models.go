package auth

import "time"

// User is an identity record. PasswordHash never leaves the server: it is
// excluded from JSON and only populated by lookups that need to verify a
// password.
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

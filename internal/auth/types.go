package auth

import (
	"errors"
	"regexp"
	"time"
)

// emailPattern is a deliberately loose sanity check; the user store's
// unique constraint is the real gate.
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// maxEmailLength caps stored email addresses.
const maxEmailLength = 254

// IsValidEmail checks if an email address has a plausible format.
func IsValidEmail(email string) bool {
	return len(email) <= maxEmailLength && emailPattern.MatchString(email)
}

// User represents a registered account. The password hash is never serialised.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Sentinel errors for auth operations.
//
// ErrInvalidCredentials covers both "no such user" and "wrong password":
// the two must be externally indistinguishable so login attempts cannot
// enumerate registered emails.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailExists        = errors.New("email already registered")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrTokenInvalid       = errors.New("invalid token")
)

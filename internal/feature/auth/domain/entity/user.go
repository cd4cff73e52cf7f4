// Package entity defines the domain entities for the auth feature.
package entity

import (
	"regexp"
	"strings"
	"time"

	"shop_backend/internal/shared/apperr"
)

// Role is the authorization level of an account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// MinPasswordLength is the minimum length of a plaintext password before hashing.
const MinPasswordLength = 6

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// User represents a registered account.
type User struct {
	// ID is the 24-character hex identifier of the account.
	ID string

	// Email is stored trimmed and lowercased, and is unique across all users.
	Email string

	// Password is the bcrypt hash. Plaintext passwords are never stored.
	Password string

	// Role defaults to RoleUser.
	Role Role

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// IsValidEmail reports whether email has the shape local@domain.tld.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ParseRole converts s into a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// ValidatePassword checks the plaintext password before it is hashed.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return apperr.NewValidationError("password", "Password must be at least 6 characters")
	}
	return nil
}

// Validate checks the stored shape of the account.
func (u *User) Validate() error {
	if u.Email == "" {
		return apperr.NewValidationError("email", "Email is required")
	}
	if !IsValidEmail(u.Email) {
		return apperr.NewValidationError("email", "Invalid email format")
	}
	if u.Password == "" {
		return apperr.NewValidationError("password", "Password is required")
	}
	if _, ok := ParseRole(string(u.Role)); !ok {
		return apperr.NewValidationError("role", "role must be one of: user, admin")
	}
	return nil
}

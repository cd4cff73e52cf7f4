// Package usecase implements the business logic for the auth feature.
package usecase

import "shop_backend/internal/shared/apperr"

var (
	// ErrMissingCredentials is returned when email or password is empty on registration.
	ErrMissingCredentials = apperr.New(apperr.ErrInvalidInput, "Email and password are required")

	// ErrInvalidEmailFormat is returned when the email does not look like an address.
	ErrInvalidEmailFormat = apperr.New(apperr.ErrInvalidInput, "Invalid email format")

	// ErrEmailAlreadyExists is returned when attempting to create a user with an email that already exists.
	ErrEmailAlreadyExists = apperr.New(apperr.ErrConflict, "Email already registered")

	// ErrInvalidCredentials is returned for both an unknown email and a wrong password.
	ErrInvalidCredentials = apperr.New(apperr.ErrUnauthorized, "Invalid email or password")

	// ErrUserNotFound is returned when a user cannot be found by email.
	ErrUserNotFound = apperr.New(apperr.ErrNotFound, "User not found")

	// ErrInvalidRole is returned when a role outside user/admin is requested.
	ErrInvalidRole = apperr.New(apperr.ErrInvalidInput, "Role must be one of: user, admin")
)

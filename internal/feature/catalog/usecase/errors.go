// Package usecase implements the business logic for the catalog feature.
package usecase

import "shop_backend/internal/shared/apperr"

var (
	// ErrInvalidProductID is returned when the identifier is not a well-formed ObjectID.
	ErrInvalidProductID = apperr.New(apperr.ErrInvalidInput, "Invalid product ID")

	// ErrProductNotFound is returned when no product matches the identifier.
	ErrProductNotFound = apperr.New(apperr.ErrNotFound, "Product not found")

	// ErrMissingProductFields is returned when a required field is absent on creation.
	ErrMissingProductFields = apperr.New(apperr.ErrInvalidInput, "Missing required fields")
)

// Package usecase implements the business logic for the orders feature.
package usecase

import "shop_backend/internal/shared/apperr"

var (
	// ErrInvalidOrderID is returned when the identifier is not a well-formed ObjectID.
	ErrInvalidOrderID = apperr.New(apperr.ErrInvalidInput, "Invalid order ID")

	// ErrOrderNotFound is returned when no order matches the identifier.
	ErrOrderNotFound = apperr.New(apperr.ErrNotFound, "Order not found")

	// ErrEmptyOrder is returned when products is missing, not an array, or empty.
	ErrEmptyOrder = apperr.New(apperr.ErrInvalidInput, "Order must contain at least one product")

	// ErrMissingOrderFields is returned when customerEmail or total is absent on creation.
	ErrMissingOrderFields = apperr.New(apperr.ErrInvalidInput, "Missing required fields")

	// ErrInvalidStatus is returned when a status filter is outside the known set.
	ErrInvalidStatus = apperr.New(apperr.ErrInvalidInput, "Invalid status. Status must be one of: Pending, Processing, Delivered, Cancelled")

	// ErrInvalidLineItem is returned by checkout when a line item lacks productId or name,
	// or carries a non-numeric price or quantity.
	ErrInvalidLineItem = apperr.New(apperr.ErrInvalidInput, "Invalid product data in order")

	// ErrInvalidCustomerEmail is returned by checkout when customerEmail fails the address check.
	ErrInvalidCustomerEmail = apperr.New(apperr.ErrInvalidInput, "Valid email is required")

	// ErrInvalidTotal is returned by checkout when total is not a positive number.
	ErrInvalidTotal = apperr.New(apperr.ErrInvalidInput, "Valid order total is required")
)

// Package entity defines the domain entities for the catalog feature.
package entity

import (
	"strings"
	"time"

	"shop_backend/internal/shared/apperr"
)

// DefaultRating is applied when a product is created without a rating.
const DefaultRating = 4.5

// Product is a catalog item.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       float64
	Category    string
	ImageURL    string
	Rating      float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductFields carries a create or partial-update payload. Nil fields are absent.
type ProductFields struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
	ImageURL    *string
	Rating      *float64
}

// HasRequired reports whether every field required on creation is present and non-zero.
func (f ProductFields) HasRequired() bool {
	return nonEmpty(f.Name) && nonEmpty(f.Description) && nonEmpty(f.Category) &&
		nonEmpty(f.ImageURL) && f.Price != nil && *f.Price != 0
}

// Apply copies every present field onto p.
func (f ProductFields) Apply(p *Product) {
	if f.Name != nil {
		p.Name = *f.Name
	}
	if f.Description != nil {
		p.Description = *f.Description
	}
	if f.Price != nil {
		p.Price = *f.Price
	}
	if f.Category != nil {
		p.Category = *f.Category
	}
	if f.ImageURL != nil {
		p.ImageURL = *f.ImageURL
	}
	if f.Rating != nil {
		p.Rating = *f.Rating
	}
}

// Validate checks the required fields of a product.
func (p *Product) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return apperr.NewValidationError("name", "name is required")
	case strings.TrimSpace(p.Description) == "":
		return apperr.NewValidationError("description", "description is required")
	case strings.TrimSpace(p.Category) == "":
		return apperr.NewValidationError("category", "category is required")
	case strings.TrimSpace(p.ImageURL) == "":
		return apperr.NewValidationError("imageUrl", "imageUrl is required")
	}
	return nil
}

func nonEmpty(s *string) bool {
	return s != nil && *s != ""
}

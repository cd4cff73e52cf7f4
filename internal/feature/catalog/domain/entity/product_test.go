package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"shop_backend/internal/shared/apperr"
)

func ptr[T any](v T) *T { return &v }

func TestProductFields_HasRequired(t *testing.T) {
	t.Parallel()

	full := ProductFields{
		Name:        ptr("Mug"),
		Description: ptr("Ceramic mug"),
		Price:       ptr(12.5),
		Category:    ptr("kitchen"),
		ImageURL:    ptr("https://img/mug.png"),
	}

	tests := []struct {
		name   string
		mutate func(f *ProductFields)
		want   bool
	}{
		{"all present", func(f *ProductFields) {}, true},
		{"missing name", func(f *ProductFields) { f.Name = nil }, false},
		{"empty description", func(f *ProductFields) { f.Description = ptr("") }, false},
		{"missing price", func(f *ProductFields) { f.Price = nil }, false},
		{"zero price", func(f *ProductFields) { f.Price = ptr(0.0) }, false},
		{"missing category", func(f *ProductFields) { f.Category = nil }, false},
		{"missing image", func(f *ProductFields) { f.ImageURL = nil }, false},
		{"rating is optional", func(f *ProductFields) { f.Rating = nil }, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			f := full
			tt.mutate(&f)
			assert.Equal(t, tt.want, f.HasRequired())
		})
	}
}

func TestProductFields_Apply(t *testing.T) {
	t.Parallel()

	p := Product{Name: "Mug", Description: "d", Price: 1, Category: "c", ImageURL: "u", Rating: 4.5}
	ProductFields{Price: ptr(9.99), Rating: ptr(3.0)}.Apply(&p)

	assert.Equal(t, "Mug", p.Name)
	assert.Equal(t, 9.99, p.Price)
	assert.Equal(t, 3.0, p.Rating)
}

func TestProduct_Validate(t *testing.T) {
	t.Parallel()

	valid := Product{Name: "Mug", Description: "d", Price: 1, Category: "c", ImageURL: "u"}
	assert.NoError(t, valid.Validate())

	blank := valid
	blank.Name = "  "
	err := blank.Validate()
	var ve *apperr.ValidationError
	if assert.ErrorAs(t, err, &ve) {
		assert.Equal(t, "name", ve.Field)
	}

	noImage := valid
	noImage.ImageURL = ""
	assert.ErrorIs(t, noImage.Validate(), apperr.ErrInvalidInput)
}

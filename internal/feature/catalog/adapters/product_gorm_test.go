package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"shop_backend/internal/feature/catalog/domain/entity"
	"shop_backend/internal/feature/catalog/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "failed to initialize test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&ProductModel{}), "failed to migrate table")
	return db
}

func newProduct(name, category string) *entity.Product {
	return &entity.Product{
		Name:        name,
		Description: name + " description",
		Price:       9.5,
		Category:    category,
		ImageURL:    "https://img/" + name + ".png",
		Rating:      entity.DefaultRating,
	}
}

func TestProductGorm_CreateAndFind(t *testing.T) {
	repo := NewProductGorm(setupTestDB(t))
	ctx := context.Background()

	p := newProduct("mug", "kitchen")
	require.NoError(t, repo.Create(ctx, p))
	assert.Len(t, p.ID, 24)
	assert.False(t, p.CreatedAt.IsZero())

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Name, found.Name)
	assert.Equal(t, p.Description, found.Description)
	assert.Equal(t, p.Price, found.Price)
	assert.Equal(t, p.Category, found.Category)
	assert.Equal(t, p.ImageURL, found.ImageURL)
	assert.Equal(t, 4.5, found.Rating)

	_, err = repo.FindByID(ctx, "64b7f0c2a1b2c3d4e5f60718")
	assert.ErrorIs(t, err, usecase.ErrProductNotFound)
}

func TestProductGorm_ListByCategory(t *testing.T) {
	repo := NewProductGorm(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newProduct("mug", "kitchen")))
	require.NoError(t, repo.Create(ctx, newProduct("pan", "kitchen")))
	require.NoError(t, repo.Create(ctx, newProduct("lamp", "living")))

	all, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	kitchen, err := repo.ListByCategory(ctx, "kitchen")
	require.NoError(t, err)
	assert.Len(t, kitchen, 2)

	// 完全一致のみ
	none, err := repo.ListByCategory(ctx, "Kitchen")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestProductGorm_Update(t *testing.T) {
	repo := NewProductGorm(setupTestDB(t))
	ctx := context.Background()

	p := newProduct("mug", "kitchen")
	require.NoError(t, repo.Create(ctx, p))

	p.Price = 0
	p.Name = "big mug"
	require.NoError(t, repo.Update(ctx, p))

	found, err := repo.FindByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "big mug", found.Name)
	assert.Equal(t, 0.0, found.Price)

	missing := newProduct("ghost", "none")
	missing.ID = "64b7f0c2a1b2c3d4e5f60718"
	assert.ErrorIs(t, repo.Update(ctx, missing), usecase.ErrProductNotFound)
}

func TestProductGorm_Delete(t *testing.T) {
	repo := NewProductGorm(setupTestDB(t))
	ctx := context.Background()

	p := newProduct("mug", "kitchen")
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.Delete(ctx, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, p.ID), usecase.ErrProductNotFound)

	_, err := repo.FindByID(ctx, p.ID)
	assert.ErrorIs(t, err, usecase.ErrProductNotFound)
}

package adapters

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shop_backend/internal/feature/catalog/domain/entity"
)

// ProductModel is the GORM model for the products table.
type ProductModel struct {
	ID          string  `gorm:"primaryKey;size:24"`
	Name        string  `gorm:"size:255;not null"`
	Description string  `gorm:"type:text;not null"`
	Price       float64 `gorm:"not null"`
	Category    string  `gorm:"size:128;not null;index"`
	ImageURL    string  `gorm:"size:1024;not null"`
	Rating      float64 `gorm:"not null;default:4.5"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

func (m *ProductModel) toEntity() entity.Product {
	return entity.Product{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Category:    m.Category,
		ImageURL:    m.ImageURL,
		Rating:      m.Rating,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func productModelFromEntity(p *entity.Product) *ProductModel {
	return &ProductModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Rating:      p.Rating,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// productDocument is the BSON shape of a product in the products collection.
type productDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Description string             `bson:"description"`
	Price       float64            `bson:"price"`
	Category    string             `bson:"category"`
	ImageURL    string             `bson:"imageUrl"`
	Rating      float64            `bson:"rating"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

func (d *productDocument) toEntity() entity.Product {
	return entity.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       d.Price,
		Category:    d.Category,
		ImageURL:    d.ImageURL,
		Rating:      d.Rating,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// Package dto はcatalogフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"shop_backend/internal/feature/catalog/domain/entity"
)

// ProductRequest は商品の作成・更新リクエストです。未指定のフィールドはnilになります。
type ProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"imageUrl"`
	Rating      *float64 `json:"rating"`
}

// ToFields はリクエストをドメインのProductFieldsに変換します。
func (r ProductRequest) ToFields() entity.ProductFields {
	return entity.ProductFields{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Category:    r.Category,
		ImageURL:    r.ImageURL,
		Rating:      r.Rating,
	}
}

// ProductResponse は商品のレスポンス表現です。
type ProductResponse struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// NewProductResponse はエンティティからレスポンスを生成します。
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
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

// NewProductListResponse は商品一覧のレスポンスを生成します。空の場合も空配列を返します。
func NewProductListResponse(products []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, NewProductResponse(&products[i]))
	}
	return out
}

// MessageResponse はメッセージのみのレスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}

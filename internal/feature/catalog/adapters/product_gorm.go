// Package adapters はcatalogフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"shop_backend/internal/feature/catalog/domain/entity"
	"shop_backend/internal/feature/catalog/usecase"
	"shop_backend/internal/shared/objectid"
)

// productGorm はProductRepositoryインターフェースのGORM実装です。
type productGorm struct {
	db *gorm.DB
}

var _ usecase.ProductRepository = (*productGorm)(nil)

// NewProductGorm はproductGormの新しいインスタンスを生成します。
func NewProductGorm(db *gorm.DB) *productGorm {
	return &productGorm{db: db}
}

// Create は商品を追加し、IDとタイムスタンプをpに反映します。
func (r *productGorm) Create(ctx context.Context, p *entity.Product) error {
	if p.ID == "" {
		p.ID = objectid.New()
	}
	m := productModelFromEntity(p)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	p.CreatedAt, p.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

// FindByID はIDで商品を取得します。
func (r *productGorm) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	var m ProductModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProductNotFound
		}
		return nil, err
	}
	p := m.toEntity()
	return &p, nil
}

// List は全商品を作成順に返します。
func (r *productGorm) List(ctx context.Context) ([]entity.Product, error) {
	return r.find(r.db.WithContext(ctx).Order("created_at ASC"))
}

// ListByCategory はカテゴリが完全一致する商品を返します。
func (r *productGorm) ListByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	return r.find(r.db.WithContext(ctx).Where("category = ?", category).Order("created_at ASC"))
}

// Update は商品の全フィールドを上書きします。
func (r *productGorm) Update(ctx context.Context, p *entity.Product) error {
	m := productModelFromEntity(p)
	m.UpdatedAt = time.Now()
	// Selectで全カラムを指定し、ゼロ値も更新対象にする
	res := r.db.WithContext(ctx).Model(&ProductModel{ID: p.ID}).
		Select("name", "description", "price", "category", "image_url", "rating", "updated_at").
		Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrProductNotFound
	}
	p.UpdatedAt = m.UpdatedAt
	return nil
}

// Delete は商品を削除します。
func (r *productGorm) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ProductModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrProductNotFound
	}
	return nil
}

func (r *productGorm) find(q *gorm.DB) ([]entity.Product, error) {
	var rows []ProductModel
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Product, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

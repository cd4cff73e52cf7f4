// Package usecase はcatalogフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"

	"shop_backend/internal/feature/catalog/domain/entity"
	"shop_backend/internal/shared/objectid"
)

// ProductRepository は商品エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ProductRepository interface {
	// Create は商品を保存し、採番したIDとタイムスタンプをpに反映します。
	Create(ctx context.Context, p *entity.Product) error
	// FindByID は商品を取得します。存在しない場合ErrProductNotFoundを返します。
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	// List は全商品を返します。
	List(ctx context.Context) ([]entity.Product, error)
	// ListByCategory はカテゴリが完全一致する商品を返します。
	ListByCategory(ctx context.Context, category string) ([]entity.Product, error)
	// Update は商品を上書きします。存在しない場合ErrProductNotFoundを返します。
	Update(ctx context.Context, p *entity.Product) error
	// Delete は商品を削除します。存在しない場合ErrProductNotFoundを返します。
	Delete(ctx context.Context, id string) error
}

// catalogUsecase は商品カタログのユースケースを実装します。
type catalogUsecase struct {
	products ProductRepository
}

// NewCatalogUsecase はcatalogUsecaseの新しいインスタンスを生成します。
func NewCatalogUsecase(products ProductRepository) *catalogUsecase {
	return &catalogUsecase{products: products}
}

// List は全商品を返します。ページングは行いません。
func (u *catalogUsecase) List(ctx context.Context) ([]entity.Product, error) {
	return u.products.List(ctx)
}

// Get はIDで商品を取得します。
func (u *catalogUsecase) Get(ctx context.Context, id string) (*entity.Product, error) {
	if !objectid.Valid(id) {
		return nil, ErrInvalidProductID
	}
	return u.products.FindByID(ctx, id)
}

// Create は商品を登録します。ratingが未指定の場合は4.5を設定します。
func (u *catalogUsecase) Create(ctx context.Context, fields entity.ProductFields) (*entity.Product, error) {
	if !fields.HasRequired() {
		return nil, ErrMissingProductFields
	}
	p := &entity.Product{}
	fields.Apply(p)
	if p.Rating == 0 {
		p.Rating = entity.DefaultRating
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := u.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Update は指定されたフィールドのみを更新し、更新後の商品を返します。
// 更新後の値に対してバリデーションを再実行します。
func (u *catalogUsecase) Update(ctx context.Context, id string, fields entity.ProductFields) (*entity.Product, error) {
	if !objectid.Valid(id) {
		return nil, ErrInvalidProductID
	}
	p, err := u.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fields.Apply(p)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if err := u.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete は商品を削除します。
func (u *catalogUsecase) Delete(ctx context.Context, id string) error {
	if !objectid.Valid(id) {
		return ErrInvalidProductID
	}
	return u.products.Delete(ctx, id)
}

// ListByCategory はカテゴリで絞り込んだ商品を返します。正規化は行いません。
func (u *catalogUsecase) ListByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	return u.products.ListByCategory(ctx, category)
}

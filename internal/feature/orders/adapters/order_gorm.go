// Package adapters は注文フィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"shop_backend/internal/feature/orders/domain/entity"
	"shop_backend/internal/feature/orders/usecase"
	"shop_backend/internal/shared/objectid"
)

// orderGorm はOrderRepositoryインターフェースのGORM実装です。
type orderGorm struct {
	db *gorm.DB
}

var _ usecase.OrderRepository = (*orderGorm)(nil)

// NewOrderGorm はorderGormの新しいインスタンスを生成します。
func NewOrderGorm(db *gorm.DB) *orderGorm {
	return &orderGorm{db: db}
}

// Create は注文を追加し、IDとタイムスタンプをoに反映します。
func (r *orderGorm) Create(ctx context.Context, o *entity.Order) error {
	if o.ID == "" {
		o.ID = objectid.New()
	}
	m := orderModelFromEntity(o)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	o.CreatedAt, o.UpdatedAt = m.CreatedAt, m.UpdatedAt
	return nil
}

// FindByID はIDで注文を取得します。
func (r *orderGorm) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	var m OrderModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrOrderNotFound
		}
		return nil, err
	}
	o := m.toEntity()
	return &o, nil
}

// List は全注文を新しい順に返します。
func (r *orderGorm) List(ctx context.Context) ([]entity.Order, error) {
	return r.find(r.db.WithContext(ctx))
}

// ListByStatus はステータスが一致する注文を新しい順に返します。
func (r *orderGorm) ListByStatus(ctx context.Context, status entity.Status) ([]entity.Order, error) {
	return r.find(r.db.WithContext(ctx).Where("status = ?", string(status)))
}

// ListByCustomer は顧客メールアドレスが完全一致する注文を新しい順に返します。
func (r *orderGorm) ListByCustomer(ctx context.Context, email string) ([]entity.Order, error) {
	return r.find(r.db.WithContext(ctx).Where("customer_email = ?", email))
}

// Update は注文の全フィールドを上書きします。
func (r *orderGorm) Update(ctx context.Context, o *entity.Order) error {
	m := orderModelFromEntity(o)
	m.UpdatedAt = time.Now()
	res := r.db.WithContext(ctx).Model(&OrderModel{ID: o.ID}).
		Select("products", "customer_email", "customer_name", "customer_phone", "order_date",
			"total", "status", "shipping_address", "payment_method", "payment_status", "updated_at").
		Updates(m)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrOrderNotFound
	}
	o.UpdatedAt = m.UpdatedAt
	return nil
}

// Delete は注文を削除します。
func (r *orderGorm) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&OrderModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrOrderNotFound
	}
	return nil
}

func (r *orderGorm) find(q *gorm.DB) ([]entity.Order, error) {
	var rows []OrderModel
	if err := q.Order("order_date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Order, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toEntity())
	}
	return out, nil
}

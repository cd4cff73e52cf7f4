// Package usecase は注文フィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"
	"math"
	"regexp"
	"time"

	"shop_backend/internal/feature/orders/domain/entity"
	"shop_backend/internal/shared/objectid"
)

// RoutingKeyOrderCreated は注文作成イベントのルーティングキーです。
const RoutingKeyOrderCreated = "order.created"

var checkoutEmailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// OrderRepository は注文エンティティの永続化層を抽象化します。
// 一覧系はすべてorderDateの降順で返します。
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	FindByID(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context) ([]entity.Order, error)
	ListByStatus(ctx context.Context, status entity.Status) ([]entity.Order, error)
	ListByCustomer(ctx context.Context, email string) ([]entity.Order, error)
	Update(ctx context.Context, o *entity.Order) error
	Delete(ctx context.Context, id string) error
}

// EventPublisher はドメインイベントをメッセージブローカーへ送信します。
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, data any) error
}

// OrderCreated は注文作成時に発行されるイベントのペイロードです。
type OrderCreated struct {
	OrderID       string    `json:"orderId"`
	CustomerEmail string    `json:"customerEmail"`
	Total         float64   `json:"total"`
	ItemCount     int       `json:"itemCount"`
	PaymentMethod string    `json:"paymentMethod"`
	OrderDate     time.Time `json:"orderDate"`
	Source        string    `json:"source"`
}

// CheckoutItem はチェックアウト時の明細です。
// 数値でない値はnilとして渡されます。
type CheckoutItem struct {
	ProductID string
	Name      string
	Price     *float64
	Quantity  *float64
}

// CheckoutInput はチェックアウトの入力です。ProductsがnilまたはJSON配列でない場合は空として扱います。
type CheckoutInput struct {
	Products        []CheckoutItem
	CustomerEmail   string
	CustomerName    string
	CustomerPhone   string
	Total           *float64
	ShippingAddress *entity.ShippingAddress
	PaymentMethod   string
}

// orderUsecase は注文のユースケースを実装します。
type orderUsecase struct {
	orders OrderRepository
	events EventPublisher
	now    func() time.Time
}

// NewOrderUsecase はorderUsecaseの新しいインスタンスを生成します。
// eventsがnilの場合、イベントは発行しません。
func NewOrderUsecase(orders OrderRepository, events EventPublisher) *orderUsecase {
	return &orderUsecase{orders: orders, events: events, now: time.Now}
}

// List は全注文を新しい順に返します。
func (u *orderUsecase) List(ctx context.Context) ([]entity.Order, error) {
	return u.orders.List(ctx)
}

// Get はIDで注文を取得します。
func (u *orderUsecase) Get(ctx context.Context, id string) (*entity.Order, error) {
	if !objectid.Valid(id) {
		return nil, ErrInvalidOrderID
	}
	return u.orders.FindByID(ctx, id)
}

// Create は注文を登録します。orderDateは常に現在時刻になります。
func (u *orderUsecase) Create(ctx context.Context, fields entity.OrderFields) (*entity.Order, error) {
	if fields.Products == nil || len(*fields.Products) == 0 {
		return nil, ErrEmptyOrder
	}
	if fields.CustomerEmail == nil || *fields.CustomerEmail == "" || fields.Total == nil || *fields.Total == 0 {
		return nil, ErrMissingOrderFields
	}

	o := &entity.Order{}
	fields.Apply(o)
	o.OrderDate = u.now()
	o.ApplyDefaults(o.OrderDate)
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := u.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	u.publishCreated(ctx, o, "orders")
	return o, nil
}

// Update は指定されたフィールドのみを更新します。
// ステータスは任意の値から任意の値へ変更できます。
func (u *orderUsecase) Update(ctx context.Context, id string, fields entity.OrderFields) (*entity.Order, error) {
	if !objectid.Valid(id) {
		return nil, ErrInvalidOrderID
	}
	o, err := u.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fields.Apply(o)
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := u.orders.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Delete は注文を削除します。
func (u *orderUsecase) Delete(ctx context.Context, id string) error {
	if !objectid.Valid(id) {
		return ErrInvalidOrderID
	}
	return u.orders.Delete(ctx, id)
}

// ListByStatus はステータスで絞り込んだ注文を返します。
// 不正なステータスの場合はストアへ問い合わせずにエラーを返します。
func (u *orderUsecase) ListByStatus(ctx context.Context, status string) ([]entity.Order, error) {
	st, ok := entity.ParseStatus(status)
	if !ok {
		return nil, ErrInvalidStatus
	}
	return u.orders.ListByStatus(ctx, st)
}

// ListByCustomer は顧客メールアドレスが完全一致する注文を返します。
func (u *orderUsecase) ListByCustomer(ctx context.Context, email string) ([]entity.Order, error) {
	return u.orders.ListByCustomer(ctx, email)
}

// Checkout は購入フローからの注文を厳密に検証して保存します。
func (u *orderUsecase) Checkout(ctx context.Context, in CheckoutInput) (*entity.Order, error) {
	if len(in.Products) == 0 {
		return nil, ErrEmptyOrder
	}
	items := make([]entity.LineItem, 0, len(in.Products))
	for _, p := range in.Products {
		item, ok := p.toLineItem()
		if !ok {
			slog.Debug("checkout rejected line item", "product_id", p.ProductID, "name", p.Name)
			return nil, ErrInvalidLineItem
		}
		items = append(items, item)
	}
	if !checkoutEmailRe.MatchString(in.CustomerEmail) {
		return nil, ErrInvalidCustomerEmail
	}
	if in.Total == nil || *in.Total <= 0 || math.IsNaN(*in.Total) {
		return nil, ErrInvalidTotal
	}

	now := u.now()
	o := &entity.Order{
		Products:        items,
		CustomerEmail:   in.CustomerEmail,
		CustomerName:    in.CustomerName,
		CustomerPhone:   in.CustomerPhone,
		Total:           *in.Total,
		Status:          entity.StatusPending,
		OrderDate:       now,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   entity.PaymentMethod(in.PaymentMethod),
		PaymentStatus:   entity.PaymentPending,
	}
	o.ApplyDefaults(now)
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := u.orders.Create(ctx, o); err != nil {
		return nil, err
	}
	slog.Info("checkout order saved", "order_id", o.ID, "items", len(o.Products), "total", o.Total)
	u.publishCreated(ctx, o, "checkout")
	return o, nil
}

// toLineItem はproductIdとnameが存在し、priceとquantityが数値であるかを検証します。
// quantityの下限はエンティティの検証で確認します。
func (p CheckoutItem) toLineItem() (entity.LineItem, bool) {
	if p.ProductID == "" || p.Name == "" || p.Price == nil || p.Quantity == nil {
		return entity.LineItem{}, false
	}
	if !objectid.Valid(p.ProductID) {
		return entity.LineItem{}, false
	}
	if math.IsNaN(*p.Quantity) || math.IsInf(*p.Quantity, 0) {
		return entity.LineItem{}, false
	}
	return entity.LineItem{ProductID: p.ProductID, Name: p.Name, Price: *p.Price, Quantity: *p.Quantity}, true
}

// publishCreated は注文作成イベントを送信します。失敗はログに残すのみです。
func (u *orderUsecase) publishCreated(ctx context.Context, o *entity.Order, source string) {
	if u.events == nil {
		return
	}
	ev := OrderCreated{
		OrderID:       o.ID,
		CustomerEmail: o.CustomerEmail,
		Total:         o.Total,
		ItemCount:     len(o.Products),
		PaymentMethod: string(o.PaymentMethod),
		OrderDate:     o.OrderDate,
		Source:        source,
	}
	if err := u.events.Publish(ctx, RoutingKeyOrderCreated, ev); err != nil {
		slog.Warn("failed to publish order event", "order_id", o.ID, "error", err)
	}
}

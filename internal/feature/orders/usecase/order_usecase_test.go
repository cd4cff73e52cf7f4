package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"shop_backend/internal/feature/orders/domain/entity"
	"shop_backend/internal/shared/apperr"
)

const (
	validID   = "64b7f0c2a1b2c3d4e5f60718"
	productID = "64b7f0c2a1b2c3d4e5f60719"
)

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// mockOrderRepository is a mock implementation of the OrderRepository interface.
type mockOrderRepository struct {
	CreateFunc         func(ctx context.Context, o *entity.Order) error
	FindByIDFunc       func(ctx context.Context, id string) (*entity.Order, error)
	ListFunc           func(ctx context.Context) ([]entity.Order, error)
	ListByStatusFunc   func(ctx context.Context, status entity.Status) ([]entity.Order, error)
	ListByCustomerFunc func(ctx context.Context, email string) ([]entity.Order, error)
	UpdateFunc         func(ctx context.Context, o *entity.Order) error
	DeleteFunc         func(ctx context.Context, id string) error
}

func (m *mockOrderRepository) Create(ctx context.Context, o *entity.Order) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, o)
	}
	o.ID = validID
	return nil
}

func (m *mockOrderRepository) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, ErrOrderNotFound
}

func (m *mockOrderRepository) List(ctx context.Context) ([]entity.Order, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

func (m *mockOrderRepository) ListByStatus(ctx context.Context, status entity.Status) ([]entity.Order, error) {
	if m.ListByStatusFunc != nil {
		return m.ListByStatusFunc(ctx, status)
	}
	return nil, nil
}

func (m *mockOrderRepository) ListByCustomer(ctx context.Context, email string) ([]entity.Order, error) {
	if m.ListByCustomerFunc != nil {
		return m.ListByCustomerFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockOrderRepository) Update(ctx context.Context, o *entity.Order) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, o)
	}
	return nil
}

func (m *mockOrderRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// mockPublisher は testify/mock によるEventPublisherのモックです。
type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, data any) error {
	args := m.Called(ctx, routingKey, data)
	return args.Error(0)
}

func newTestUsecase(repo OrderRepository, pub EventPublisher) *orderUsecase {
	uc := NewOrderUsecase(repo, pub)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func ptr[T any](v T) *T { return &v }

func validFields() entity.OrderFields {
	items := []entity.LineItem{{ProductID: productID, Name: "Mug", Price: 12.5, Quantity: 2}}
	return entity.OrderFields{
		Products:      &items,
		CustomerEmail: ptr("a@b.com"),
		Total:         ptr(25.0),
	}
}

func validCheckout() CheckoutInput {
	return CheckoutInput{
		Products:      []CheckoutItem{{ProductID: productID, Name: "Mug", Price: ptr(12.5), Quantity: ptr(2.0)}},
		CustomerEmail: "a@b.com",
		Total:         ptr(25.0),
	}
}

func TestOrderUsecase_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(f *entity.OrderFields)
		wantErr error
	}{
		{"missing products", func(f *entity.OrderFields) { f.Products = nil }, ErrEmptyOrder},
		{"empty products", func(f *entity.OrderFields) { f.Products = &[]entity.LineItem{} }, ErrEmptyOrder},
		{"missing email", func(f *entity.OrderFields) { f.CustomerEmail = nil }, ErrMissingOrderFields},
		{"empty email", func(f *entity.OrderFields) { f.CustomerEmail = ptr("") }, ErrMissingOrderFields},
		{"missing total", func(f *entity.OrderFields) { f.Total = nil }, ErrMissingOrderFields},
		{"zero total", func(f *entity.OrderFields) { f.Total = ptr(0.0) }, ErrMissingOrderFields},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockOrderRepository{CreateFunc: func(ctx context.Context, o *entity.Order) error {
				t.Fatal("store must not be called")
				return nil
			}}
			f := validFields()
			tt.mutate(&f)

			_, err := newTestUsecase(repo, nil).Create(context.Background(), f)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("applies defaults and publishes", func(t *testing.T) {
		t.Parallel()

		pub := &mockPublisher{}
		pub.On("Publish", mock.Anything, RoutingKeyOrderCreated, mock.MatchedBy(func(ev OrderCreated) bool {
			return ev.OrderID == validID && ev.Source == "orders" && ev.ItemCount == 1
		})).Return(nil).Once()

		f := validFields()
		f.OrderDate = ptr(fixedNow.Add(-48 * time.Hour))
		o, err := newTestUsecase(&mockOrderRepository{}, pub).Create(context.Background(), f)

		require.NoError(t, err)
		assert.Equal(t, validID, o.ID)
		assert.Equal(t, entity.StatusPending, o.Status)
		assert.Equal(t, entity.PaymentCashOnDelivery, o.PaymentMethod)
		assert.Equal(t, entity.PaymentPending, o.PaymentStatus)
		assert.Equal(t, fixedNow, o.OrderDate)
		pub.AssertExpectations(t)
	})

	t.Run("explicit status kept", func(t *testing.T) {
		t.Parallel()

		f := validFields()
		f.Status = ptr(entity.StatusProcessing)
		o, err := newTestUsecase(&mockOrderRepository{}, nil).Create(context.Background(), f)

		require.NoError(t, err)
		assert.Equal(t, entity.StatusProcessing, o.Status)
	})

	t.Run("invalid status is a validation error", func(t *testing.T) {
		t.Parallel()

		f := validFields()
		f.Status = ptr(entity.Status("Shipped"))
		_, err := newTestUsecase(&mockOrderRepository{}, nil).Create(context.Background(), f)

		var verr *apperr.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "status", verr.Field)
	})

	t.Run("publish failure does not fail the order", func(t *testing.T) {
		t.Parallel()

		pub := &mockPublisher{}
		pub.On("Publish", mock.Anything, RoutingKeyOrderCreated, mock.Anything).Return(errors.New("broker down"))

		o, err := newTestUsecase(&mockOrderRepository{}, pub).Create(context.Background(), validFields())

		require.NoError(t, err)
		assert.Equal(t, validID, o.ID)
	})
}

func TestOrderUsecase_IDValidation(t *testing.T) {
	t.Parallel()

	uc := newTestUsecase(&mockOrderRepository{}, nil)
	ctx := context.Background()

	_, err := uc.Get(ctx, "not-an-id")
	assert.ErrorIs(t, err, ErrInvalidOrderID)

	_, err = uc.Update(ctx, "not-an-id", entity.OrderFields{})
	assert.ErrorIs(t, err, ErrInvalidOrderID)

	assert.ErrorIs(t, uc.Delete(ctx, "not-an-id"), ErrInvalidOrderID)

	_, err = uc.Get(ctx, validID)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.Equal(t, 404, apperr.HTTPStatus(err))
}

func TestOrderUsecase_Update(t *testing.T) {
	t.Parallel()

	stored := func() *entity.Order {
		return &entity.Order{
			ID:            validID,
			Products:      []entity.LineItem{{ProductID: productID, Name: "Mug", Price: 12.5, Quantity: 2}},
			CustomerEmail: "a@b.com",
			Total:         25,
			Status:        entity.StatusDelivered,
			PaymentMethod: entity.PaymentCashOnDelivery,
			PaymentStatus: entity.PaymentCompleted,
		}
	}

	t.Run("any status transition is allowed", func(t *testing.T) {
		t.Parallel()

		var saved *entity.Order
		repo := &mockOrderRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Order, error) { return stored(), nil },
			UpdateFunc: func(ctx context.Context, o *entity.Order) error {
				saved = o
				return nil
			},
		}
		o, err := newTestUsecase(repo, nil).Update(context.Background(), validID, entity.OrderFields{Status: ptr(entity.StatusPending)})

		require.NoError(t, err)
		assert.Equal(t, entity.StatusPending, o.Status)
		require.NotNil(t, saved)
		assert.Equal(t, "a@b.com", saved.CustomerEmail)
	})

	t.Run("validation re-run", func(t *testing.T) {
		t.Parallel()

		repo := &mockOrderRepository{
			FindByIDFunc: func(ctx context.Context, id string) (*entity.Order, error) { return stored(), nil },
			UpdateFunc: func(ctx context.Context, o *entity.Order) error {
				t.Fatal("store must not be called")
				return nil
			},
		}
		_, err := newTestUsecase(repo, nil).Update(context.Background(), validID, entity.OrderFields{PaymentMethod: ptr(entity.PaymentMethod("Gold"))})

		assert.ErrorIs(t, err, apperr.ErrInvalidInput)
	})
}

func TestOrderUsecase_ListByStatus(t *testing.T) {
	t.Parallel()

	t.Run("invalid status never queries the store", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"Shipped", "pending", "", "PENDING"} {
			repo := &mockOrderRepository{ListByStatusFunc: func(ctx context.Context, status entity.Status) ([]entity.Order, error) {
				t.Fatalf("store queried with %q", status)
				return nil, nil
			}}
			_, err := newTestUsecase(repo, nil).ListByStatus(context.Background(), s)
			assert.ErrorIs(t, err, ErrInvalidStatus, s)
		}
	})

	t.Run("valid status", func(t *testing.T) {
		t.Parallel()

		var got entity.Status
		repo := &mockOrderRepository{ListByStatusFunc: func(ctx context.Context, status entity.Status) ([]entity.Order, error) {
			got = status
			return []entity.Order{{ID: validID}}, nil
		}}
		orders, err := newTestUsecase(repo, nil).ListByStatus(context.Background(), "Delivered")

		require.NoError(t, err)
		assert.Len(t, orders, 1)
		assert.Equal(t, entity.StatusDelivered, got)
	})
}

func TestOrderUsecase_Checkout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(in *CheckoutInput)
		wantErr error
	}{
		{"no products", func(in *CheckoutInput) { in.Products = nil }, ErrEmptyOrder},
		{"missing product id", func(in *CheckoutInput) { in.Products[0].ProductID = "" }, ErrInvalidLineItem},
		{"malformed product id", func(in *CheckoutInput) { in.Products[0].ProductID = "p1" }, ErrInvalidLineItem},
		{"missing name", func(in *CheckoutInput) { in.Products[0].Name = "" }, ErrInvalidLineItem},
		{"non-numeric price", func(in *CheckoutInput) { in.Products[0].Price = nil }, ErrInvalidLineItem},
		{"non-numeric quantity", func(in *CheckoutInput) { in.Products[0].Quantity = nil }, ErrInvalidLineItem},
		{"missing email", func(in *CheckoutInput) { in.CustomerEmail = "" }, ErrInvalidCustomerEmail},
		{"email with space", func(in *CheckoutInput) { in.CustomerEmail = "a b@c.com" }, ErrInvalidCustomerEmail},
		{"email without dot", func(in *CheckoutInput) { in.CustomerEmail = "a@b" }, ErrInvalidCustomerEmail},
		{"missing total", func(in *CheckoutInput) { in.Total = nil }, ErrInvalidTotal},
		{"zero total", func(in *CheckoutInput) { in.Total = ptr(0.0) }, ErrInvalidTotal},
		{"negative total", func(in *CheckoutInput) { in.Total = ptr(-5.0) }, ErrInvalidTotal},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := &mockOrderRepository{CreateFunc: func(ctx context.Context, o *entity.Order) error {
				t.Fatal("store must not be called")
				return nil
			}}
			in := validCheckout()
			tt.mutate(&in)

			_, err := newTestUsecase(repo, nil).Checkout(context.Background(), in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("fractional quantity is accepted", func(t *testing.T) {
		t.Parallel()

		in := validCheckout()
		in.Products[0].Quantity = ptr(1.5)
		o, err := newTestUsecase(&mockOrderRepository{}, nil).Checkout(context.Background(), in)

		require.NoError(t, err)
		assert.Equal(t, 1.5, o.Products[0].Quantity)
	})

	t.Run("zero quantity is a validation error", func(t *testing.T) {
		t.Parallel()

		in := validCheckout()
		in.Products[0].Quantity = ptr(0.0)
		_, err := newTestUsecase(&mockOrderRepository{}, nil).Checkout(context.Background(), in)

		var verr *apperr.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "products.0.quantity", verr.Field)
	})

	t.Run("persists with checkout defaults", func(t *testing.T) {
		t.Parallel()

		pub := &mockPublisher{}
		pub.On("Publish", mock.Anything, RoutingKeyOrderCreated, mock.MatchedBy(func(ev OrderCreated) bool {
			return ev.Source == "checkout" && ev.Total == 25
		})).Return(nil).Once()

		var saved *entity.Order
		repo := &mockOrderRepository{CreateFunc: func(ctx context.Context, o *entity.Order) error {
			saved = o
			o.ID = validID
			return nil
		}}
		in := validCheckout()
		in.ShippingAddress = &entity.ShippingAddress{City: "Osaka"}
		o, err := newTestUsecase(repo, pub).Checkout(context.Background(), in)

		require.NoError(t, err)
		require.NotNil(t, saved)
		assert.Equal(t, validID, o.ID)
		assert.Equal(t, entity.StatusPending, o.Status)
		assert.Equal(t, entity.PaymentPending, o.PaymentStatus)
		assert.Equal(t, entity.PaymentCashOnDelivery, o.PaymentMethod)
		assert.Equal(t, fixedNow, o.OrderDate)
		assert.Equal(t, 2.0, o.Products[0].Quantity)
		assert.Equal(t, "Osaka", o.ShippingAddress.City)
		pub.AssertExpectations(t)
	})

	t.Run("explicit payment method", func(t *testing.T) {
		t.Parallel()

		in := validCheckout()
		in.PaymentMethod = "PayPal"
		o, err := newTestUsecase(&mockOrderRepository{}, nil).Checkout(context.Background(), in)

		require.NoError(t, err)
		assert.Equal(t, entity.PaymentPayPal, o.PaymentMethod)
	})

	t.Run("store failure is returned", func(t *testing.T) {
		t.Parallel()

		boom := errors.New("insert failed")
		repo := &mockOrderRepository{CreateFunc: func(ctx context.Context, o *entity.Order) error { return boom }}
		_, err := newTestUsecase(repo, nil).Checkout(context.Background(), validCheckout())

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 500, apperr.HTTPStatus(err))
	})
}

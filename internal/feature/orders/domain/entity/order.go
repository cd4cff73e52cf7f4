// Package entity defines the domain entities for the orders feature.
package entity

import (
	"fmt"
	"strings"
	"time"

	"shop_backend/internal/shared/apperr"
	"shop_backend/internal/shared/objectid"
)

// Status is the fulfilment state of an order. Transitions are not guarded.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// Statuses lists every valid order status in display order.
var Statuses = []Status{StatusPending, StatusProcessing, StatusDelivered, StatusCancelled}

// ParseStatus returns the status matching s exactly.
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// PaymentMethod is how the customer pays.
type PaymentMethod string

const (
	PaymentCreditCard     PaymentMethod = "Credit Card"
	PaymentCashOnDelivery PaymentMethod = "Cash On Delivery"
	PaymentPayPal         PaymentMethod = "PayPal"
	PaymentBankTransfer   PaymentMethod = "Bank Transfer"
)

// PaymentMethods lists every valid payment method.
var PaymentMethods = []PaymentMethod{PaymentCreditCard, PaymentCashOnDelivery, PaymentPayPal, PaymentBankTransfer}

// PaymentStatus is the settlement state of the payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
	PaymentRefunded  PaymentStatus = "Refunded"
)

// PaymentStatuses lists every valid payment status.
var PaymentStatuses = []PaymentStatus{PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded}

// LineItem is a product snapshot inside an order.
// ProductID references a product but its existence is never checked.
type LineItem struct {
	ProductID string
	Name      string
	Price     float64
	Quantity  float64
}

// ShippingAddress is the optional delivery address of an order.
type ShippingAddress struct {
	Street  string
	City    string
	State   string
	ZipCode string
	Country string
}

// Order is a customer purchase.
type Order struct {
	ID              string
	Products        []LineItem
	CustomerEmail   string
	CustomerName    string
	CustomerPhone   string
	OrderDate       time.Time
	Total           float64
	Status          Status
	ShippingAddress *ShippingAddress
	PaymentMethod   PaymentMethod
	PaymentStatus   PaymentStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ApplyDefaults fills unset fields with their defaults.
func (o *Order) ApplyDefaults(now time.Time) {
	if o.OrderDate.IsZero() {
		o.OrderDate = now
	}
	if o.Status == "" {
		o.Status = StatusPending
	}
	if o.PaymentMethod == "" {
		o.PaymentMethod = PaymentCashOnDelivery
	}
	if o.PaymentStatus == "" {
		o.PaymentStatus = PaymentPending
	}
}

// Validate checks the order before it is written.
func (o *Order) Validate() error {
	if len(o.Products) == 0 {
		return apperr.NewValidationError("products", "Order must contain at least one product")
	}
	for i, item := range o.Products {
		if err := item.validate(i); err != nil {
			return err
		}
	}
	if strings.TrimSpace(o.CustomerEmail) == "" {
		return apperr.NewValidationError("customerEmail", "customerEmail is required")
	}
	if _, ok := ParseStatus(string(o.Status)); !ok {
		return apperr.NewValidationError("status", fmt.Sprintf("`%s` is not a valid status", o.Status))
	}
	if !contains(PaymentMethods, o.PaymentMethod) {
		return apperr.NewValidationError("paymentMethod", fmt.Sprintf("`%s` is not a valid payment method", o.PaymentMethod))
	}
	if !contains(PaymentStatuses, o.PaymentStatus) {
		return apperr.NewValidationError("paymentStatus", fmt.Sprintf("`%s` is not a valid payment status", o.PaymentStatus))
	}
	return nil
}

func (li LineItem) validate(i int) error {
	switch {
	case !objectid.Valid(li.ProductID):
		return apperr.NewValidationError(fmt.Sprintf("products.%d.productId", i), "productId must be a valid identifier")
	case strings.TrimSpace(li.Name) == "":
		return apperr.NewValidationError(fmt.Sprintf("products.%d.name", i), "name is required")
	case li.Quantity < 1:
		return apperr.NewValidationError(fmt.Sprintf("products.%d.quantity", i), "quantity must be at least 1")
	}
	return nil
}

// OrderFields carries a create or partial-update payload. Nil fields are absent.
type OrderFields struct {
	Products        *[]LineItem
	CustomerEmail   *string
	CustomerName    *string
	CustomerPhone   *string
	OrderDate       *time.Time
	Total           *float64
	Status          *Status
	ShippingAddress *ShippingAddress
	PaymentMethod   *PaymentMethod
	PaymentStatus   *PaymentStatus
}

// Apply copies every present field onto o.
func (f OrderFields) Apply(o *Order) {
	if f.Products != nil {
		o.Products = append([]LineItem(nil), (*f.Products)...)
	}
	if f.CustomerEmail != nil {
		o.CustomerEmail = *f.CustomerEmail
	}
	if f.CustomerName != nil {
		o.CustomerName = *f.CustomerName
	}
	if f.CustomerPhone != nil {
		o.CustomerPhone = *f.CustomerPhone
	}
	if f.OrderDate != nil {
		o.OrderDate = *f.OrderDate
	}
	if f.Total != nil {
		o.Total = *f.Total
	}
	if f.Status != nil {
		o.Status = *f.Status
	}
	if f.ShippingAddress != nil {
		addr := *f.ShippingAddress
		o.ShippingAddress = &addr
	}
	if f.PaymentMethod != nil {
		o.PaymentMethod = *f.PaymentMethod
	}
	if f.PaymentStatus != nil {
		o.PaymentStatus = *f.PaymentStatus
	}
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

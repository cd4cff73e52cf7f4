// Package dto は注文APIのリクエスト・レスポンス型を定義します。
package dto

import (
	"time"

	"shop_backend/internal/feature/orders/domain/entity"
)

// LineItemDTO は注文明細のJSON表現です。
type LineItemDTO struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  float64 `json:"quantity"`
}

// ShippingAddressDTO は配送先住所のJSON表現です。
type ShippingAddressDTO struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

func (a *ShippingAddressDTO) toEntity() *entity.ShippingAddress {
	if a == nil {
		return nil
	}
	addr := entity.ShippingAddress(*a)
	return &addr
}

// OrderRequest は注文の作成・部分更新リクエストです。省略したフィールドはnilになります。
type OrderRequest struct {
	Products        *[]LineItemDTO      `json:"products"`
	CustomerEmail   *string             `json:"customerEmail"`
	CustomerName    *string             `json:"customerName"`
	CustomerPhone   *string             `json:"customerPhone"`
	OrderDate       *time.Time          `json:"orderDate"`
	Total           *float64            `json:"total"`
	Status          *string             `json:"status"`
	ShippingAddress *ShippingAddressDTO `json:"shippingAddress"`
	PaymentMethod   *string             `json:"paymentMethod"`
	PaymentStatus   *string             `json:"paymentStatus"`
}

// ToFields はリクエストをエンティティのパッチへ変換します。
func (r OrderRequest) ToFields() entity.OrderFields {
	f := entity.OrderFields{
		CustomerEmail:   r.CustomerEmail,
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		OrderDate:       r.OrderDate,
		Total:           r.Total,
		ShippingAddress: r.ShippingAddress.toEntity(),
	}
	if r.Products != nil {
		items := make([]entity.LineItem, 0, len(*r.Products))
		for _, li := range *r.Products {
			items = append(items, entity.LineItem(li))
		}
		f.Products = &items
	}
	// 空文字は未指定として扱い、デフォルト値を適用させる
	if r.Status != nil && *r.Status != "" {
		s := entity.Status(*r.Status)
		f.Status = &s
	}
	if r.PaymentMethod != nil && *r.PaymentMethod != "" {
		m := entity.PaymentMethod(*r.PaymentMethod)
		f.PaymentMethod = &m
	}
	if r.PaymentStatus != nil && *r.PaymentStatus != "" {
		s := entity.PaymentStatus(*r.PaymentStatus)
		f.PaymentStatus = &s
	}
	return f
}

// OrderResponse は注文のJSON表現です。
type OrderResponse struct {
	ID              string              `json:"_id"`
	Products        []LineItemDTO       `json:"products"`
	CustomerEmail   string              `json:"customerEmail"`
	CustomerName    string              `json:"customerName,omitempty"`
	CustomerPhone   string              `json:"customerPhone,omitempty"`
	OrderDate       time.Time           `json:"orderDate"`
	Total           float64             `json:"total"`
	Status          string              `json:"status"`
	ShippingAddress *ShippingAddressDTO `json:"shippingAddress,omitempty"`
	PaymentMethod   string              `json:"paymentMethod"`
	PaymentStatus   string              `json:"paymentStatus"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// NewOrderResponse はエンティティからレスポンスを生成します。
func NewOrderResponse(o *entity.Order) OrderResponse {
	items := make([]LineItemDTO, 0, len(o.Products))
	for _, li := range o.Products {
		items = append(items, LineItemDTO(li))
	}
	resp := OrderResponse{
		ID:            o.ID,
		Products:      items,
		CustomerEmail: o.CustomerEmail,
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		OrderDate:     o.OrderDate,
		Total:         o.Total,
		Status:        string(o.Status),
		PaymentMethod: string(o.PaymentMethod),
		PaymentStatus: string(o.PaymentStatus),
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
	if o.ShippingAddress != nil {
		addr := ShippingAddressDTO(*o.ShippingAddress)
		resp.ShippingAddress = &addr
	}
	return resp
}

// NewOrderListResponse は一覧レスポンスを生成します。空の場合も配列を返します。
func NewOrderListResponse(orders []entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderResponse(&orders[i]))
	}
	return out
}

// MessageResponse はメッセージのみのレスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}

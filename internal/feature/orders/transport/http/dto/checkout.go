package dto

import "shop_backend/internal/feature/orders/usecase"

// CheckoutRequest はチェックアウトのリクエストです。
// 型の誤りを400の検証メッセージとして返すため、products・customerEmail・totalは任意の型で受け取ります。
type CheckoutRequest struct {
	Products        any                 `json:"products"`
	CustomerEmail   any                 `json:"customerEmail"`
	CustomerName    string              `json:"customerName"`
	CustomerPhone   string              `json:"customerPhone"`
	Total           any                 `json:"total"`
	ShippingAddress *ShippingAddressDTO `json:"shippingAddress"`
	PaymentMethod   string              `json:"paymentMethod"`
}

// ToInput はリクエストをユースケースの入力へ変換します。
// productsが配列でない場合、Productsはnilになります。
func (r CheckoutRequest) ToInput() usecase.CheckoutInput {
	in := usecase.CheckoutInput{
		CustomerEmail:   str(r.CustomerEmail),
		CustomerName:    r.CustomerName,
		CustomerPhone:   r.CustomerPhone,
		Total:           num(r.Total),
		ShippingAddress: r.ShippingAddress.toEntity(),
		PaymentMethod:   r.PaymentMethod,
	}
	raw, ok := r.Products.([]any)
	if !ok {
		return in
	}
	in.Products = make([]usecase.CheckoutItem, 0, len(raw))
	for _, v := range raw {
		m, _ := v.(map[string]any)
		in.Products = append(in.Products, usecase.CheckoutItem{
			ProductID: str(m["productId"]),
			Name:      str(m["name"]),
			Price:     num(m["price"]),
			Quantity:  num(m["quantity"]),
		})
	}
	return in
}

// CheckoutStubResponse は永続化を行わないチェックアウトの応答です。
type CheckoutStubResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"orderId"`
}

func str(v any) string {
	s, _ := v.(string)
	return s
}

func num(v any) *float64 {
	f, ok := v.(float64)
	if !ok {
		return nil
	}
	return &f
}

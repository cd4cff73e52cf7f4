package adapters

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"shop_backend/internal/feature/orders/domain/entity"
)

// lineItemModel is the JSON shape of a line item stored in the products column.
type lineItemModel struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  float64 `json:"quantity"`
}

// shippingAddressModel is the JSON shape of the shipping_address column.
type shippingAddressModel struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Country string `json:"country"`
}

// OrderModel is the GORM model for the orders table.
type OrderModel struct {
	ID              string                `gorm:"primaryKey;size:24"`
	Products        []lineItemModel       `gorm:"serializer:json;type:text;not null"`
	CustomerEmail   string                `gorm:"size:255;not null;index"`
	CustomerName    string                `gorm:"size:255"`
	CustomerPhone   string                `gorm:"size:64"`
	OrderDate       time.Time             `gorm:"not null;index"`
	Total           float64               `gorm:"not null"`
	Status          string                `gorm:"size:32;not null;index;default:Pending"`
	ShippingAddress *shippingAddressModel `gorm:"serializer:json;type:text"`
	PaymentMethod   string                `gorm:"size:32;not null"`
	PaymentStatus   string                `gorm:"size:32;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

func (m *OrderModel) toEntity() entity.Order {
	items := make([]entity.LineItem, 0, len(m.Products))
	for _, li := range m.Products {
		items = append(items, entity.LineItem(li))
	}
	o := entity.Order{
		ID:            m.ID,
		Products:      items,
		CustomerEmail: m.CustomerEmail,
		CustomerName:  m.CustomerName,
		CustomerPhone: m.CustomerPhone,
		OrderDate:     m.OrderDate,
		Total:         m.Total,
		Status:        entity.Status(m.Status),
		PaymentMethod: entity.PaymentMethod(m.PaymentMethod),
		PaymentStatus: entity.PaymentStatus(m.PaymentStatus),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.ShippingAddress != nil {
		addr := entity.ShippingAddress(*m.ShippingAddress)
		o.ShippingAddress = &addr
	}
	return o
}

func orderModelFromEntity(o *entity.Order) *OrderModel {
	items := make([]lineItemModel, 0, len(o.Products))
	for _, li := range o.Products {
		items = append(items, lineItemModel(li))
	}
	m := &OrderModel{
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
		addr := shippingAddressModel(*o.ShippingAddress)
		m.ShippingAddress = &addr
	}
	return m
}

// lineItemDocument is the BSON shape of an embedded line item.
type lineItemDocument struct {
	ProductID primitive.ObjectID `bson:"productId"`
	Name      string             `bson:"name"`
	Price     float64            `bson:"price"`
	Quantity  float64            `bson:"quantity"`
}

// shippingAddressDocument is the BSON shape of the shipping address.
type shippingAddressDocument struct {
	Street  string `bson:"street,omitempty"`
	City    string `bson:"city,omitempty"`
	State   string `bson:"state,omitempty"`
	ZipCode string `bson:"zipCode,omitempty"`
	Country string `bson:"country,omitempty"`
}

// orderDocument is the BSON shape of an order in the orders collection.
type orderDocument struct {
	ID              primitive.ObjectID       `bson:"_id,omitempty"`
	Products        []lineItemDocument       `bson:"products"`
	CustomerEmail   string                   `bson:"customerEmail"`
	CustomerName    string                   `bson:"customerName,omitempty"`
	CustomerPhone   string                   `bson:"customerPhone,omitempty"`
	OrderDate       time.Time                `bson:"orderDate"`
	Total           float64                  `bson:"total"`
	Status          string                   `bson:"status"`
	ShippingAddress *shippingAddressDocument `bson:"shippingAddress,omitempty"`
	PaymentMethod   string                   `bson:"paymentMethod"`
	PaymentStatus   string                   `bson:"paymentStatus"`
	CreatedAt       time.Time                `bson:"createdAt"`
	UpdatedAt       time.Time                `bson:"updatedAt"`
}

func (d *orderDocument) toEntity() entity.Order {
	items := make([]entity.LineItem, 0, len(d.Products))
	for _, li := range d.Products {
		items = append(items, entity.LineItem{
			ProductID: li.ProductID.Hex(),
			Name:      li.Name,
			Price:     li.Price,
			Quantity:  li.Quantity,
		})
	}
	o := entity.Order{
		ID:            d.ID.Hex(),
		Products:      items,
		CustomerEmail: d.CustomerEmail,
		CustomerName:  d.CustomerName,
		CustomerPhone: d.CustomerPhone,
		OrderDate:     d.OrderDate,
		Total:         d.Total,
		Status:        entity.Status(d.Status),
		PaymentMethod: entity.PaymentMethod(d.PaymentMethod),
		PaymentStatus: entity.PaymentStatus(d.PaymentStatus),
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
	if d.ShippingAddress != nil {
		addr := entity.ShippingAddress(*d.ShippingAddress)
		o.ShippingAddress = &addr
	}
	return o
}

// lineItemDocuments は明細をBSON表現へ変換します。
// productIdは呼び出し前に検証済みである前提です。
func lineItemDocuments(items []entity.LineItem) ([]lineItemDocument, error) {
	out := make([]lineItemDocument, 0, len(items))
	for _, li := range items {
		pid, err := primitive.ObjectIDFromHex(li.ProductID)
		if err != nil {
			return nil, err
		}
		out = append(out, lineItemDocument{ProductID: pid, Name: li.Name, Price: li.Price, Quantity: li.Quantity})
	}
	return out, nil
}

func shippingAddressDoc(addr *entity.ShippingAddress) *shippingAddressDocument {
	if addr == nil {
		return nil
	}
	d := shippingAddressDocument(*addr)
	return &d
}

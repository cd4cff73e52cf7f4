package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shop_backend/internal/feature/orders/domain/entity"
	"shop_backend/internal/feature/orders/usecase"
)

// OrdersCollection は注文を保存するコレクション名です。
const OrdersCollection = "orders"

// orderMongo はOrderRepositoryインターフェースのMongoDB実装です。
type orderMongo struct {
	coll *mongo.Collection
}

var _ usecase.OrderRepository = (*orderMongo)(nil)

// NewOrderMongo はordersコレクションを使うorderMongoを生成します。
func NewOrderMongo(db *mongo.Database) *orderMongo {
	return &orderMongo{coll: db.Collection(OrdersCollection)}
}

// Create は注文を挿入します。
func (r *orderMongo) Create(ctx context.Context, o *entity.Order) error {
	items, err := lineItemDocuments(o.Products)
	if err != nil {
		return fmt.Errorf("invalid line item product id: %w", err)
	}
	id := primitive.NewObjectID()
	now := time.Now().UTC()
	doc := orderDocument{
		ID:              id,
		Products:        items,
		CustomerEmail:   o.CustomerEmail,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		OrderDate:       o.OrderDate,
		Total:           o.Total,
		Status:          string(o.Status),
		ShippingAddress: shippingAddressDoc(o.ShippingAddress),
		PaymentMethod:   string(o.PaymentMethod),
		PaymentStatus:   string(o.PaymentStatus),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert order: %w", err)
	}
	o.ID = id.Hex()
	o.CreatedAt, o.UpdatedAt = now, now
	return nil
}

// FindByID はIDで注文を取得します。
func (r *orderMongo) FindByID(ctx context.Context, id string) (*entity.Order, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, usecase.ErrInvalidOrderID
	}
	var doc orderDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	o := doc.toEntity()
	return &o, nil
}

// List は全注文を新しい順に返します。
func (r *orderMongo) List(ctx context.Context) ([]entity.Order, error) {
	return r.find(ctx, bson.M{})
}

// ListByStatus はステータスが一致する注文を新しい順に返します。
func (r *orderMongo) ListByStatus(ctx context.Context, status entity.Status) ([]entity.Order, error) {
	return r.find(ctx, bson.M{"status": string(status)})
}

// ListByCustomer は顧客メールアドレスが完全一致する注文を新しい順に返します。
func (r *orderMongo) ListByCustomer(ctx context.Context, email string) ([]entity.Order, error) {
	return r.find(ctx, bson.M{"customerEmail": email})
}

// Update は注文のフィールドを上書きします。
func (r *orderMongo) Update(ctx context.Context, o *entity.Order) error {
	oid, err := primitive.ObjectIDFromHex(o.ID)
	if err != nil {
		return usecase.ErrInvalidOrderID
	}
	items, err := lineItemDocuments(o.Products)
	if err != nil {
		return fmt.Errorf("invalid line item product id: %w", err)
	}
	now := time.Now().UTC()
	set := bson.M{
		"products":      items,
		"customerEmail": o.CustomerEmail,
		"customerName":  o.CustomerName,
		"customerPhone": o.CustomerPhone,
		"orderDate":     o.OrderDate,
		"total":         o.Total,
		"status":        string(o.Status),
		"paymentMethod": string(o.PaymentMethod),
		"paymentStatus": string(o.PaymentStatus),
		"updatedAt":     now,
	}
	update := bson.M{"$set": set}
	if addr := shippingAddressDoc(o.ShippingAddress); addr != nil {
		set["shippingAddress"] = addr
	} else {
		update["$unset"] = bson.M{"shippingAddress": ""}
	}
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, update)
	if err != nil {
		return fmt.Errorf("failed to update order: %w", err)
	}
	if res.MatchedCount == 0 {
		return usecase.ErrOrderNotFound
	}
	o.UpdatedAt = now
	return nil
}

// Delete は注文を削除します。
func (r *orderMongo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return usecase.ErrInvalidOrderID
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return usecase.ErrOrderNotFound
	}
	return nil
}

func (r *orderMongo) find(ctx context.Context, filter bson.M) ([]entity.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "orderDate", Value: -1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}
	var docs []orderDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode orders: %w", err)
	}
	out := make([]entity.Order, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

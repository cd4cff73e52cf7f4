package adapters

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"shop_backend/internal/feature/catalog/domain/entity"
	"shop_backend/internal/feature/catalog/usecase"
)

// ProductsCollection は商品を保存するコレクション名です。
const ProductsCollection = "products"

// productMongo はProductRepositoryインターフェースのMongoDB実装です。
type productMongo struct {
	coll *mongo.Collection
}

var _ usecase.ProductRepository = (*productMongo)(nil)

// NewProductMongo はproductsコレクションを使うproductMongoを生成します。
func NewProductMongo(db *mongo.Database) *productMongo {
	return &productMongo{coll: db.Collection(ProductsCollection)}
}

// Create は商品を挿入します。
func (r *productMongo) Create(ctx context.Context, p *entity.Product) error {
	id := primitive.NewObjectID()
	now := time.Now().UTC()
	doc := productDocument{
		ID:          id,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Rating:      p.Rating,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to insert product: %w", err)
	}
	p.ID = id.Hex()
	p.CreatedAt, p.UpdatedAt = now, now
	return nil
}

// FindByID はIDで商品を取得します。
func (r *productMongo) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, usecase.ErrInvalidProductID
	}
	var doc productDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, usecase.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	p := doc.toEntity()
	return &p, nil
}

// List は全商品を返します。
func (r *productMongo) List(ctx context.Context) ([]entity.Product, error) {
	return r.find(ctx, bson.M{})
}

// ListByCategory はカテゴリが完全一致する商品を返します。
func (r *productMongo) ListByCategory(ctx context.Context, category string) ([]entity.Product, error) {
	return r.find(ctx, bson.M{"category": category})
}

// Update は商品のフィールドを上書きします。
func (r *productMongo) Update(ctx context.Context, p *entity.Product) error {
	oid, err := primitive.ObjectIDFromHex(p.ID)
	if err != nil {
		return usecase.ErrInvalidProductID
	}
	now := time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"name":        p.Name,
		"description": p.Description,
		"price":       p.Price,
		"category":    p.Category,
		"imageUrl":    p.ImageURL,
		"rating":      p.Rating,
		"updatedAt":   now,
	}})
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if res.MatchedCount == 0 {
		return usecase.ErrProductNotFound
	}
	p.UpdatedAt = now
	return nil
}

// Delete は商品を削除します。
func (r *productMongo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return usecase.ErrInvalidProductID
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if res.DeletedCount == 0 {
		return usecase.ErrProductNotFound
	}
	return nil
}

func (r *productMongo) find(ctx context.Context, filter bson.M) ([]entity.Product, error) {
	cur, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}
	out := make([]entity.Product, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toEntity())
	}
	return out, nil
}

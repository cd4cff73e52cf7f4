package adapters

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shop_backend/internal/platform/mongodb"
)

// ProductIndexes はproductsコレクションのインデックスです。
func ProductIndexes() mongodb.IndexSet {
	return mongodb.IndexSet{
		Collection: ProductsCollection,
		Models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "category", Value: 1}}, Options: options.Index().SetName("category")},
		},
	}
}

package adapters

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shop_backend/internal/platform/mongodb"
)

// OrderIndexes はordersコレクションのインデックスです。一覧はすべてorderDateの降順です。
func OrderIndexes() mongodb.IndexSet {
	return mongodb.IndexSet{
		Collection: OrdersCollection,
		Models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "orderDate", Value: -1}}, Options: options.Index().SetName("order_date_desc")},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "orderDate", Value: -1}}, Options: options.Index().SetName("status_order_date")},
			{Keys: bson.D{{Key: "customerEmail", Value: 1}, {Key: "orderDate", Value: -1}}, Options: options.Index().SetName("customer_order_date")},
		},
	}
}

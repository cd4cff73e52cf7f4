package adapters

import (
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shop_backend/internal/platform/mongodb"
)

// UserIndexes はusersコレクションのインデックスです。emailの一意性はここで保証します。
func UserIndexes() mongodb.IndexSet {
	return mongodb.IndexSet{
		Collection: UsersCollection,
		Models: []mongo.IndexModel{
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetName("email_unique")},
		},
	}
}

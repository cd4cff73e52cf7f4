// Package mongodb はMongoDBクライアントの接続とインデックス作成を提供します。
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/x/mongo/driver/connstring"
)

// DefaultDatabase はURIにデータベース名が含まれない場合に使用します。
const DefaultDatabase = "shop"

// Connect はURIで接続し、Pingで疎通を確認します。リトライは行いません。
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(50)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("mongodb: connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb: ping: %w", err)
	}
	return client, nil
}

// DatabaseName は明示指定、URIのパス、DefaultDatabase の順にデータベース名を決定します。
func DatabaseName(uri, explicit string) string {
	if explicit != "" {
		return explicit
	}
	cs, err := connstring.Parse(uri)
	if err == nil && cs.Database != "" {
		return cs.Database
	}
	return DefaultDatabase
}

// IndexSet はコレクションごとに作成するインデックスです。
type IndexSet struct {
	Collection string
	Models     []mongo.IndexModel
}

// EnsureIndexes は各コレクションにインデックスを作成します。既存の同一定義は無視されます。
func EnsureIndexes(ctx context.Context, db *mongo.Database, sets ...IndexSet) error {
	for _, s := range sets {
		if len(s.Models) == 0 {
			continue
		}
		if _, err := db.Collection(s.Collection).Indexes().CreateMany(ctx, s.Models); err != nil {
			return fmt.Errorf("mongodb: create indexes on %s: %w", s.Collection, err)
		}
	}
	return nil
}

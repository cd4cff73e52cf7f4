// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"shop_backend/internal/app/config"
	authadapters "shop_backend/internal/feature/auth/adapters"
	authusecase "shop_backend/internal/feature/auth/usecase"
	catalogadapters "shop_backend/internal/feature/catalog/adapters"
	catalogusecase "shop_backend/internal/feature/catalog/usecase"
	ordersadapters "shop_backend/internal/feature/orders/adapters"
	ordersusecase "shop_backend/internal/feature/orders/usecase"
	"shop_backend/internal/platform/db"
	"shop_backend/internal/platform/mongodb"
)

// Store はフィーチャーごとのリポジトリと接続のライフサイクルをまとめたものです。
type Store struct {
	Users    authusecase.UserRepository
	Products catalogusecase.ProductRepository
	Orders   ordersusecase.OrderRepository

	// Ping はストアへの疎通を確認します。
	Ping func(ctx context.Context) error
	// Close は接続を解放します。
	Close func(ctx context.Context) error
}

// OpenStore は設定されたドライバーでストアへ接続し、インデックスまたはテーブルを準備します。
// 接続失敗はリトライせずにエラーを返します。
func OpenStore(ctx context.Context, cfg config.StoreConfig) (*Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, err := mongodb.Connect(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		database := client.Database(mongodb.DatabaseName(cfg.MongoURI, cfg.MongoDatabase))
		if err := mongodb.EnsureIndexes(ctx, database,
			authadapters.UserIndexes(), catalogadapters.ProductIndexes(), ordersadapters.OrderIndexes()); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		slog.Info("connected to MongoDB", "database", database.Name())
		return NewMongoStore(client, database), nil
	default:
		dbCfg := db.Config{Driver: cfg.Driver, DSN: cfg.SQLDSN}
		if cfg.Driver == config.DriverSQLite {
			// SQLiteは単一接続で書き込みを直列化する
			dbCfg.MaxOpenConns = 1
		}
		gdb, err := db.Open(dbCfg)
		if err != nil {
			return nil, err
		}
		store, err := NewGormStore(gdb)
		if err != nil {
			if sqlDB, dbErr := gdb.DB(); dbErr == nil {
				_ = sqlDB.Close()
			}
			return nil, err
		}
		slog.Info("connected to relational store", "driver", cfg.Driver)
		return store, nil
	}
}

// NewMongoStore はMongoDBのリポジトリでStoreを構成します。
func NewMongoStore(client *mongo.Client, database *mongo.Database) *Store {
	return &Store{
		Users:    authadapters.NewUserMongo(database),
		Products: catalogadapters.NewProductMongo(database),
		Orders:   ordersadapters.NewOrderMongo(database),
		Ping: func(ctx context.Context) error {
			return client.Ping(ctx, nil)
		},
		Close: client.Disconnect,
	}
}

// NewGormStore はテーブルをマイグレーションし、GORMのリポジトリでStoreを構成します。
func NewGormStore(gdb *gorm.DB) (*Store, error) {
	if err := gdb.AutoMigrate(&authadapters.UserModel{}, &catalogadapters.ProductModel{}, &ordersadapters.OrderModel{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	return &Store{
		Users:    authadapters.NewUserGorm(gdb),
		Products: catalogadapters.NewProductGorm(gdb),
		Orders:   ordersadapters.NewOrderGorm(gdb),
		Ping:     sqlDB.PingContext,
		Close: func(context.Context) error {
			return sqlDB.Close()
		},
	}, nil
}

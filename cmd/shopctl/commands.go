package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"shop_backend/internal/app/config"
	"shop_backend/internal/app/di"
	authusecase "shop_backend/internal/feature/auth/usecase"
	"shop_backend/internal/feature/catalog/domain/entity"
	catalogusecase "shop_backend/internal/feature/catalog/usecase"
	"shop_backend/internal/platform/logger"
)

const commandTimeout = time.Minute

// bootStore は設定を読み込み、ストアへ接続します。
// OpenStoreはMongoDBではインデックスを、SQLではテーブルを作成します。
func bootStore(ctx context.Context) (*di.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.New(cfg.Env)
	return di.OpenStore(ctx, cfg.Store)
}

// withStore はstoreを開いてfnを実行し、終了後に接続を閉じます。
func withStore(fn func(ctx context.Context, store *di.Store) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	store, err := bootStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close(ctx) }()
	return fn(ctx, store)
}

// shopctl migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create tables or indexes for the configured store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store *di.Store) error {
			fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date.")
			return nil
		})
	},
}

// shopctl seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert sample products into the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store *di.Store) error {
			n, err := seedProducts(ctx, catalogusecase.NewCatalogUsecase(store.Products))
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d products.\n", n)
			return nil
		})
	},
}

var (
	setRoleEmail string
	setRoleValue string
)

// shopctl set-role --email a@b.com --role admin
var setRoleCmd = &cobra.Command{
	Use:   "set-role",
	Short: "Change the role of a registered user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStore(func(ctx context.Context, store *di.Store) error {
			// SetRoleはトークンを発行しないのでJWTGeneratorは不要
			auth := authusecase.NewAuthUsecase(store.Users, nil)
			if err := auth.SetRole(ctx, setRoleEmail, setRoleValue); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Role of %s set to %s.\n", setRoleEmail, setRoleValue)
			return nil
		})
	},
}

func init() {
	setRoleCmd.Flags().StringVar(&setRoleEmail, "email", "", "email of the user")
	setRoleCmd.Flags().StringVar(&setRoleValue, "role", "", "new role (user or admin)")
	_ = setRoleCmd.MarkFlagRequired("email")
	_ = setRoleCmd.MarkFlagRequired("role")
}

type productCreator interface {
	Create(ctx context.Context, fields entity.ProductFields) (*entity.Product, error)
}

type sampleProduct struct {
	name, description, category, imageURL string
	price                                 float64
}

var sampleProducts = []sampleProduct{
	{"Ceramic Mug", "350ml stoneware mug", "kitchen", "https://images.example.com/mug.png", 12.5},
	{"Canvas Tote", "Heavy cotton shopping bag", "accessories", "https://images.example.com/tote.png", 18},
	{"Desk Lamp", "LED lamp with dimmer", "home", "https://images.example.com/lamp.png", 39.9},
}

// seedProducts はサンプル商品を作成し、作成件数を返します。
func seedProducts(ctx context.Context, catalog productCreator) (int, error) {
	for i, s := range sampleProducts {
		if _, err := catalog.Create(ctx, entity.ProductFields{
			Name:        &s.name,
			Description: &s.description,
			Price:       &s.price,
			Category:    &s.category,
			ImageURL:    &s.imageURL,
		}); err != nil {
			return i, fmt.Errorf("seed %q: %w", s.name, err)
		}
	}
	return len(sampleProducts), nil
}

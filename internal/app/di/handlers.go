package di

import (
	"github.com/redis/go-redis/v9"

	"shop_backend/internal/app/config"
	authhandler "shop_backend/internal/feature/auth/transport/handler"
	authusecase "shop_backend/internal/feature/auth/usecase"
	cataloghandler "shop_backend/internal/feature/catalog/transport/handler"
	catalogusecase "shop_backend/internal/feature/catalog/usecase"
	ordershandler "shop_backend/internal/feature/orders/transport/handler"
	ordersusecase "shop_backend/internal/feature/orders/usecase"
	"shop_backend/internal/platform/cache"
	jwtmw "shop_backend/internal/platform/jwt"
)

// Handlers はルーターに登録するHTTPハンドラー一式です。
type Handlers struct {
	Auth         *authhandler.AuthHandler
	Products     *cataloghandler.ProductHandler
	Orders       *ordershandler.OrderHandler
	CheckoutStub *ordershandler.CheckoutStubHandler
}

// NewHandlers はストアからユースケースとハンドラーを組み立てます。
// rdb が nil の場合キャッシュを使わず、events が nil の場合イベントを送信しません。
func NewHandlers(cfg *config.Config, store *Store, rdb *redis.Client, events ordersusecase.EventPublisher) (*Handlers, error) {
	gen, err := jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.TTL)
	if err != nil {
		return nil, err
	}

	// Redisキャッシュでラップ
	products := cache.NewCachingProductRepository(rdb, cfg.Redis.CacheTTL, store.Products, "products")

	authUC := authusecase.NewAuthUsecase(store.Users, gen)
	catalogUC := catalogusecase.NewCatalogUsecase(products)
	ordersUC := ordersusecase.NewOrderUsecase(store.Orders, events)

	return &Handlers{
		Auth:         authhandler.NewAuthHandler(authUC),
		Products:     cataloghandler.NewProductHandler(catalogUC),
		Orders:       ordershandler.NewOrderHandler(ordersUC),
		CheckoutStub: ordershandler.NewCheckoutStubHandler(),
	}, nil
}

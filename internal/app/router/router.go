// Package router はHTTPルーティングを定義します。
package router

import (
	"context"
	"log/slog"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"shop_backend/internal/app/di"
	"shop_backend/internal/platform/http/handler"
	jwtmw "shop_backend/internal/platform/jwt"
	"shop_backend/internal/platform/metrics"
	"shop_backend/internal/platform/middleware"
)

// Options はルーター生成時の依存です。
type Options struct {
	Handlers  *di.Handlers
	JWTSecret string
	Logger    *slog.Logger
	// Ready はストアの疎通確認です。nilの場合 /readyz は登録しません。
	Ready func(ctx context.Context) error
}

// NewRouter はミドルウェアとルートを登録したginエンジンを返します。
func NewRouter(opts Options) *gin.Engine {
	r := gin.New()
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(opts.Logger), metrics.Middleware())
	r.Use(cors.Default())

	h := opts.Handlers

	// 認証不要
	// 導通確認用
	r.GET("/", handler.Root)
	r.GET("/healthz", handler.Health)
	r.HEAD("/healthz", handler.Health)
	r.OPTIONS("/healthz", handler.Health)
	if opts.Ready != nil {
		r.GET("/readyz", handler.Ready(opts.Ready))
	}
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// 新規ユーザー登録
	r.POST("/register", h.Auth.Register)
	// ログイン（JWT 発行）
	r.POST("/login", h.Auth.Login)

	api := r.Group("/api")
	{
		api.GET("/products", h.Products.List)
		api.POST("/products", h.Products.Create)
		api.GET("/products/category/:category", h.Products.ListByCategory)
		api.GET("/products/:id", h.Products.Get)
		api.PUT("/products/:id", h.Products.Update)
		api.DELETE("/products/:id", h.Products.Delete)

		api.GET("/orders", h.Orders.List)
		api.POST("/orders", h.Orders.Create)
		api.GET("/orders/status/:status", h.Orders.ListByStatus)
		api.GET("/orders/customer/:email", h.Orders.ListByCustomer)
		api.GET("/orders/:id", h.Orders.Get)
		api.PUT("/orders/:id", h.Orders.Update)
		api.DELETE("/orders/:id", h.Orders.Delete)

		api.POST("/checkout", h.Orders.Checkout)
		// 永続化しない受付のみのチェックアウト
		api.POST("/checkout/stub", h.CheckoutStub.Handle)
	}

	// 認証必須のルート
	auth := r.Group("/api/me")
	auth.Use(jwtmw.AuthRequired(opts.JWTSecret))
	{
		auth.GET("/orders", h.Orders.ListMine)
	}

	return r
}

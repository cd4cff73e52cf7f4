package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"shop_backend/internal/app/config"
	"shop_backend/internal/app/di"
	"shop_backend/internal/app/router"
	"shop_backend/internal/app/server"
	ordersusecase "shop_backend/internal/feature/orders/usecase"
	"shop_backend/internal/platform/events"
	"shop_backend/internal/platform/logger"
	infraredis "shop_backend/internal/platform/redis"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Env)

	// JWT_SECRETチェック（開発中の注意喚起）
	if cfg.JWT.Generated {
		log.Warn("JWT_SECRET is not set; using a random secret for this process. Tokens will not survive a restart.")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// DB
	store, err := di.OpenStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Error("failed to close store", "error", err)
		}
	}()

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Addr != "" {
		tmp, err := infraredis.NewRedisClient(ctx, infraredis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Redis unavailable. Running without cache.", "error", err)
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					log.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// RabbitMQ
	var publisher ordersusecase.EventPublisher
	if cfg.Broker.URL != "" {
		p, err := events.NewPublisher(cfg.Broker.URL, cfg.Broker.Exchange)
		if err != nil {
			log.Warn("RabbitMQ unavailable. Order events are disabled.", "error", err)
		} else {
			publisher = p
			defer p.Close()
		}
	}

	handlers, err := di.NewHandlers(cfg, store, rdb, publisher)
	if err != nil {
		return err
	}

	r := router.NewRouter(router.Options{
		Handlers:  handlers,
		JWTSecret: cfg.JWT.Secret,
		Logger:    log,
		Ready:     store.Ping,
	})

	log.Info("starting server", "env", cfg.Env, "driver", cfg.Store.Driver)
	return server.New(cfg.Addr(), r).Run(ctx)
}

// Package config は起動時に環境変数から設定を読み込みます。
// 読み込んだ Config は各コンストラクタへ明示的に渡し、起動後に環境変数は参照しません。
package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ストアドライバー。
const (
	DriverMongo    = "mongo"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config はアプリケーション全体の設定です。
type Config struct {
	Env  string
	Port string

	Store  StoreConfig
	JWT    JWTConfig
	Redis  RedisConfig
	Broker BrokerConfig
}

// StoreConfig は永続化ストアの設定です。
type StoreConfig struct {
	Driver        string
	MongoURI      string
	MongoDatabase string
	SQLDSN        string
}

// JWTConfig はトークン署名の設定です。
type JWTConfig struct {
	Secret string
	TTL    time.Duration
	// Generated は開発環境でシークレットを自動生成した場合にtrueになります。
	Generated bool
}

// RedisConfig はキャッシュの設定です。Addrが空の場合キャッシュは無効です。
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	CacheTTL time.Duration
}

// BrokerConfig はイベント送信先の設定です。URLが空の場合イベントは送信しません。
type BrokerConfig struct {
	URL      string
	Exchange string
}

// IsProduction は本番環境かを返します。
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Addr はHTTPサーバーの待ち受けアドレスを返します。
func (c *Config) Addr() string {
	return ":" + c.Port
}

// Load は .env（存在する場合）と環境変数から設定を読み込み、検証します。
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		Env:  getEnv("NODE_ENV", "development"),
		Port: getEnv("PORT", "5000"),
		Store: StoreConfig{
			Driver:        getEnv("STORE_DRIVER", DriverMongo),
			MongoURI:      getEnv("MONGODB_URI", ""),
			MongoDatabase: getEnv("MONGODB_DATABASE", ""),
			SQLDSN:        getEnv("DATABASE_DSN", ""),
		},
		JWT: JWTConfig{
			Secret: getEnv("JWT_SECRET", ""),
			TTL:    getEnvAsDuration("JWT_TTL", time.Hour),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: getEnvAsDuration("CACHE_TTL", 5*time.Minute),
		},
		Broker: BrokerConfig{
			URL:      getEnv("RABBITMQ_URL", ""),
			Exchange: getEnv("RABBITMQ_EXCHANGE", "shop.events"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Store.Driver {
	case DriverMongo:
		if c.Store.MongoURI == "" {
			return errors.New("config: MONGODB_URI is required when STORE_DRIVER=mongo")
		}
	case DriverSQLite, DriverPostgres, DriverMySQL:
		if c.Store.SQLDSN == "" {
			return fmt.Errorf("config: DATABASE_DSN is required when STORE_DRIVER=%s", c.Store.Driver)
		}
	default:
		return fmt.Errorf("config: unsupported STORE_DRIVER %q", c.Store.Driver)
	}

	if c.JWT.Secret == "" {
		if c.IsProduction() {
			return errors.New("config: JWT_SECRET is required in production")
		}
		secret, err := randomSecret()
		if err != nil {
			return fmt.Errorf("config: generate development secret: %w", err)
		}
		c.JWT.Secret = secret
		c.JWT.Generated = true
	}
	if c.JWT.TTL <= 0 {
		return errors.New("config: JWT_TTL must be positive")
	}
	return nil
}

// randomSecret はプロセス単位の署名鍵を生成します。再起動で既存トークンは無効になります。
func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// getEnv は空文字の環境変数を未設定として扱います。
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return fallback
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// カートの保存先
const (
	StoreMemory   = "memory"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

const devJWTSecret = "dev_secret_change_me"

// Configはアプリ全体の設定
type Config struct {
	Port  string // サーバーポート（8080）
	GoEnv string // dev/prod

	JWTSecret      string        // JWT署名シークレット
	AccessTokenTTL time.Duration // アクセストークンの有効期限（15m）
	BcryptCost     int           // 12

	// 価格ルール
	TaxRate               decimal.Decimal // 0.08
	FreeShippingThreshold decimal.Decimal // 999（これを超えたら送料無料）
	FlatShippingFee       decimal.Decimal // 99

	CartStore string        // memory/redis/postgres
	CartTTL   time.Duration // redisのみ（720h）

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	DataStore string // memory/postgres（商品・注文・ユーザー）

	DatabaseURL      string
	PostgresUser     string // DBユーザー
	PostgresPassword string // DBパスワード
	PostgresDB       string // DB名
	PostgresHost     string // DBホスト（localhost）
	PostgresPort     int    // DBポート（5432）
	PostgresSSLMode  string

	SessionCacheSize int  // メモリに置くカートの数
	SeedDemoData     bool // デモ用の商品・ユーザーを入れる
}

func (c Config) IsProd() bool {
	return c.GoEnv == "prod"
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port:  getenv("PORT", "8080"),
		GoEnv: getenv("GO_ENV", "dev"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		CartStore: strings.ToLower(getenv("CART_STORE", StoreMemory)),
		DataStore: strings.ToLower(getenv("DATA_STORE", StoreMemory)),

		RedisAddr:     getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		DatabaseURL:      os.Getenv("DATABASE_URL"),
		PostgresUser:     getenv("POSTGRES_USER", "postgres"),
		PostgresPassword: getenv("POSTGRES_PASSWORD", "postgres"),
		PostgresDB:       getenv("POSTGRES_DB", "app"),
		PostgresHost:     getenv("POSTGRES_HOST", "localhost"),
		PostgresSSLMode:  getenv("POSTGRES_SSLMODE", "disable"),
	}

	var err error
	if cfg.AccessTokenTTL, err = durationOr("ACCESS_TOKEN_TTL", 15*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.CartTTL, err = durationOr("CART_TTL", 720*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.BcryptCost, err = atoiOr("BCRYPT_COST", 12); err != nil {
		return Config{}, err
	}
	if cfg.RedisDB, err = atoiOr("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.PostgresPort, err = atoiOr("POSTGRES_PORT", 5432); err != nil {
		return Config{}, err
	}
	if cfg.SessionCacheSize, err = atoiOr("SESSION_CACHE_SIZE", 1024); err != nil {
		return Config{}, err
	}
	if cfg.SeedDemoData, err = boolOr("SEED_DEMO_DATA", true); err != nil {
		return Config{}, err
	}
	if cfg.TaxRate, err = decimalOr("TAX_RATE", "0.08"); err != nil {
		return Config{}, err
	}
	if cfg.FreeShippingThreshold, err = decimalOr("FREE_SHIPPING_THRESHOLD", "999"); err != nil {
		return Config{}, err
	}
	if cfg.FlatShippingFee, err = decimalOr("FLAT_SHIPPING_FEE", "99"); err != nil {
		return Config{}, err
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		if cfg.IsProd() {
			return Config{}, fmt.Errorf("JWT_SECRET is required")
		}
		cfg.JWTSecret = devJWTSecret
	}
	switch cfg.CartStore {
	case StoreMemory, StoreRedis, StorePostgres:
	default:
		return Config{}, fmt.Errorf("CART_STORE must be one of memory, redis, postgres")
	}
	switch cfg.DataStore {
	case StoreMemory, StorePostgres:
	default:
		return Config{}, fmt.Errorf("DATA_STORE must be one of memory, postgres")
	}
	if cfg.TaxRate.IsNegative() {
		return Config{}, fmt.Errorf("TAX_RATE must be >= 0")
	}
	if cfg.FlatShippingFee.IsNegative() {
		return Config{}, fmt.Errorf("FLAT_SHIPPING_FEE must be >= 0")
	}
	if cfg.SessionCacheSize < 1 {
		return Config{}, fmt.Errorf("SESSION_CACHE_SIZE must be >= 1")
	}
	if cfg.AccessTokenTTL <= 0 {
		return Config{}, fmt.Errorf("ACCESS_TOKEN_TTL must be positive")
	}

	return cfg, nil
}

// DATABASE_URL があれば最優先
func (c Config) PostgresDSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.PostgresHost, c.PostgresPort, c.PostgresUser, c.PostgresPassword, c.PostgresDB, c.PostgresSSLMode,
	)
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func atoiOr(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be number: %w", key, err)
	}
	return i, nil
}

func durationOr(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be duration: %w", key, err)
	}
	return d, nil
}

func boolOr(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be bool: %w", key, err)
	}
	return b, nil
}

func decimalOr(key string, def string) (decimal.Decimal, error) {
	v := os.Getenv(key)
	if v == "" {
		v = def
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s must be decimal: %w", key, err)
	}
	return d, nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Yash24242424/cloneverse-express/internal/cart"
	"github.com/Yash24242424/cloneverse-express/internal/config"
	"github.com/Yash24242424/cloneverse-express/internal/handler"
	"github.com/Yash24242424/cloneverse-express/internal/infra/db"
	infraRepo "github.com/Yash24242424/cloneverse-express/internal/infra/repository"
	"github.com/Yash24242424/cloneverse-express/internal/infra/seed"
	"github.com/Yash24242424/cloneverse-express/internal/infra/slot"
	"github.com/Yash24242424/cloneverse-express/internal/logger"
	"github.com/Yash24242424/cloneverse-express/internal/pricing"
	"github.com/Yash24242424/cloneverse-express/internal/repository"
	"github.com/Yash24242424/cloneverse-express/internal/server"
	"github.com/Yash24242424/cloneverse-express/internal/usecase"
	auth "github.com/Yash24242424/cloneverse-express/internal/usecase/auth_usecase"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type uuidGenerator struct{}

func (g *uuidGenerator) NewID() string {
	return uuid.NewString()
}

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

// 保存先ごとのrepository
type stores struct {
	slot     repository.CartSlot
	products repository.ProductRepository
	orders   repository.OrderRepository
	users    repository.UserRepository
}

func main() {
	//.envは無くてもよい
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.GoEnv)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, cleanup, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	//usecaseに渡す部品
	idGen := &uuidGenerator{}
	clock := &realClock{}

	//bcrypt（会員登録：Hash / ログイン：Verify）
	hasher := auth.NewBcryptPasswordHasher(cfg.BcryptCost)
	verifier := auth.NewBcryptPasswordVerifier()

	//JWT issuer
	issuer := auth.NewJWTIssuer(cfg.JWTSecret, cfg.AccessTokenTTL)

	if cfg.SeedDemoData {
		if err := seed.Run(ctx, st.products, st.users, hasher, clock.Now(), log); err != nil {
			return err
		}
	}

	//カート
	policy := pricing.Policy{
		TaxRate:               cfg.TaxRate,
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		FlatShippingFee:       cfg.FlatShippingFee,
	}
	registry, err := cart.NewRegistry(cart.NewPersistence(st.slot, log), policy, cfg.SessionCacheSize, log)
	if err != nil {
		return err
	}

	//Usecase生成
	registerUC := auth.NewRegisterUserUsecase(st.users, hasher, issuer, idGen, clock)
	loginUC := auth.NewLoginUsecase(st.users, verifier, issuer, clock)
	productUC := usecase.NewProductUsecase(st.products)
	cartUC := usecase.NewCartUsecase(registry, st.products, idGen)
	checkoutUC := usecase.NewCheckoutUsecase(registry, st.orders, idGen, clock, log)
	orderUC := usecase.NewOrderUsecase(st.orders)
	adminOrderUC := usecase.NewAdminOrderUsecase(st.orders, clock, log)

	//Handler生成
	e := server.New(cfg, log, server.Handlers{
		Auth:       handler.NewAuthHandler(registerUC, loginUC),
		Product:    handler.NewProductHandler(productUC),
		Cart:       handler.NewCartHandler(cartUC),
		Checkout:   handler.NewCheckoutHandler(checkoutUC),
		Order:      handler.NewOrderHandler(orderUC),
		AdminOrder: handler.NewAdminOrderHandler(adminOrderUC),
	})

	//Server起動
	addr := cfg.Port
	if addr == "" || addr[0] != ':' {
		addr = ":" + addr
	}
	return server.Start(ctx, e, addr, log)
}

// CART_STORE / DATA_STORE に合わせて保存先を組み立てる
func openStores(ctx context.Context, cfg config.Config, log *zap.Logger) (stores, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	//DB接続（必要なときだけ）
	var gdb *gorm.DB
	if cfg.CartStore == config.StorePostgres || cfg.DataStore == config.StorePostgres {
		var err error
		gdb, err = db.Connect(cfg)
		if err != nil {
			return stores{}, cleanup, err
		}
		if sqlDB, err := gdb.DB(); err == nil {
			closers = append(closers, func() { _ = sqlDB.Close() })
		}
		if err := db.Migrate(gdb, cfg); err != nil {
			cleanup()
			return stores{}, func() {}, err
		}
	}

	var st stores

	switch cfg.CartStore {
	case config.StoreRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		closers = append(closers, func() { _ = client.Close() })
		// 起動時に繋がらなくてもカートはベストエフォートで動く
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn("redis ping failed", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		st.slot = slot.NewRedisSlot(client, cfg.CartTTL)
	case config.StorePostgres:
		st.slot = slot.NewGormSlot(gdb)
	default:
		st.slot = slot.NewMemorySlot()
	}

	if cfg.DataStore == config.StorePostgres {
		st.products = infraRepo.NewProductGormRepository(gdb)
		st.orders = infraRepo.NewOrderGormRepository(gdb)
		st.users = infraRepo.NewUserGormRepository(gdb)
	} else {
		st.products = infraRepo.NewProductMemoryRepository()
		st.orders = infraRepo.NewOrderMemoryRepository()
		st.users = infraRepo.NewUserMemoryRepository()
	}

	log.Info("stores ready",
		zap.String("cart_store", cfg.CartStore),
		zap.String("data_store", cfg.DataStore),
	)
	return st, cleanup, nil
}

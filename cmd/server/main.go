package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	cartapp "github.com/kopitoko/backend/internal/application/cart"
	catalogapp "github.com/kopitoko/backend/internal/application/catalog"
	checkoutapp "github.com/kopitoko/backend/internal/application/checkout"
	customerapp "github.com/kopitoko/backend/internal/application/customer"
	identityapp "github.com/kopitoko/backend/internal/application/identity"
	orderapp "github.com/kopitoko/backend/internal/application/order"
	"github.com/kopitoko/backend/internal/infrastructure/auth"
	"github.com/kopitoko/backend/internal/infrastructure/cache"
	"github.com/kopitoko/backend/internal/infrastructure/config"
	"github.com/kopitoko/backend/internal/infrastructure/logger"
	"github.com/kopitoko/backend/internal/infrastructure/persistence"
	"github.com/kopitoko/backend/internal/interfaces/http/handler"
	"github.com/kopitoko/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("starting server",
		zap.String("name", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port))

	gormLogger := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLogger)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	// Product cache: redis when enabled, otherwise in-process
	var productCache catalogapp.ProductCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			cancel()
			log.Fatal("failed to connect to redis", zap.Error(err))
		}
		cancel()
		defer func() {
			_ = redisClient.Close()
		}()
		productCache = cache.NewRedisProductCache(redisClient, cfg.Cache.ProductTTL, log)
		log.Info("using redis product cache", zap.String("addr", cfg.Redis.Addr()))
	} else {
		productCache = cache.NewMemoryProductCache(cfg.Cache.ProductTTL)
		log.Info("using in-memory product cache")
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	categoryRepo := persistence.NewGormCategoryRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	addressRepo := persistence.NewGormAddressRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	checkoutScope := persistence.NewGormCheckoutScope(db.DB)

	// Services
	jwtService := auth.NewJWTService(cfg.JWT)
	authService := identityapp.NewAuthService(customerRepo, jwtService, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, productCache, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo)
	cartService := cartapp.NewService(cartRepo, productRepo, log)
	checkoutService := checkoutapp.NewService(cartRepo, addressRepo, checkoutScope, log)
	orderService := orderapp.NewService(orderRepo, paymentRepo, log)
	addressService := customerapp.NewAddressService(addressRepo, log)

	engine := router.New(router.Config{
		Handlers: router.Handlers{
			System:   handler.NewSystemHandler(db, cfg.App.Name, cfg.App.Env),
			Auth:     handler.NewAuthHandler(authService),
			Product:  handler.NewProductHandler(productService),
			Category: handler.NewCategoryHandler(categoryService),
			Cart:     handler.NewCartHandler(cartService),
			Checkout: handler.NewCheckoutHandler(checkoutService),
			Order:    handler.NewOrderHandler(orderService),
			Address:  handler.NewAddressHandler(addressService),
		},
		JWTService:  jwtService,
		Logger:      log,
		CORSOrigins: cfg.HTTP.CORSAllowOrigins,
	})

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Fatal("invalid trusted proxies", zap.Error(err))
		}
	}

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server failed", zap.Error(err))
		}
	}()

	log.Info("server listening", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	log.Info("server stopped")
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/azorix/solarstore/internal"
	"github.com/azorix/solarstore/internal/billing"
	"github.com/azorix/solarstore/internal/cart"
	"github.com/azorix/solarstore/internal/catalog"
	"github.com/azorix/solarstore/internal/checkout"
	"github.com/azorix/solarstore/internal/coupon"
	"github.com/azorix/solarstore/internal/events"
	"github.com/azorix/solarstore/internal/handler"
	"github.com/azorix/solarstore/internal/middleware"
	"github.com/azorix/solarstore/internal/order"
	"github.com/azorix/solarstore/internal/router"
	"github.com/azorix/solarstore/internal/routes"
	"github.com/azorix/solarstore/internal/shipping"
	"github.com/azorix/solarstore/internal/storage"
	"github.com/azorix/solarstore/internal/tax"
	"github.com/azorix/solarstore/internal/telemetry"
)

func run() error {
	ctx := context.Background()

	// Load configuration
	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	// Configure logger
	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// Catalog and orders run against Postgres when configured, otherwise
	// against the built-in demo catalog and in-memory orders.
	var (
		catalogService catalog.Service
		orderStore     order.Store
	)
	if cfg.DatabaseUrl != "" {
		logger.Info("Connecting to database...")
		sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
		if err != nil {
			return fmt.Errorf("database connection failed: %w", err)
		}
		defer sqlDB.Close()

		if err := sqlDB.Ping(); err != nil {
			return fmt.Errorf("database ping failed: %w", err)
		}
		logger.Info("Database connection established")

		logger.Info("Running database migrations...")
		if err := internal.RunMigrations(sqlDB); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		logger.Info("Database migrations completed successfully")

		pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
		if err != nil {
			return fmt.Errorf("failed to create connection pool: %w", err)
		}
		defer pool.Close()

		catalogService = catalog.NewPostgresService(pool)
		orderStore = order.NewPostgresStore(pool)
	} else {
		logger.Warn("DATABASE_URL not set, using demo catalog and in-memory orders")
		catalogService = catalog.NewDemoService()
		orderStore = order.NewMemoryStore()
	}

	// Cart persistence: file-backed when a path is configured.
	var cartKV storage.KV
	if cfg.CartStoragePath != "" {
		local, err := storage.NewLocal(cfg.CartStoragePath)
		if err != nil {
			return fmt.Errorf("failed to initialize cart storage: %w", err)
		}
		cartKV = local
	} else {
		cartKV = storage.NewMemory()
	}
	cartStore := cart.NewStore(cart.NewKVPort(cartKV, cart.StorageKey), logger)

	// Coupon registry: file-backed when configured, demo registry otherwise.
	var coupons coupon.Registry
	if cfg.CouponsFile != "" {
		loaded, err := coupon.LoadRegistry(cfg.CouponsFile)
		if err != nil {
			return fmt.Errorf("failed to load coupon registry: %w", err)
		}
		coupons = loaded
		logger.Info("Coupon registry loaded", "file", cfg.CouponsFile)
	} else {
		coupons = coupon.NewDefaultRegistry()
	}

	// Payment gateway is optional: without a key, orders are recorded
	// without an online payment and the storefront hides the pay option.
	var billingProvider billing.Provider
	if cfg.Stripe.Configured() {
		provider, err := billing.NewStripeProvider(cfg.Stripe.SecretKey)
		if err != nil {
			return fmt.Errorf("failed to initialize Stripe provider: %w", err)
		}
		billingProvider = provider
		logger.Info("Stripe billing provider initialized")
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set, online payments disabled")
	}

	// Order event publishing over NATS when configured.
	var publisher events.Publisher
	if cfg.NATS.URL != "" {
		natsPublisher, err := events.NewNATSPublisher(cfg.NATS.URL)
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		publisher = natsPublisher
		logger.Info("NATS publisher initialized", "url", cfg.NATS.URL)
	} else {
		publisher = events.NewNoopPublisher()
	}
	defer publisher.Close()

	// Pricing components
	shippingQuoter := shipping.NewThresholdQuoter(cfg.Shipping.FreeThreshold, cfg.Shipping.Fee)
	taxCalculator := tax.NewIncludedRateCalculator(cfg.Tax.Rate)
	calculator := checkout.NewCalculator(shippingQuoter, taxCalculator, coupons)

	checkoutService := checkout.NewService(
		cartStore,
		calculator,
		billingProvider,
		orderStore,
		publisher,
		logger,
	)

	// Metrics
	httpMetrics := middleware.NewMetrics("solarstore")
	businessMetrics := telemetry.NewBusinessMetrics("solarstore", nil)

	// Router with global middleware
	middlewares := []router.Middleware{
		router.Recovery(logger),
		middleware.RequestID,
		middleware.WithRequestLogger(logger),
		httpMetrics.Middleware,
		router.Logger(logger),
	}
	if len(cfg.CORSOrigins) > 0 {
		middlewares = append(middlewares, router.CORS(cfg.CORSOrigins))
	}
	r := router.New(middlewares...)

	routes.Register(r, routes.Deps{
		CartHandler:     handler.NewCartHandler(cartStore, catalogService, businessMetrics),
		CatalogHandler:  handler.NewCatalogHandler(catalogService),
		CheckoutHandler: handler.NewCheckoutHandler(checkoutService, businessMetrics),
		PaymentsHandler: handler.NewPaymentsHandler(checkoutService),
		MetricsHandler:  httpMetrics.Handler(),
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Starting server", "address", addr, "env", cfg.Env)

	if err := http.ListenAndServe(addr, r); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

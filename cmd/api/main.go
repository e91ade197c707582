package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lisatcreative/printshop-backend/api/routes"
	"github.com/lisatcreative/printshop-backend/internal/cart"
	"github.com/lisatcreative/printshop-backend/internal/catalog"
	"github.com/lisatcreative/printshop-backend/internal/checkout"
	"github.com/lisatcreative/printshop-backend/internal/notifications"
	"github.com/lisatcreative/printshop-backend/internal/orders"
	"github.com/lisatcreative/printshop-backend/internal/pricing"
	"github.com/lisatcreative/printshop-backend/internal/shipping"
	"github.com/lisatcreative/printshop-backend/pkg/config"
	"github.com/lisatcreative/printshop-backend/pkg/db"
	"github.com/lisatcreative/printshop-backend/pkg/email"
	"github.com/lisatcreative/printshop-backend/pkg/env"
	"github.com/lisatcreative/printshop-backend/pkg/logger"
	"github.com/lisatcreative/printshop-backend/pkg/metrics"
	"github.com/lisatcreative/printshop-backend/pkg/migrate"
	"github.com/lisatcreative/printshop-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	emailClient, err := email.NewClient(context.Background(), cfg.Resend, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap email client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	storefrontMetrics := metrics.NewStorefrontMetrics(registry)

	catalogService, err := catalog.NewService()
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	pricingService, err := pricing.NewService(catalogService)
	if err != nil {
		logg.Error(context.Background(), "failed to create pricing service", err)
		os.Exit(1)
	}

	cartStore, err := cart.NewRedisStore(redisClient, cfg.Cart.TTL)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart store", err)
		os.Exit(1)
	}
	cartService, err := cart.NewService(cartStore, catalogService, pricingService)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	shippingService, err := shipping.NewService(cfg.Pricing.FreeShippingThresholdDecimal())
	if err != nil {
		logg.Error(context.Background(), "failed to create shipping service", err)
		os.Exit(1)
	}

	ordersService, err := orders.NewService(orders.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create orders service", err)
		os.Exit(1)
	}

	notificationsService, err := notifications.NewService(emailClient, cfg.Merchant, logg, storefrontMetrics)
	if err != nil {
		logg.Error(context.Background(), "failed to create notifications service", err)
		os.Exit(1)
	}

	checkoutService, err := checkout.NewService(
		cartService,
		shippingService,
		ordersService,
		notificationsService,
		logg,
		storefrontMetrics,
		checkout.Config{
			TaxRate:     cfg.Pricing.TaxRateDecimal(),
			TaxShipping: cfg.Pricing.TaxShipping,
			OrderPrefix: cfg.Merchant.OrderPrefix,
		},
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	addr := ":" + env.Get("PORT", cfg.App.Port)
	id := env.Get("DYNO", "local")
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"instance": id,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:   cfg,
			Logger:   logg,
			DB:       dbClient,
			Redis:    redisClient,
			Registry: registry,
			Catalog:  catalogService,
			Pricing:  pricingService,
			Cart:     cartService,
			Shipping: shippingService,
			Checkout: checkoutService,
			Orders:   ordersService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

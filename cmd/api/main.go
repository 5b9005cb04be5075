package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/rmarchetti/posplus-backend/api/routes"
	cartsvc "github.com/rmarchetti/posplus-backend/internal/cart"
	"github.com/rmarchetti/posplus-backend/internal/catalog"
	checkoutsvc "github.com/rmarchetti/posplus-backend/internal/checkout"
	"github.com/rmarchetti/posplus-backend/internal/customers"
	"github.com/rmarchetti/posplus-backend/internal/employees"
	ordersvc "github.com/rmarchetti/posplus-backend/internal/orders"
	"github.com/rmarchetti/posplus-backend/pkg/config"
	"github.com/rmarchetti/posplus-backend/pkg/db"
	"github.com/rmarchetti/posplus-backend/pkg/logger"
	"github.com/rmarchetti/posplus-backend/pkg/metrics"
	"github.com/rmarchetti/posplus-backend/pkg/migrate"
	"github.com/rmarchetti/posplus-backend/pkg/seed"
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

	if cfg.App.SeedDemoData {
		if err := seed.ApplyIfEmpty(context.Background(), dbClient.DB(), seed.Demo()); err != nil {
			logg.Error(context.Background(), "failed to seed demo data", err)
			os.Exit(1)
		}
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	checkoutMetrics := metrics.NewCheckoutMetrics(registry)

	txRunner := dbClient
	cartStore := cartsvc.NewRepository(dbClient.DB())
	productStore := catalog.NewRepository(dbClient.DB())
	orderStore := ordersvc.NewRepository(dbClient.DB())

	employeeService, err := employees.NewService(employees.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create employee service", err)
		os.Exit(1)
	}

	catalogService, err := catalog.NewService(productStore)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	cartService, err := cartsvc.NewService(txRunner, cartStore, productStore, customers.NewRepository(dbClient.DB()), logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create cart service", err)
		os.Exit(1)
	}

	checkoutService, err := checkoutsvc.NewService(
		txRunner, cartStore, productStore, orderStore,
		checkoutMetrics, cfg.Tax.RatePercent, logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create checkout service", err)
		os.Exit(1)
	}

	orderService, err := ordersvc.NewService(orderStore, cartStore)
	if err != nil {
		logg.Error(context.Background(), "failed to create order service", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":    cfg.App.Env,
		"addr":   addr,
		"driver": cfg.DB.Driver,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(
			cfg, logg, dbClient,
			employeeService, catalogService, cartService, checkoutService, orderService,
			registry,
		),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/Leo-Marbehan/arrivage-data-visualization/api/controllers"
	"github.com/Leo-Marbehan/arrivage-data-visualization/api/routes"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/csvsource"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/orders"
	"github.com/Leo-Marbehan/arrivage-data-visualization/internal/organizations"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/config"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/logger"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/metrics"
	"github.com/Leo-Marbehan/arrivage-data-visualization/pkg/redis"
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

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	ingestMetrics := metrics.NewIngestMetrics(registry)

	var cache orders.Cache
	var cachePinger controllers.CachePinger
	ordersCacheKey := ""
	if cfg.Redis.Enabled() {
		redisClient, err := redis.New(context.Background(), cfg.Redis)
		if err != nil {
			// The cache only short-circuits reloads; the API runs without it.
			logg.Warn(logg.WithField(context.Background(), "error", err.Error()), "redis unavailable, caching disabled")
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					logg.Error(context.Background(), "error closing redis", err)
				}
			}()
			cache = redisClient
			cachePinger = redisClient
			ordersCacheKey = redisClient.OrdersKey()
		}
	}

	loader := csvsource.New(cfg.Data)
	orgRepo := organizations.NewRepository(loader, organizations.NewExtractor(logg, ingestMetrics), cfg.Data, logg)
	orderRepo := orders.NewRepository(loader, orders.NewExtractor(logg, ingestMetrics), cfg.Data, logg, cache, ordersCacheKey)

	// Load sequentially: orders need nothing from organizations, but a
	// predictable startup order keeps the logs readable. A failed source
	// leaves that store Failed and the API up to report it.
	if err := orgRepo.Initialize(context.Background()); err != nil {
		logg.Error(context.Background(), "organization store failed to load", err)
	}
	if err := orderRepo.Initialize(context.Background()); err != nil {
		logg.Error(context.Background(), "order store failed to load", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, orgRepo, orderRepo, cachePinger, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/liquiverde/liquiverde-backend/api/routes"
	"github.com/liquiverde/liquiverde-backend/internal/catalog"
	"github.com/liquiverde/liquiverde-backend/internal/engine/optimize"
	"github.com/liquiverde/liquiverde-backend/internal/engine/score"
	"github.com/liquiverde/liquiverde-backend/internal/engine/substitute"
	"github.com/liquiverde/liquiverde-backend/pkg/config"
	"github.com/liquiverde/liquiverde-backend/pkg/db"
	"github.com/liquiverde/liquiverde-backend/pkg/logger"
	"github.com/liquiverde/liquiverde-backend/pkg/metrics"
	"github.com/liquiverde/liquiverde-backend/pkg/migrate"
	"github.com/liquiverde/liquiverde-backend/pkg/redis"
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

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	catalogSvc, err := catalog.NewService(catalog.NewRepository(dbClient.DB()), redisClient, cfg.Catalog, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	scorer := score.NewScorer(score.DefaultWeights, score.References{
		Price:  cfg.Scoring.PriceReference,
		Carbon: cfg.Scoring.CarbonReference,
		Water:  cfg.Scoring.WaterReference,
	})

	subEngine, err := substitute.NewEngine(scorer)
	if err != nil {
		logg.Error(context.Background(), "failed to create substitution engine", err)
		os.Exit(1)
	}

	optimizer, err := optimize.NewOptimizer(scorer, cfg.Optimizer,
		optimize.WithCandidateFinder(optimize.NameFallback{}))
	if err != nil {
		logg.Error(context.Background(), "failed to create optimizer", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	optimizerMetrics := metrics.NewOptimizerMetrics(registry)

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
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:     cfg,
			Logger:     logg,
			DB:         dbClient,
			Redis:      redisClient,
			Catalog:    catalogSvc,
			Scorer:     scorer,
			Substitute: subEngine,
			Optimizer:  optimizer,
			Metrics:    optimizerMetrics,
			Registry:   registry,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata"

	"github.com/joho/godotenv"

	httpadapter "github.com/couchcryptid/climatology-overlay/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/climatology-overlay/internal/adapter/kafka"
	"github.com/couchcryptid/climatology-overlay/internal/config"
	"github.com/couchcryptid/climatology-overlay/internal/observability"
	"github.com/couchcryptid/climatology-overlay/internal/pipeline"
	"github.com/couchcryptid/climatology-overlay/internal/statistics"
	"github.com/couchcryptid/climatology-overlay/internal/zone"
)

func main() {
	// A missing .env is fine; the environment may be set by the orchestrator.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	zones, err := zone.NewCache(cfg.ZoneCacheSize, metrics.ZoneCache)
	if err != nil {
		logger.Error("failed to create zone cache", "error", err)
		os.Exit(1)
	}
	coercer := statistics.NewCoercer(cfg.DefaultTimeZone, statistics.WithLocationLoader(zones))
	logger.Info("coercer configured",
		"default_time_zone", cfg.DefaultTimeZone.String(),
		"zone_cache_size", cfg.ZoneCacheSize,
	)

	reader := kafkaadapter.NewReader(cfg, logger)
	writer := kafkaadapter.NewWriter(cfg, logger)
	transformer := pipeline.NewTransformer(coercer, logger, metrics)

	p := pipeline.New(reader, transformer, writer, logger, metrics, cfg.BatchSize)

	coerce := httpadapter.NewCoerceHandler(coercer, metrics, cfg.MaxRequestBytes, logger)
	srv := httpadapter.NewServer(cfg.HTTPAddr, p, coerce, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := p.Run(ctx); err != nil {
			logger.Error("pipeline error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := reader.Close(); err != nil {
		logger.Error("kafka reader close error", "error", err)
	}
	if err := writer.Close(); err != nil {
		logger.Error("kafka writer close error", "error", err)
	}

	logger.Info("shutdown complete")
}

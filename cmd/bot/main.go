package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/couchcryptid/surf-session-bot/internal/adapter/httpserver"
	"github.com/couchcryptid/surf-session-bot/internal/adapter/kafkachat"
	"github.com/couchcryptid/surf-session-bot/internal/adapter/openmeteo"
	"github.com/couchcryptid/surf-session-bot/internal/adjust"
	"github.com/couchcryptid/surf-session-bot/internal/catalog"
	"github.com/couchcryptid/surf-session-bot/internal/config"
	"github.com/couchcryptid/surf-session-bot/internal/dialogue"
	"github.com/couchcryptid/surf-session-bot/internal/forecast"
	"github.com/couchcryptid/surf-session-bot/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	cat, err := catalog.Load(cfg.SpotsPath)
	if err != nil {
		logger.Error("failed to load spot catalog", "path", cfg.SpotsPath, "error", err)
		os.Exit(1)
	}
	logger.Info("spot catalog loaded", "spots", len(cat.Spots()))

	store := adjust.NewFileStore(cfg.AdjustmentsPath)

	client, err := openmeteo.NewClient(cfg.MarineBaseURL, cfg.ForecastBaseURL, cfg.Timezone,
		cfg.UpstreamTimeout, logger, metrics)
	if err != nil {
		logger.Error("failed to create open-meteo client", "error", err)
		os.Exit(1)
	}

	reports := forecast.NewService(client, store, cat, client.Location(), cfg.BestDayRange, logger, metrics)
	engine := dialogue.NewEngine(cat, reports, store, client.Location(), logger, metrics)

	reader := kafkachat.NewReader(cfg.KafkaBrokers, cfg.KafkaInboundTopic, cfg.KafkaGroupID, logger)
	writer := kafkachat.NewWriter(cfg.KafkaBrokers, cfg.KafkaOutboundTopic, logger)
	bridge := kafkachat.NewBridge(reader, writer, engine, dialogue.NewMemoryStore(), logger, metrics)

	srv := httpserver.NewServer(cfg.HTTPAddr, bridge, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	go func() {
		if err := bridge.Run(ctx); err != nil {
			logger.Error("chat bridge error", "error", err)
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

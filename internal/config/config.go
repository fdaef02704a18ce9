package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/surf-session-bot/internal/adapter/openmeteo"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers       []string
	KafkaInboundTopic  string
	KafkaOutboundTopic string
	KafkaGroupID       string
	HTTPAddr           string
	LogLevel           string
	LogFormat          string
	ShutdownTimeout    time.Duration

	// Open-Meteo upstream configuration.
	MarineBaseURL   string
	ForecastBaseURL string
	UpstreamTimeout time.Duration

	// Forecast pipeline configuration.
	Timezone        string
	AdjustmentsPath string
	SpotsPath       string
	BestDayRange    int
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	upstreamTimeout, err := parseDuration("OPENMETEO_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	bestDayRange, err := parsePositiveInt("BEST_DAY_RANGE", 7)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaInboundTopic:  envOrDefault("KAFKA_INBOUND_TOPIC", "surf-chat-inbound"),
		KafkaOutboundTopic: envOrDefault("KAFKA_OUTBOUND_TOPIC", "surf-chat-outbound"),
		KafkaGroupID:       envOrDefault("KAFKA_GROUP_ID", "surf-session-bot"),
		HTTPAddr:           envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           envOrDefault("LOG_LEVEL", "info"),
		LogFormat:          envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,

		MarineBaseURL:   envOrDefault("MARINE_BASE_URL", openmeteo.DefaultMarineBaseURL),
		ForecastBaseURL: envOrDefault("FORECAST_BASE_URL", openmeteo.DefaultForecastBaseURL),
		UpstreamTimeout: upstreamTimeout,

		Timezone:        envOrDefault("TIMEZONE", "America/Argentina/Buenos_Aires"),
		AdjustmentsPath: envOrDefault("ADJUSTMENTS_PATH", "ajustes_spots.json"),
		SpotsPath:       os.Getenv("SPOTS_PATH"),
		BestDayRange:    bestDayRange,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaInboundTopic == "" {
		return nil, errors.New("KAFKA_INBOUND_TOPIC is required")
	}
	if cfg.KafkaOutboundTopic == "" {
		return nil, errors.New("KAFKA_OUTBOUND_TOPIC is required")
	}
	if cfg.Timezone == "" {
		return nil, errors.New("TIMEZONE is required")
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// parseBrokers splits a comma-separated broker list, dropping empty entries.
func parseBrokers(s string) []string {
	var brokers []string
	for _, b := range strings.Split(s, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return n, nil
}

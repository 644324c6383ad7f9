package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Output compression modes.
const (
	CompressionNone = "none"
	CompressionZstd = "zstd"
)

// Config holds all build and serve settings, populated from environment variables.
type Config struct {
	OutputDir         string
	OutputCompression string
	LogLevel          string
	LogFormat         string

	NavaidDB   string
	RunwaysCSV string

	// Optional sinks. Empty disables the sink.
	KafkaBrokers     []string
	KafkaTopicPrefix string
	DatabaseDSN      string
	PushgatewayURL   string

	HTTPAddr        string
	ShutdownTimeout time.Duration

	// FAA CIFP download.
	CIFPPageURL  string
	FetchTimeout time.Duration
}

// DefaultCIFPPageURL is the FAA digital products page that links the current cycle.
const DefaultCIFPPageURL = "https://www.faa.gov/air_traffic/flight_info/aeronav/digital_products/cifp/download/"

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	fetchTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("FETCH_TIMEOUT", "60s"))
	if err != nil || fetchTimeout <= 0 {
		return nil, errors.New("invalid FETCH_TIMEOUT")
	}

	cfg := &Config{
		OutputDir:         sharedcfg.EnvOrDefault("OUTPUT_DIR", "data"),
		OutputCompression: strings.ToLower(sharedcfg.EnvOrDefault("OUTPUT_COMPRESSION", CompressionNone)),
		LogLevel:          sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:         sharedcfg.EnvOrDefault("LOG_FORMAT", "text"),
		NavaidDB:          sharedcfg.EnvOrDefault("NAVAID_DB", "data/navaids.json"),
		RunwaysCSV:        sharedcfg.EnvOrDefault("RUNWAYS_CSV", ""),
		KafkaTopicPrefix:  sharedcfg.EnvOrDefault("KAFKA_TOPIC_PREFIX", "refdb"),
		DatabaseDSN:       sharedcfg.EnvOrDefault("DATABASE_DSN", ""),
		PushgatewayURL:    sharedcfg.EnvOrDefault("PUSHGATEWAY_URL", ""),
		HTTPAddr:          sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		ShutdownTimeout:   shutdownTimeout,
		CIFPPageURL:       sharedcfg.EnvOrDefault("CIFP_PAGE_URL", DefaultCIFPPageURL),
		FetchTimeout:      fetchTimeout,
	}
	if brokers := sharedcfg.EnvOrDefault("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = sharedcfg.ParseBrokers(brokers)
	}

	if cfg.OutputDir == "" {
		return nil, errors.New("OUTPUT_DIR is required")
	}
	switch cfg.OutputCompression {
	case CompressionNone, CompressionZstd:
	default:
		return nil, fmt.Errorf("invalid OUTPUT_COMPRESSION %q: want %s or %s", cfg.OutputCompression, CompressionNone, CompressionZstd)
	}

	return cfg, nil
}

// KafkaEnabled reports whether databases should also be published to Kafka.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

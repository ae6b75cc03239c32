package config

import (
	"os"
	"time"

	"github.com/imrishuroy/go-storefront-cards/internal/aws"
)

// Config is the runtime configuration read from the environment.
type Config struct {
	AWS aws.Settings

	IdempotencyTable string
	CartItemsTable   string
	QueueURL         string // empty: submissions are written to CartItemsTable directly
	MetricsNamespace string
	IdempotencyTTL   time.Duration

	RunLocal   bool
	ListenAddr string
}

// Load reads the configuration from the process environment.
func Load() Config {
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from a getenv-style lookup.
func FromEnv(getenv func(string) string) Config {
	cfg := Config{
		AWS: aws.Settings{
			Region:           getenv("AWS_REGION"),
			EndpointOverride: getenv("AWS_ENDPOINT_OVERRIDE"),
		},
		IdempotencyTable: getenv("IDEMPOTENCY_TABLE"),
		CartItemsTable:   getenv("CART_ITEMS_TABLE"),
		QueueURL:         getenv("CART_QUEUE_URL"),
		MetricsNamespace: getenv("METRICS_NAMESPACE"),
		IdempotencyTTL:   24 * time.Hour,
		RunLocal:         getenv("RUN_LOCAL") == "true",
		ListenAddr:       getenv("LISTEN_ADDR"),
	}
	if cfg.MetricsNamespace == "" {
		cfg.MetricsNamespace = "Storefront/Cards"
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if v := getenv("IDEMPOTENCY_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.IdempotencyTTL = d
		}
	}
	return cfg
}

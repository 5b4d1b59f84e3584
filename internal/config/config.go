// Package config provides environment-driven configuration for the motif service.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Secret wraps a sensitive string to prevent accidental logging or marshalling.
type Secret string

// String implements fmt.Stringer, returning a redacted placeholder.
func (s Secret) String() string { return "[REDACTED]" }

// GoString implements fmt.GoStringer, returning a redacted placeholder.
func (s Secret) GoString() string { return "[REDACTED]" }

// MarshalText implements encoding.TextMarshaler, returning a redacted placeholder.
func (s Secret) MarshalText() ([]byte, error) { return []byte("[REDACTED]"), nil }

// Value returns the underlying secret string.
func (s Secret) Value() string { return string(s) }

// Config holds all application configuration values.
type Config struct {
	DatabaseURL   Secret
	Port          string
	ListenHost    string
	MetricsPort   string
	CORSOrigins   []string
	LogLevel      string
	DBMaxConns    int
	RunMigrations bool

	// Search engine limits applied to every request.
	SearchWorkers      int
	SearchQueuePolicy  string
	SearchMaxPending   int
	SearchMaxResults   int
	SearchTimeout      time.Duration
	PredicateCacheSize int
	HostCacheSize      int
	SearchesPerTenant  int
	SearchLogQueue     int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		DatabaseURL:       Secret(envOrDefault("DATABASE_URL", "")),
		Port:              envOrDefault("PORT", "3040"),
		ListenHost:        envOrDefault("LISTEN_HOST", "127.0.0.1"),
		MetricsPort:       envOrDefault("METRICS_PORT", "9092"),
		LogLevel:          envOrDefault("LOG_LEVEL", "info"),
		SearchQueuePolicy: envOrDefault("SEARCH_QUEUE_POLICY", "depth"),
		RunMigrations:     envOrDefault("RUN_MIGRATIONS", "true") == "true",
	}

	var err error

	if cfg.DBMaxConns, err = intInRange("DB_MAX_CONNS", 10, 2, 200); err != nil {
		return nil, err
	}

	if cfg.SearchWorkers, err = intInRange("SEARCH_WORKERS", 4, 1, 64); err != nil {
		return nil, err
	}

	if cfg.SearchMaxPending, err = intInRange("SEARCH_MAX_PENDING", 1_000_000, 1, 100_000_000); err != nil {
		return nil, err
	}

	if cfg.SearchMaxResults, err = intInRange("SEARCH_MAX_RESULTS", 10_000, 1, 10_000_000); err != nil {
		return nil, err
	}

	if cfg.PredicateCacheSize, err = intInRange("PREDICATE_CACHE_SIZE", 65_536, 0, 16_777_216); err != nil {
		return nil, err
	}

	if cfg.HostCacheSize, err = intInRange("HOST_CACHE_SIZE", 16, 1, 1024); err != nil {
		return nil, err
	}

	if cfg.SearchesPerTenant, err = intInRange("SEARCHES_PER_TENANT", 4, 1, 256); err != nil {
		return nil, err
	}

	if cfg.SearchLogQueue, err = intInRange("SEARCH_LOG_QUEUE", 1000, 1, 1_000_000); err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(envOrDefault("SEARCH_TIMEOUT", "30s"))
	if err != nil || timeout <= 0 {
		return nil, fmt.Errorf("SEARCH_TIMEOUT must be a positive duration (e.g. 30s)")
	}
	cfg.SearchTimeout = timeout

	origins := envOrDefault("CORS_ORIGINS", "http://localhost:3002")
	cfg.CORSOrigins = strings.Split(origins, ",")

	for i, o := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(o)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// Addr returns the listen address in host:port format.
func (c *Config) Addr() string {
	return c.ListenHost + ":" + c.Port
}

// MetricsAddr returns the listen address of the Prometheus endpoint.
func (c *Config) MetricsAddr() string {
	return c.ListenHost + ":" + c.MetricsPort
}

// intInRange parses key as an integer in [lo, hi], using fallback when unset.
func intInRange(key string, fallback, lo, hi int) (int, error) {
	v, err := strconv.Atoi(envOrDefault(key, strconv.Itoa(fallback)))
	if err != nil || v < lo || v > hi {
		return 0, fmt.Errorf("%s must be an integer between %d and %d", key, lo, hi)
	}

	return v, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

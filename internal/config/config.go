// Package config reads service settings from the environment.
package config

import (
	"os"
	"strings"
	"time"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
)

type Config struct {
	Port     string
	RunLocal bool

	// Collections storage
	StoreBackend string
	StoreTable   string
	StoreTimeout time.Duration

	// Handoff
	HandoffQueueURL string
	BusinessPhone   string // full international number, no "+"

	MetricsNamespace string
	IdempotencyTTL   time.Duration
}

func Load() Config {
	cfg := Config{
		Port:     getenv("PORT", "8080"),
		RunLocal: getenv("RUN_LOCAL", "false") == "true",

		StoreBackend: strings.ToLower(getenv("STORE_BACKEND", BackendMemory)),
		StoreTable:   getenv("STORE_TABLE", "quickstore-collections"),
		StoreTimeout: parseDuration(getenv("STORE_TIMEOUT", "5s"), 5*time.Second),

		HandoffQueueURL: getenv("HANDOFF_QUEUE_URL", ""),
		BusinessPhone:   getenv("BUSINESS_PHONE", "919876543210"),

		MetricsNamespace: getenv("METRICS_NAMESPACE", "QuickStore/Dashboard"),
		IdempotencyTTL:   parseDuration(getenv("IDEMPOTENCY_TTL", "48h"), 48*time.Hour),
	}
	if cfg.StoreBackend != BackendDynamoDB {
		cfg.StoreBackend = BackendMemory
	}
	return cfg
}

// NeedsAWS reports whether any configured component talks to AWS.
func (c Config) NeedsAWS() bool {
	return c.StoreBackend == BackendDynamoDB || c.HandoffQueueURL != ""
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultListenAddr      = ":8080"
	defaultBackendBaseURL  = "http://localhost:5000"
	defaultRequestTimeout  = "10s"
	defaultEnrichWorkers   = "8"
	defaultDatabaseDSN     = "stayfinder.db"
	defaultLogLevel        = "info"
	defaultPublicImageHost = ""
)

type Config struct {
	ListenAddr     string
	BackendBaseURL string
	// PublicImageHost replaces "localhost" in image URLs served by the
	// backend, for deployments where the two resolve differently. Empty
	// leaves URLs untouched.
	PublicImageHost string
	DatabaseDSN     string
	RequestTimeout  time.Duration
	EnrichWorkers   int
	LogLevel        string
}

func Load() (*Config, error) {
	cfg := &Config{}

	cfg.ListenAddr = strings.TrimSpace(getEnv("LISTEN_ADDR", defaultListenAddr))
	cfg.BackendBaseURL = strings.TrimRight(strings.TrimSpace(getEnv("BACKEND_BASE_URL", defaultBackendBaseURL)), "/")
	cfg.PublicImageHost = strings.TrimSpace(getEnv("PUBLIC_IMAGE_HOST", defaultPublicImageHost))
	cfg.DatabaseDSN = strings.TrimSpace(getEnv("DATABASE_URL", defaultDatabaseDSN))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(getEnv("LOG_LEVEL", defaultLogLevel)))

	var err error
	cfg.RequestTimeout, err = parseDurationEnv("REQUEST_TIMEOUT", defaultRequestTimeout)
	if err != nil {
		return nil, err
	}

	cfg.EnrichWorkers, err = parseIntEnv("ENRICH_WORKERS", defaultEnrichWorkers)
	if err != nil {
		return nil, err
	}
	if cfg.EnrichWorkers <= 0 {
		return nil, fmt.Errorf("ENRICH_WORKERS must be positive, got %d", cfg.EnrichWorkers)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return d, nil
}

func parseIntEnv(key, fallback string) (int, error) {
	raw := getEnv(key, fallback)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return n, nil
}

package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	ProjectID       string // document store project
	HTTPAddr        string // /healthz and /metrics in serve mode
	LogLevel        string
	Env             string // dev|prod
	SentryDSN       string
	OAuthClientID   string // audience for ID-token verification
	RefreshInterval time.Duration
}

func Load() (*Config, error) {
	refresh, err := parseDuration(getenv("REFRESH_INTERVAL", "5m"))
	if err != nil {
		return nil, fmt.Errorf("REFRESH_INTERVAL: %w", err)
	}

	cfg := &Config{
		ProjectID:       mustEnv("PROJECT_ID"),
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		LogLevel:        getenv("LOG_LEVEL", "info"),
		Env:             getenv("ENV", "dev"),
		SentryDSN:       os.Getenv("SENTRY_DSN"),
		OAuthClientID:   os.Getenv("OAUTH_CLIENT_ID"),
		RefreshInterval: refresh,
	}
	return cfg, nil
}

func mustEnv(k string) string {
	v := os.Getenv(k)
	if v == "" {
		panic("required env " + k + " is empty")
	}
	return v
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func parseDuration(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, err
	}
	if d <= 0 {
		return 0, fmt.Errorf("must be positive, got %s", s)
	}
	return d, nil
}

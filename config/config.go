package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ApplicationsSource selects where band applications are read from.
const (
	ApplicationsSourceHTTP     = "http"
	ApplicationsSourcePostgres = "postgres"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string

	// Upstream query services.
	EventServiceURL       string
	ApplicationServiceURL string
	UpstreamTimeout       time.Duration

	// ApplicationsSource is "http" (application service REST API) or
	// "postgres" (read application records from the shared database).
	ApplicationsSource string
	DBUrl              string

	JWTSecret string

	// Week warmer: band ids to preload and the cron spec to refresh on.
	// Empty WarmBandIDs disables warming.
	WarmBandIDs  []int64
	WarmSchedule string
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// Load .env file if not in production
	// We don't return error here because in production .env might not exist
	// and we rely on system environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:           env,
		Port:                  getenv("PORT", "8080"),
		EventServiceURL:       getenv("EVENT_SERVICE_URL", "http://localhost:8081"),
		ApplicationServiceURL: getenv("APPLICATION_SERVICE_URL", "http://localhost:8082"),
		ApplicationsSource:    getenv("APPLICATIONS_SOURCE", ApplicationsSourceHTTP),
		DBUrl:                 os.Getenv("DATABASE_URL"),
		JWTSecret:             os.Getenv("JWT_SECRET"),
		WarmSchedule:          getenv("WARM_SCHEDULE", "*/15 * * * *"),
	}

	switch cfg.ApplicationsSource {
	case ApplicationsSourceHTTP:
	case ApplicationsSourcePostgres:
		if cfg.DBUrl == "" {
			return nil, fmt.Errorf("APPLICATIONS_SOURCE=postgres requires DATABASE_URL")
		}
	default:
		return nil, fmt.Errorf("unknown APPLICATIONS_SOURCE: %q", cfg.ApplicationsSource)
	}

	timeout, err := time.ParseDuration(getenv("UPSTREAM_TIMEOUT", "5s"))
	if err != nil {
		return nil, fmt.Errorf("UPSTREAM_TIMEOUT: %w", err)
	}
	cfg.UpstreamTimeout = timeout

	if raw := os.Getenv("WARM_BAND_IDS"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil {
				return nil, fmt.Errorf("WARM_BAND_IDS: %w", err)
			}
			cfg.WarmBandIDs = append(cfg.WarmBandIDs, id)
		}
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

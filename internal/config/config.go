package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all application configuration
type Config struct {
	// balldontlie API
	BallDontLieAPIKey  string        `envconfig:"BALLDONTLIE_API_KEY" required:"true"`
	BallDontLieBaseURL string        `envconfig:"BALLDONTLIE_BASE_URL" default:"https://api.balldontlie.io/v1"`
	BallDontLieTimeout time.Duration `envconfig:"BALLDONTLIE_TIMEOUT" default:"30s"`

	// Database
	DatabaseHost     string `envconfig:"DATABASE_HOST" default:"localhost"`
	DatabasePort     int    `envconfig:"DATABASE_PORT" default:"5432"`
	DatabaseName     string `envconfig:"DATABASE_NAME" default:"box_scores"`
	DatabaseUser     string `envconfig:"DATABASE_USER" default:"nba_user"`
	DatabasePassword string `envconfig:"DATABASE_PASSWORD" required:"true"`
	DatabaseSSLMode  string `envconfig:"DATABASE_SSL_MODE" default:"disable"`

	// Redis
	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`

	// Application
	AppEnv   string `envconfig:"APP_ENV" default:"development"`
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`

	// Ingestion pipeline
	NumWorkers        int `envconfig:"NUM_WORKERS" default:"4"`
	RequestsPerMinute int `envconfig:"REQUESTS_PER_MINUTE" default:"300"`
	SchedulePerPage   int `envconfig:"SCHEDULE_PER_PAGE" default:"100"`

	// Scheduler
	EnableScheduler  bool   `envconfig:"ENABLE_SCHEDULER" default:"true"`
	DailyIngestCron  string `envconfig:"DAILY_INGEST_CRON" default:"0 6 * * *"`
	TeamSyncEnabled  bool   `envconfig:"TEAM_SYNC_ENABLED" default:"true"`
	TeamCacheTTLSecs int    `envconfig:"CACHE_TTL_TEAMS" default:"86400"`

	// Monitoring
	EnableMetrics bool `envconfig:"ENABLE_METRICS" default:"true"`
	MetricsPort   int  `envconfig:"METRICS_PORT" default:"9090"`
}

// Load loads configuration from environment variables
// It first attempts to load from .env file if in development mode
func Load() (*Config, error) {
	// Try to load .env file (ignore error if doesn't exist)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}

	// Validate
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BallDontLieAPIKey == "" {
		return fmt.Errorf("BALLDONTLIE_API_KEY is required")
	}

	if c.DatabasePassword == "" {
		return fmt.Errorf("DATABASE_PASSWORD is required")
	}

	if c.NumWorkers < 1 {
		return fmt.Errorf("NUM_WORKERS must be at least 1")
	}

	if c.RequestsPerMinute < 1 {
		return fmt.Errorf("REQUESTS_PER_MINUTE must be at least 1")
	}

	return nil
}

// DatabaseDSN returns the PostgreSQL connection string
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DatabaseHost,
		c.DatabasePort,
		c.DatabaseUser,
		c.DatabasePassword,
		c.DatabaseName,
		c.DatabaseSSLMode,
	)
}

// RedisAddr returns the Redis address
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// MustLoad loads configuration or panics on error
// Use this in main() where we want to fail fast
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

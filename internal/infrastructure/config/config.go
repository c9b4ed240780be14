package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// Transfer log database (optional - leave empty to keep the log in memory)
	DatabaseURL      string        `env:"DATABASE_URL"       envDefault:""`
	DatabaseMaxConns int           `env:"DATABASE_MAX_CONNS" envDefault:"10"`
	DatabaseMinConns int           `env:"DATABASE_MIN_CONNS" envDefault:"2"`
	MigrationsPath   string        `env:"MIGRATIONS_PATH"    envDefault:"internal/infrastructure/postgres/migrations"`
	DatabaseTimeout  time.Duration `env:"DATABASE_TIMEOUT"   envDefault:"30s"`

	// Redis (optional - leave empty to disable idempotency and the
	// pub/sub notifier)
	RedisURL      string `env:"REDIS_URL"      envDefault:""`
	NotifyChannel string `env:"NOTIFY_CHANNEL" envDefault:"gobank.notifications"`

	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Idempotency
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	err := env.Parse(cfg)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
type Config struct {
	// HTTP Server
	HTTPPort            string        `env:"HTTP_PORT"             envDefault:"8080"`
	HTTPReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT"     envDefault:"30s"`
	HTTPWriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT"    envDefault:"30s"`
	HTTPIdleTimeout     time.Duration `env:"HTTP_IDLE_TIMEOUT"     envDefault:"60s"`
	HTTPShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Session and loans
	SessionTicks int           `env:"SESSION_TICKS" envDefault:"300"`
	SessionTick  time.Duration `env:"SESSION_TICK"  envDefault:"1s"`
	LoanDelay    time.Duration `env:"LOAN_DELAY"    envDefault:"3s"`

	// Seed data; empty uses the embedded accounts.
	SeedFile string `env:"SEED_FILE" envDefault:""`
	TimeZone string `env:"TIME_ZONE" envDefault:"Local"`

	// Redis (optional - leave empty to disable idempotency)
	RedisURL       string        `env:"REDIS_URL"       envDefault:""`
	IdempotencyTTL time.Duration `env:"IDEMPOTENCY_TTL" envDefault:"24h"`

	// Events (optional - leave AMQP_URL empty to log events instead)
	AMQPURL        string `env:"AMQP_URL"        envDefault:""`
	EventsExchange string `env:"EVENTS_EXCHANGE" envDefault:"bankist.events"`

	// Rate limiting (0 disables)
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"0"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"10"`
}

// Load loads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if cfg.SessionTicks <= 0 {
		return nil, fmt.Errorf("SESSION_TICKS must be positive, got %d", cfg.SessionTicks)
	}
	if cfg.SessionTick <= 0 {
		return nil, fmt.Errorf("SESSION_TICK must be positive, got %s", cfg.SessionTick)
	}
	if cfg.LoanDelay <= 0 {
		return nil, fmt.Errorf("LOAN_DELAY must be positive, got %s", cfg.LoanDelay)
	}

	return cfg, nil
}

// Location resolves TIME_ZONE.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.TimeZone)
}

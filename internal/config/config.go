// Package config reads process settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	GRPCPort       string        `env:"PORT"                   envDefault:"50051"`
	WebPort        string        `env:"WEB_PORT"               envDefault:"8080"`
	JWTSecret      string        `env:"JWT_SECRET,required,notEmpty"`
	DatabaseURL    string        `env:"DATABASE_URL"`
	MigrationsPath string        `env:"MIGRATIONS_PATH"        envDefault:"db/migrations/001_init.sql"`
	RedisAddr      string        `env:"REDIS_ADDR"`
	CacheTTL       time.Duration `env:"NOTIFICATION_CACHE_TTL" envDefault:"5m"`
	RateLimitRPS   float64       `env:"RATE_LIMIT_RPS"         envDefault:"5"`
	RateLimitBurst int           `env:"RATE_LIMIT_BURST"       envDefault:"10"`
	SeedDemoData   bool          `env:"SEED_DEMO_DATA"         envDefault:"false"`
}

// Load reads .env when present, then the environment. Variables already
// set in the environment win over the file.
func Load() (Config, error) {
	_ = godotenv.Load()
	return Parse()
}

func Parse() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.RateLimitRPS <= 0 || cfg.RateLimitBurst <= 0 {
		return Config{}, fmt.Errorf("parse env: rate limit must be positive")
	}
	return cfg, nil
}

// UsePostgres reports whether a database URL was configured; otherwise the
// in-memory store backs the service.
func (c Config) UsePostgres() bool { return c.DatabaseURL != "" }

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services. It is built
// once at process start and handed to constructors; nothing inside the core
// reads the environment directly.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"quizzical-api"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:3001"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres Postgres
	Redis    Redis
	Admin    Admin
	Cache    Cache
}

// Postgres captures connection info for the SQL database.
type Postgres struct {
	Host         string `env:"PG_HOST,notEmpty"`
	Port         int    `env:"PG_PORT" envDefault:"5432"`
	User         string `env:"PG_USER,notEmpty"`
	Password     string `env:"PG_PASSWORD,notEmpty"`
	Database     string `env:"PG_DATABASE,notEmpty"`
	SSLMode      string `env:"PG_SSL_MODE" envDefault:"disable"`
	PoolMaxConns int    `env:"PG_POOL_MAX_CONNS" envDefault:"10"`
}

// Redis holds cache configuration.
type Redis struct {
	Addr     string `env:"REDIS_ADDR,notEmpty"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Admin holds the credentials the digest authorization gate checks before
// any mutating operation.
type Admin struct {
	Username string `env:"ADMIN_USERNAME,notEmpty"`
	Password string `env:"ADMIN_PASSWORD,notEmpty"`
}

// Cache groups cache tuning knobs.
type Cache struct {
	QuestionPageTTL time.Duration `env:"QUESTION_CACHE_TTL" envDefault:"5m"`
}

// Load parses environment variables into App config.
func Load() (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

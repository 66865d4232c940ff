// Package db owns access to the Postgres connection pool and the
// translation of driver failures into domain error kinds.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/quizzical/quizzical-api/internal/config"
)

// NewPool opens a bounded pgx connection pool from configuration. Callers
// own the pool and must Close it on shutdown.
func NewPool(ctx context.Context, cfg config.Postgres) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=%d",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode, cfg.PoolMaxConns)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return pool, nil
}

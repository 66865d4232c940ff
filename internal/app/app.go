// Package app bootstraps and runs the API process.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quizzical/quizzical-api/internal/auth"
	"github.com/quizzical/quizzical-api/internal/category"
	"github.com/quizzical/quizzical-api/internal/config"
	"github.com/quizzical/quizzical-api/internal/db"
	"github.com/quizzical/quizzical-api/internal/db/repository"
	"github.com/quizzical/quizzical-api/internal/logging"
	"github.com/quizzical/quizzical-api/internal/question"
	"github.com/quizzical/quizzical-api/internal/server"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// New bootstraps logger, Postgres, Redis, services and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	pool, err := db.NewPool(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	categoryRepo := repository.NewCategoryRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)

	questionCache := question.NewCache(redisClient, cfg.Cache.QuestionPageTTL)

	categorySvc := category.NewService(categoryRepo, logger)
	questionSvc := question.NewService(questionRepo, questionCache, logger)

	categoryHandler := category.NewHTTPHandler(categorySvc, logger)
	questionHandler := question.NewHTTPHandler(questionSvc, logger)

	authorizer := auth.NewAuthorizer(cfg.Admin.Username, cfg.Admin.Password)
	requireDigest := auth.RequireDigest(authorizer, logger)

	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, categoryHandler, questionHandler, requireDigest)

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}

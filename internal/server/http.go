package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/quizzical/quizzical-api/internal/category"
	"github.com/quizzical/quizzical-api/internal/config"
	"github.com/quizzical/quizzical-api/internal/question"
)

// NewHTTPServer wires the API routes. Mutating routes pass through the
// digest gate; reads are open.
func NewHTTPServer(
	cfg *config.App,
	logger zerolog.Logger,
	pool *pgxpool.Pool,
	redisClient *redis.Client,
	categoryHandler *category.HTTPHandler,
	questionHandler *question.HTTPHandler,
	requireDigest func(http.Handler) http.Handler,
) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := pingDependencies(r.Context(), pool, redisClient); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte(`{"status":"degraded"}`))
			return
		}
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v3/categories", categoryHandler.HandleList)
	mux.Handle("POST /api/v3/categories", requireDigest(http.HandlerFunc(categoryHandler.HandleSave)))
	mux.Handle("PUT /api/v3/categories/active", requireDigest(http.HandlerFunc(categoryHandler.HandleSetActive)))

	mux.HandleFunc("GET /api/v3/questions", questionHandler.HandleList)
	mux.Handle("POST /api/v3/questions", requireDigest(http.HandlerFunc(questionHandler.HandleCreate)))

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, redisClient *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	return redisClient.Ping(ctx).Err()
}

package server

import (
	"context"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/exam-prep/internal/auth"
	"github.com/gokatarajesh/exam-prep/internal/config"
	"github.com/gokatarajesh/exam-prep/internal/logging"
	"github.com/gokatarajesh/exam-prep/internal/practice"
	httperrors "github.com/gokatarajesh/exam-prep/pkg/http/errors"
)

// Pinger reports whether a backing dependency is reachable.
type Pinger func(ctx context.Context) error

// NewHTTPServer wires base routes (health, metrics) and the practice API.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, validator auth.TokenValidator, practiceHandlers *practice.HTTPHandlers, ping Pinger) *http.Server {
	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: NewRouter(logger, validator, practiceHandlers, ping),
	}
}

// NewRouter builds the handler tree; split out so tests can drive it without a listener.
func NewRouter(logger zerolog.Logger, validator auth.TokenValidator, practiceHandlers *practice.HTTPHandlers, ping Pinger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if ping == nil {
			httperrors.RespondJSON(w, http.StatusOK, map[string]bool{"pong": true})
			return
		}
		if err := ping(r.Context()); err != nil {
			reqLogger := logging.FromContextOr(r.Context(), logger)
			reqLogger.Error().Err(err).Msg("dependency ping failed")
			httperrors.RespondError(w, http.StatusBadGateway, httperrors.ErrCodeUpstreamError, "upstream error")
			return
		}
		httperrors.RespondJSON(w, http.StatusOK, map[string]bool{"pong": true})
	})

	if practiceHandlers != nil {
		mux.HandleFunc("POST /v1/practice/sessions", practiceHandlers.StartSession)
		mux.HandleFunc("GET /v1/practice/sessions/{id}", practiceHandlers.GetSession)
		mux.HandleFunc("POST /v1/practice/sessions/{id}/score", practiceHandlers.ScoreSession)
		mux.Handle("POST /v1/practice/weak-spots", auth.RequireAuth(http.HandlerFunc(practiceHandlers.StartWeakSpots)))
		mux.Handle("POST /v1/exams", auth.RequireAuth(http.HandlerFunc(practiceHandlers.StartExam)))
	}

	return auth.Middleware(validator, logger)(mux)
}

// PingDependencies checks Postgres then Redis.
func PingDependencies(pool *pgxpool.Pool, redis *redis.Client) Pinger {
	return func(ctx context.Context) error {
		if err := pool.Ping(ctx); err != nil {
			return err
		}
		return redis.Ping(ctx).Err()
	}
}

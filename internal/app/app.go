package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/exam-prep/internal/auth/jwt"
	"github.com/gokatarajesh/exam-prep/internal/config"
	"github.com/gokatarajesh/exam-prep/internal/db/repository"
	sqlcgen "github.com/gokatarajesh/exam-prep/internal/db/sqlc"
	"github.com/gokatarajesh/exam-prep/internal/logging"
	"github.com/gokatarajesh/exam-prep/internal/practice"
	"github.com/gokatarajesh/exam-prep/internal/question"
	"github.com/gokatarajesh/exam-prep/internal/scoring"
	"github.com/gokatarajesh/exam-prep/internal/selector"
	"github.com/gokatarajesh/exam-prep/internal/server"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server
}

// New bootstraps logger, Postgres, Redis, the question bank and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env, cfg.LogLevel)
	logger.Info().Msg("starting application bootstrap")

	bank, err := question.LoadBankFile(cfg.Bank.Path)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	logger.Info().Str("path", cfg.Bank.Path).Int("questions", bank.Len()).Msg("question bank loaded")

	pool, err := pgxpool.New(ctx, cfg.Postgres.DSN())
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	queries := sqlcgen.New(pool)
	masteryRepo := repository.NewMasteryRepository(queries)
	weakSpotRepo := repository.NewWeakSpotRepository(queries)

	selOpts := []selector.Option{selector.WithNewQuestionWeight(cfg.Selection.NewQuestionWeight)}
	if cfg.Selection.Seed != 0 {
		selOpts = append(selOpts, selector.WithSeed(cfg.Selection.Seed))
	}
	if cfg.Selection.MaxStoreWeight > 0 {
		selOpts = append(selOpts, selector.WithMaxStoreWeight(cfg.Selection.MaxStoreWeight))
	}
	sel, err := selector.New(selOpts...)
	if err != nil {
		pool.Close()
		_ = redisClient.Close()
		return nil, fmt.Errorf("build selector: %w", err)
	}
	checkStoredWeights(ctx, logger, masteryRepo, sel.NewQuestionWeight())

	scorer := scoring.NewEngine(scoring.Config{
		MinScaled:  scoring.DefaultConfig().MinScaled,
		MaxScaled:  scoring.DefaultConfig().MaxScaled,
		PassScaled: cfg.Session.PassScaled,
	})

	practiceSvc := practice.NewService(
		bank,
		masteryRepo,
		weakSpotRepo,
		sel,
		practice.NewCache(redisClient, cfg.Session.TTL),
		scorer,
		practice.NewMetrics(prometheus.DefaultRegisterer),
		logger,
		practice.ServiceOptions{
			DefaultCount: cfg.Session.DefaultSize,
			MaxCount:     cfg.Session.MaxSize,
			SessionTTL:   cfg.Session.TTL,

			WeakSpotMinIncorrect: cfg.Session.WeakSpotMinIncorrect,
			WeakSpotLimit:        cfg.Session.WeakSpotLimit,
		},
	)

	tokens := jwt.NewManager(jwt.TokenConfig{
		AccessSecret: []byte(cfg.Security.JWTSecret),
		Issuer:       cfg.Security.JWTIssuer,
	})

	apiServer := server.NewHTTPServer(
		cfg,
		logger,
		tokens,
		practice.NewHTTPHandlers(practiceSvc, logger),
		server.PingDependencies(pool, redisClient),
	)

	return &Application{
		cfg:    cfg,
		logger: logger,
		pool:   pool,
		redis:  redisClient,
		http:   apiServer,
	}, nil
}

// checkStoredWeights logs when the mastery table already holds weights that
// would outrank unseen questions. Startup continues either way.
func checkStoredWeights(ctx context.Context, logger zerolog.Logger, repo *repository.MasteryRepository, newWeight float64) {
	maxWeight, ok, err := repo.MaxAttemptedWeight(ctx)
	switch {
	case err != nil:
		logger.Warn().Err(err).Msg("could not read stored mastery weights")
	case ok && maxWeight >= newWeight:
		logger.Warn().
			Float64("store_max_weight", maxWeight).
			Float64("new_question_weight", newWeight).
			Msg("stored weights reach the new question weight; unseen questions lose priority")
	}
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

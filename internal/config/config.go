package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration shared across services.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"exam-prep"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Postgres  Postgres
	Redis     Redis
	Security  Security
	Bank      Bank
	Selection Selection
	Session   Session
}

// Postgres captures connection info for the mastery store.
type Postgres struct {
	Host     string `env:"PG_HOST,notEmpty"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER,notEmpty"`
	Password string `env:"PG_PASSWORD,notEmpty"`
	Database string `env:"PG_DATABASE,notEmpty"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns int    `env:"PG_MAX_CONNS" envDefault:"10"`
}

// ConnString renders the libpq-style connection string for a single connection.
func (p Postgres) ConnString() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// DSN is ConnString plus pgxpool sizing.
func (p Postgres) DSN() string {
	return fmt.Sprintf("%s pool_max_conns=%d", p.ConnString(), p.MaxConns)
}

// LoadPostgres parses only the Postgres block, for tools that need nothing else.
func LoadPostgres() (Postgres, error) {
	var pg Postgres
	if err := env.Parse(&pg); err != nil {
		return Postgres{}, fmt.Errorf("parse postgres config: %w", err)
	}
	return pg, nil
}

// Redis holds the session cache configuration.
type Redis struct {
	Addr     string `env:"REDIS_ADDR,notEmpty"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Security stores the secret used to verify access tokens.
type Security struct {
	JWTSecret string `env:"JWT_SECRET,notEmpty"`
	JWTIssuer string `env:"JWT_ISSUER" envDefault:"exam-prep"`
}

// Bank points at the master question file.
type Bank struct {
	Path string `env:"QUESTION_BANK_PATH" envDefault:"data/master_questions.json"`
}

// Selection tunes the adaptive selector.
type Selection struct {
	NewQuestionWeight float64 `env:"SELECTION_NEW_WEIGHT" envDefault:"5"`
	// MaxStoreWeight is the largest weight the grading workflow assigns to
	// attempted questions. Zero skips the startup check.
	MaxStoreWeight float64 `env:"SELECTION_MAX_STORE_WEIGHT" envDefault:"0"`
	// Seed fixes the random source; zero draws a fresh seed at startup.
	Seed uint64 `env:"SELECTION_SEED" envDefault:"0"`
}

// Session governs practice session sizing and retention.
type Session struct {
	DefaultSize int           `env:"SESSION_DEFAULT_SIZE" envDefault:"10"`
	MaxSize     int           `env:"SESSION_MAX_SIZE" envDefault:"65"`
	TTL         time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	PassScaled  int           `env:"SCORE_PASS_SCALED" envDefault:"700"`

	WeakSpotMinIncorrect int `env:"WEAK_SPOT_MIN_INCORRECT" envDefault:"2"`
	WeakSpotLimit        int `env:"WEAK_SPOT_LIMIT" envDefault:"20"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *App) validate() error {
	if c.Selection.NewQuestionWeight <= 0 {
		return fmt.Errorf("SELECTION_NEW_WEIGHT must be positive, got %v", c.Selection.NewQuestionWeight)
	}
	if c.Selection.MaxStoreWeight > 0 && c.Selection.NewQuestionWeight <= c.Selection.MaxStoreWeight {
		return fmt.Errorf("SELECTION_NEW_WEIGHT (%v) must exceed SELECTION_MAX_STORE_WEIGHT (%v)",
			c.Selection.NewQuestionWeight, c.Selection.MaxStoreWeight)
	}
	if c.Session.DefaultSize <= 0 || c.Session.MaxSize < c.Session.DefaultSize {
		return fmt.Errorf("session sizes invalid: default=%d max=%d", c.Session.DefaultSize, c.Session.MaxSize)
	}
	return nil
}

package app

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/premier-league/internal/config"
	"github.com/riskibarqy/premier-league/internal/domain/player"
	"github.com/riskibarqy/premier-league/internal/infrastructure/events"
	"github.com/riskibarqy/premier-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/premier-league/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/premier-league/internal/interfaces/httpapi"
	"github.com/riskibarqy/premier-league/internal/platform/logging"
	"github.com/riskibarqy/premier-league/internal/platform/resilience"
	"github.com/riskibarqy/premier-league/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// App holds the wired services and the resources they depend on.
type App struct {
	cfg     config.Config
	logger  *logging.Logger
	Players *usecase.PlayerService
	Imports *usecase.ImportService

	closers []func() error
}

// New wires storage, the event publisher and the services for cfg.
func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	a := &App{cfg: cfg, logger: logger}

	repo, err := a.openRepository(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	publisher, err := a.openPublisher(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Players = usecase.NewPlayerService(repo, publisher, logger)
	a.Imports = usecase.NewImportService(a.Players, cfg.ImportWorkers, logger)

	return a, nil
}

// NewHTTPServer builds the API server around the wired services.
func (a *App) NewHTTPServer() (*http.Server, error) {
	if strings.TrimSpace(a.cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(a.Players, a.logger)
	router := httpapi.NewRouter(handler, a.logger, a.cfg.CORSAllowedOrigins)

	return &http.Server{
		Addr:         a.cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
	}, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var firstErr error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.closers = nil
	return firstErr
}

func (a *App) openRepository(ctx context.Context) (player.Repository, error) {
	switch a.cfg.StorageDriver {
	case config.StorageDriverMemory:
		a.logger.Info("using memory storage")
		return memory.NewPlayerRepository(memory.SeedPlayers()), nil
	case config.StorageDriverPostgres:
		db, err := openDB(ctx, a.cfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, db.Close)

		repo := postgres.NewPlayerRepository(db)
		if err := repo.CheckSchema(ctx); err != nil {
			return nil, err
		}
		a.logger.Info("using postgres storage", "db_name", dbNameFromURL(a.cfg.DBURL))
		return repo, nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", a.cfg.StorageDriver)
	}
}

func (a *App) openPublisher(ctx context.Context) (usecase.EventPublisher, error) {
	if !a.cfg.EventsEnabled {
		return usecase.NopEventPublisher{}, nil
	}

	client, err := events.NewRedisClient(ctx, a.cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client.Close)

	a.logger.Info("player events enabled", "stream", a.cfg.EventsStream, "circuit_enabled", a.cfg.EventsCircuitEnabled)
	publisher := events.NewRedisStreamPublisher(client, a.cfg.EventsStream, a.cfg.EventsStreamMaxLen)
	return events.WithCircuitBreaker(publisher, resilience.CircuitBreakerConfig{
		Enabled:          a.cfg.EventsCircuitEnabled,
		FailureThreshold: a.cfg.EventsCircuitFailureCount,
		OpenTimeout:      a.cfg.EventsCircuitOpenTimeout,
		HalfOpenMaxReq:   a.cfg.EventsCircuitHalfOpenMax,
		OnStateChange: func(from, to resilience.CircuitState) {
			a.logger.Warn("player events circuit changed", "from", from, "to", to)
		},
	}), nil
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	if strings.TrimSpace(cfg.DBURL) == "" {
		return nil, fmt.Errorf("DB_URL is required for storage driver %q", cfg.StorageDriver)
	}

	db, err := otelsqlx.Open("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	return db, nil
}

// Package server wires configuration, storage, the auth service and the
// HTTP transport into a runnable application.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/authkeeper/internal/logging"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/config"
	"github.com/dmitrijs2005/authkeeper/internal/server/httpapi"
	"github.com/dmitrijs2005/authkeeper/internal/server/metrics"
	"github.com/dmitrijs2005/authkeeper/internal/server/password"
	"github.com/dmitrijs2005/authkeeper/internal/server/session"
	"github.com/dmitrijs2005/authkeeper/internal/server/shared/db"
	"github.com/dmitrijs2005/authkeeper/internal/server/users"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	repos       db.RepositoryManager
	metrics     *metrics.Metrics
	userService *users.Service
}

// newRepositoryManager is a seam for tests.
var newRepositoryManager = func(ctx context.Context, dsn string) (db.RepositoryManager, error) {
	if dsn == "" {
		return db.NewInMemoryRepositoryManager(), nil
	}
	return db.NewPostgresRepositoryManager(ctx, dsn)
}

// NewApp validates c and builds every component. An empty DSN selects the
// in-memory store.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(slog.LevelInfo)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config error: %w", err)
	}

	hasher, err := password.NewHasher(c.BcryptCost, 0)
	if err != nil {
		return nil, fmt.Errorf("hasher init error: %w", err)
	}

	issuer, err := auth.NewIssuer([]byte(c.SecretKey), c.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("issuer init error: %w", err)
	}

	carrier := session.NewCarrier(session.Options{
		Name:       c.CookieName,
		TTL:        c.TokenTTL,
		Production: c.IsProduction(),
	})

	repos, err := newRepositoryManager(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}
	if c.DatabaseDSN == "" {
		logger.Warn(ctx, "no database DSN configured, accounts are kept in memory")
	}

	m := metrics.NewMetrics()
	us := users.NewService(repos.Users(), hasher, issuer, carrier, logger, m)

	return &App{config: c, logger: logger, repos: repos, metrics: m, userService: us}, nil
}

// Users returns the auth service, for operator tooling.
func (app *App) Users() *users.Service {
	return app.userService
}

func (app *App) Close() error {
	return app.repos.Close()
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.metrics)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until ctx is cancelled or a termination signal arrives, then
// closes the store.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "environment", app.config.Environment)

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err.Error())
	}
	app.logger.Info(ctx, "App stopped")
}

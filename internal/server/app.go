// Package server wires the development backend: repositories, the user
// service, the HTTP router and a server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/smartmeet/internal/logging"
	"github.com/dmitrijs2005/smartmeet/internal/server/config"
	"github.com/dmitrijs2005/smartmeet/internal/server/httpapi"
	"github.com/dmitrijs2005/smartmeet/internal/server/shared/db"
	"github.com/dmitrijs2005/smartmeet/internal/server/users"
)

const (
	defaultSecretKey = "secretKey"
	shutdownTimeout  = 5 * time.Second
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	repos   db.RepositoryManager
	handler http.Handler
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	repos, err := db.NewRepositoryManager(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	if c.SecretKey == defaultSecretKey {
		logger.Warn(ctx, "using the built-in JWT secret; set -s for anything but local development")
	}

	us := users.NewService(repos.Users(), c.SecretKey, c.AccessTokenValidityDuration)
	router := httpapi.NewRouter(us, repos.Meetings(), logger)

	return &App{config: c, logger: logger, repos: repos, handler: router}, nil
}

// Handler exposes the router, mainly for tests.
func (app *App) Handler() http.Handler {
	return app.handler
}

// Run serves HTTP until ctx is cancelled, then shuts the server down and
// releases the repositories.
func (app *App) Run(ctx context.Context) error {
	defer func() {
		if err := app.repos.Close(); err != nil {
			app.logger.Error(ctx, "close repositories", "error", err)
		}
	}()

	ln, err := net.Listen("tcp", app.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", app.config.ListenAddr, err)
	}

	srv := &http.Server{
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting app...", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

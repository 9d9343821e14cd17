package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"github.com/dmitrijs2005/smartmeet/internal/client/client"
	"github.com/dmitrijs2005/smartmeet/internal/client/config"
	"github.com/dmitrijs2005/smartmeet/internal/client/services"
	"github.com/dmitrijs2005/smartmeet/internal/client/session"
	"github.com/dmitrijs2005/smartmeet/internal/logging"
)

// Bootstrap builds an App from configuration: it opens the session store
// selected by cfg.StoreKind and creates the HTTP API client. The caller
// must Close the App.
func Bootstrap(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Nop()
	}
	api := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, logger.With("component", "api"))

	var closers []io.Closer
	var store session.Store
	switch cfg.StoreKind {
	case config.StoreFile:
		store = session.NewFileStore(afero.NewOsFs(), cfg.SessionFile)
	case config.StoreSQLite:
		db, err := client.InitDatabase(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
		closers = append(closers, db)
		store = session.NewSQLiteStore(db)
	default:
		return nil, fmt.Errorf("unknown store kind %q", cfg.StoreKind)
	}

	mgr := session.NewManager(api, store, logger.With("component", "session"))
	app := NewApp(Deps{
		Config:   cfg,
		Session:  mgr,
		Meetings: services.NewMeetingService(api, mgr),
		Pinger:   api,
		Logger:   logger,
	})
	app.closers = closers
	return app, nil
}

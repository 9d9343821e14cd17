package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dmitrijs2005/smartmeet/internal/client/client"
	"github.com/dmitrijs2005/smartmeet/internal/client/config"
	"github.com/dmitrijs2005/smartmeet/internal/client/output"
	"github.com/dmitrijs2005/smartmeet/internal/client/services"
	"github.com/dmitrijs2005/smartmeet/internal/client/session"
	"github.com/dmitrijs2005/smartmeet/internal/logging"
)

// Mode is the connectivity state last observed by the watcher.
type Mode string

const (
	ModeUnknown Mode = ""
	ModeOnline  Mode = "online"
	ModeOffline Mode = "offline"
)

// Pinger probes backend reachability.
type Pinger interface {
	Ping(ctx context.Context) error
}

// App is the interactive client. It owns no network or storage state of its
// own; the session lives in the Manager.
type App struct {
	config    *config.Config
	session   *session.Manager
	meetings  services.MeetingService
	pinger    Pinger
	formatter output.Formatter
	logger    logging.Logger

	reader *bufio.Reader
	out    io.Writer

	modeMu sync.RWMutex
	mode   Mode

	closers []io.Closer
}

// Deps groups the collaborators of an App. Bootstrap fills it from config;
// tests fill it by hand.
type Deps struct {
	Config   *config.Config
	Session  *session.Manager
	Meetings services.MeetingService
	Pinger   Pinger
	Logger   logging.Logger
	In       io.Reader
	Out      io.Writer
}

func NewApp(d Deps) *App {
	if d.In == nil {
		d.In = os.Stdin
	}
	if d.Out == nil {
		d.Out = os.Stdout
	}
	if d.Logger == nil {
		d.Logger = logging.Nop()
	}
	format := output.FormatTable
	if d.Config != nil {
		format = output.Format(d.Config.OutputFormat)
	}
	return &App{
		config:    d.Config,
		session:   d.Session,
		meetings:  d.Meetings,
		pinger:    d.Pinger,
		formatter: output.NewFormatter(format),
		logger:    d.Logger,
		reader:    bufio.NewReader(d.In),
		out:       d.Out,
	}
}

// Close releases resources opened by Bootstrap.
func (a *App) Close() error {
	var first error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	a.closers = nil
	return first
}

// Run restores the previous session, starts the connectivity watcher and
// serves the REPL until the user exits or ctx is done.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to smartmeet CLI (type 'help' for commands)")

	if u := a.session.CachedUser(ctx); u != nil {
		fmt.Fprintf(a.out, "Resuming session of %s...\n", u.Email)
	}
	a.session.Restore(ctx)
	if u := a.session.CurrentUser(); u != nil {
		fmt.Fprintf(a.out, "Logged in as %s\n", u.Email)
	} else {
		fmt.Fprintln(a.out, "Not logged in. Use 'login' or 'register'.")
	}

	watchCtx, stop := context.WithCancel(ctx)
	defer stop()
	if a.pinger != nil && a.config != nil {
		go a.StartOnlineStatusWatcher(watchCtx, a.config.OnlineCheckInterval)
	}

	runREPL(ctx, a, a.getStatus, a.reader, a.out)
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	s := ""
	if u := a.session.CurrentUser(); u != nil {
		s = u.Email
	}
	if m := a.Mode(); m != ModeUnknown {
		if s != "" {
			s += " "
		}
		s += string(m)
	}
	if s != "" {
		s = "(" + s + ")"
	}
	return s
}

// report prints a user-facing message for err. Backend errors show the
// server's detail text.
func (a *App) report(ctx context.Context, action string, err error) {
	a.logger.Debug(ctx, action+" failed", "err", err)
	switch {
	case client.IsUnavailable(err):
		fmt.Fprintf(a.out, "%s failed: server unavailable\n", action)
	default:
		fmt.Fprintf(a.out, "%s failed: %s\n", action, err)
	}
}

func (a *App) print(data any) error {
	if err := a.formatter.Format(a.out, data); err != nil {
		return fmt.Errorf("render output: %w", err)
	}
	return nil
}

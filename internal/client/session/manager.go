// Package session owns the client's notion of "who is logged in".
//
// A Manager keeps the current user and bearer token in memory and mirrors
// them to a persistent Store (SQLiteStore or FileStore). The user and the
// token are always present together: either both are set or neither is.
//
// Lifecycle:
//
//	NewManager          -> restoring (IsLoading() == true)
//	Restore             -> anonymous | authenticated, exactly once
//	Login / Register    -> authenticated
//	Logout              -> anonymous
//
// Restore revalidates a stored token with IdentityClient.Me. Any failure,
// including a cancelled ctx, removes the stored session and leaves the
// Manager anonymous; nothing is returned to the caller.
//
// Register is two requests. The account is created first and then Login runs
// with the same email and password. When the second step fails the account
// exists on the server but no session is opened; the returned error matches
// ErrRegisteredLoginFailed and still wraps the login error.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/smartmeet/internal/client/models"
	"github.com/dmitrijs2005/smartmeet/internal/logging"
)

var (
	// ErrRegisteredLoginFailed marks a Register whose account was created but
	// whose chained login failed.
	ErrRegisteredLoginFailed = errors.New("account created but login failed")

	// ErrEmptyToken is returned when a successful login response carries no
	// access token.
	ErrEmptyToken = errors.New("server returned an empty access token")
)

// IdentityClient is the part of the backend API the Manager needs.
// *client.HTTPClient implements it.
type IdentityClient interface {
	Login(ctx context.Context, identifier, secret string) (*models.LoginResponse, error)
	Register(ctx context.Context, reg models.Registration) (*models.User, error)
	Me(ctx context.Context, token string) (*models.User, error)
}

// State is the lifecycle phase of a Manager.
type State int

const (
	// StateRestoring lasts until the first Restore completes.
	StateRestoring State = iota
	StateAnonymous
	StateAuthenticated
)

func (s State) String() string {
	switch s {
	case StateRestoring:
		return "restoring"
	case StateAnonymous:
		return "anonymous"
	case StateAuthenticated:
		return "authenticated"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Manager is safe for concurrent reads. Mutating calls are not serialized
// across their network round trips: two concurrent Logins race and the last
// one to finish wins.
type Manager struct {
	client IdentityClient
	store  Store
	logger logging.Logger

	restoreOnce sync.Once

	mu      sync.RWMutex
	user    *models.User
	token   string
	loading bool
}

// NewManager returns a Manager with no user, still in the restoring phase.
func NewManager(client IdentityClient, store Store, logger logging.Logger) *Manager {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Manager{
		client:  client,
		store:   store,
		logger:  logger,
		loading: true,
	}
}

// Restore revalidates a persisted token. It runs at most once per Manager;
// later calls return immediately. Every failure is logged and ends in the
// anonymous state with the persisted session removed.
func (m *Manager) Restore(ctx context.Context) {
	m.restoreOnce.Do(func() {
		defer func() {
			m.mu.Lock()
			m.loading = false
			m.mu.Unlock()
		}()
		m.restore(ctx)
	})
}

func (m *Manager) restore(ctx context.Context) {
	token, _, err := m.store.Load(ctx)
	if err != nil {
		m.logger.Warn(ctx, "session restore: reading stored session failed", "err", err)
		m.discardStored(ctx)
		return
	}
	if token == "" {
		m.logger.Debug(ctx, "session restore: no stored token")
		return
	}

	user, err := m.client.Me(ctx, token)
	if err != nil {
		m.logger.Info(ctx, "session restore: stored token rejected", "err", err)
		m.discardStored(ctx)
		return
	}

	raw, err := json.Marshal(user)
	if err != nil {
		m.logger.Warn(ctx, "session restore: encoding user failed", "err", err)
		m.discardStored(ctx)
		return
	}
	if err := m.store.Save(ctx, token, raw); err != nil {
		m.logger.Warn(ctx, "session restore: refreshing user cache failed", "err", err)
	}

	m.mu.Lock()
	m.user = user
	m.token = token
	m.mu.Unlock()

	m.logger.Info(ctx, "session restored", "user", user.Email)
}

// discardStored clears the store even when ctx is already done, so an
// interrupted restore does not leave a stale token behind.
func (m *Manager) discardStored(ctx context.Context) {
	if err := m.store.Clear(context.WithoutCancel(ctx)); err != nil {
		m.logger.Warn(ctx, "session restore: clearing stored session failed", "err", err)
	}
}

// Login exchanges credentials for a token. The token and user are persisted
// in one Store.Save before the in-memory session is updated.
//
// Errors from the backend are returned unchanged (a *client.APIError keeps
// the server's detail). A response without an access token fails with
// ErrEmptyToken. On any error nothing is persisted and the session is left
// as it was.
func (m *Manager) Login(ctx context.Context, creds models.Credentials) error {
	resp, err := m.client.Login(ctx, creds.Identifier, creds.Secret)
	if err != nil {
		m.logger.Info(ctx, "login failed", "user", creds.Identifier, "err", err)
		return err
	}
	if resp == nil || resp.AccessToken == "" {
		m.logger.Warn(ctx, "login response has no access token", "user", creds.Identifier)
		return ErrEmptyToken
	}

	user := resp.User
	raw, err := json.Marshal(&user)
	if err != nil {
		return fmt.Errorf("encode user: %w", err)
	}
	if err := m.store.Save(ctx, resp.AccessToken, raw); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	m.mu.Lock()
	m.user = &user
	m.token = resp.AccessToken
	m.mu.Unlock()

	m.logger.Info(ctx, "logged in", "user", user.Email)
	return nil
}

// Register creates an account and then logs into it with the same email and
// password. The two steps are not atomic.
//
//   - registration fails: the server error is returned as is, no login is tried
//   - registration succeeds, login fails: the account exists, no session is
//     opened and the error matches both ErrRegisteredLoginFailed and the
//     login error (errors.Is / errors.As)
func (m *Manager) Register(ctx context.Context, reg models.Registration) error {
	if _, err := m.client.Register(ctx, reg); err != nil {
		m.logger.Info(ctx, "registration failed", "user", reg.Email, "err", err)
		return err
	}
	m.logger.Info(ctx, "registered", "user", reg.Email)

	if err := m.Login(ctx, models.Credentials{Identifier: reg.Email, Secret: reg.Password}); err != nil {
		return fmt.Errorf("%w: %w", ErrRegisteredLoginFailed, err)
	}
	return nil
}

// Logout forgets the session. Memory is cleared first and unconditionally;
// the returned error only reports a failure to remove the persisted copy.
// No request is sent to the backend.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	was := m.user
	m.user = nil
	m.token = ""
	m.mu.Unlock()

	if err := m.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear stored session: %w", err)
	}
	if was != nil {
		m.logger.Info(ctx, "logged out", "user", was.Email)
	}
	return nil
}

// CurrentUser returns a copy of the logged-in user, or nil.
func (m *Manager) CurrentUser() *models.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user != nil
}

// IsLoading reports whether the startup restoration is still pending.
func (m *Manager) IsLoading() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loading
}

func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	switch {
	case m.loading:
		return StateRestoring
	case m.user != nil:
		return StateAuthenticated
	default:
		return StateAnonymous
	}
}

// Token returns the bearer token of the current session, or "".
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// CachedUser decodes the user record persisted by the last session. It is a
// display hint for the time before Restore finishes and says nothing about
// whether the token is still valid. It returns nil when nothing usable is
// stored.
func (m *Manager) CachedUser(ctx context.Context) *models.User {
	_, raw, err := m.store.Load(ctx)
	if err != nil || len(raw) == 0 {
		return nil
	}
	var u models.User
	if err := json.Unmarshal(raw, &u); err != nil {
		m.logger.Debug(ctx, "cached user is unreadable", "err", err)
		return nil
	}
	return &u
}

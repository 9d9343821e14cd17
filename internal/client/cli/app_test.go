package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/smartmeet/internal/client/client"
	"github.com/dmitrijs2005/smartmeet/internal/client/config"
	"github.com/dmitrijs2005/smartmeet/internal/client/models"
	"github.com/dmitrijs2005/smartmeet/internal/client/services"
	"github.com/dmitrijs2005/smartmeet/internal/client/session"
)

type fakeIdentity struct {
	loginErr error
	regErr   error
	meErr    error
	logins   int
}

func (f *fakeIdentity) Login(_ context.Context, identifier, _ string) (*models.LoginResponse, error) {
	f.logins++
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.LoginResponse{AccessToken: "T", TokenType: "bearer",
		User: models.User{ID: "1", Email: identifier, FullName: "Ann", IsActive: true}}, nil
}

func (f *fakeIdentity) Register(_ context.Context, reg models.Registration) (*models.User, error) {
	if f.regErr != nil {
		return nil, f.regErr
	}
	return &models.User{ID: "1", Email: reg.Email, FullName: reg.FullName}, nil
}

func (f *fakeIdentity) Me(context.Context, string) (*models.User, error) {
	if f.meErr != nil {
		return nil, f.meErr
	}
	return &models.User{ID: "1", Email: "a@b.com", FullName: "Ann"}, nil
}

type mapStore struct {
	mu    sync.Mutex
	token string
	user  []byte
}

func (s *mapStore) Load(context.Context) (string, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.user, nil
}

func (s *mapStore) Save(_ context.Context, token string, user []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = token, user
	return nil
}

func (s *mapStore) Clear(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.user = "", nil
	return nil
}

type fakeMeetings struct {
	services.MeetingService

	created models.MeetingCreate
	status  models.TaskStatus
	err     error
}

func (f *fakeMeetings) List(context.Context, int, int) ([]models.Meeting, error) {
	return []models.Meeting{{ID: "m1", Title: "Standup", CreatedAt: "2024-01-01"}}, f.err
}

func (f *fakeMeetings) Get(_ context.Context, id string) (*models.Meeting, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Meeting{ID: id, Title: "Standup", Summary: "All good"}, nil
}

func (f *fakeMeetings) Create(_ context.Context, m models.MeetingCreate) (*models.Meeting, error) {
	f.created = m
	return &models.Meeting{ID: "m9", Title: m.Title}, f.err
}

func (f *fakeMeetings) ActionItems(_ context.Context, status models.TaskStatus) ([]models.ActionItem, error) {
	f.status = status
	return []models.ActionItem{{ID: "t1", Text: "Send notes", Status: models.TaskPending}}, f.err
}

func (f *fakeMeetings) MeetingActionItems(context.Context, string) ([]models.ActionItem, error) {
	return nil, f.err
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	old := readPassword
	readPassword = func(int) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { readPassword = old })
}

type fixture struct {
	app   *App
	out   *bytes.Buffer
	id    *fakeIdentity
	store *mapStore
	meets *fakeMeetings
}

func newFixture(t *testing.T, input string, id *fakeIdentity, store *mapStore) *fixture {
	t.Helper()
	if id == nil {
		id = &fakeIdentity{}
	}
	if store == nil {
		store = &mapStore{}
	}
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.OnlineCheckInterval = time.Hour

	out := &bytes.Buffer{}
	meets := &fakeMeetings{}
	app := NewApp(Deps{
		Config:   cfg,
		Session:  session.NewManager(id, store, nil),
		Meetings: meets,
		In:       strings.NewReader(input),
		Out:      out,
	})
	return &fixture{app: app, out: out, id: id, store: store, meets: meets}
}

func TestRun_LoginBrowseLogout(t *testing.T) {
	stubPassword(t, "pw")
	f := newFixture(t, strings.Join([]string{
		"login", "a@b.com",
		"whoami",
		"meetings",
		"meeting m1",
		"tasks pending",
		"logout",
		"exit",
	}, "\n")+"\n", nil, nil)

	f.app.Run(context.Background())

	text := f.out.String()
	assert.Contains(t, text, "Not logged in. Use 'login' or 'register'.")
	assert.Contains(t, text, "Logged in as Ann")
	assert.Contains(t, text, "a@b.com")
	assert.Contains(t, text, "Standup")
	assert.Contains(t, text, "All good")
	assert.Contains(t, text, "Send notes")
	assert.Contains(t, text, "Logged out.")
	assert.Equal(t, models.TaskPending, f.meets.status)
	assert.Empty(t, f.store.token)
	assert.False(t, f.app.isLoggedIn())
}

func TestRun_RestoresStoredSession(t *testing.T) {
	store := &mapStore{token: "T", user: []byte(`{"id":"1","email":"a@b.com"}`)}
	f := newFixture(t, "exit\n", nil, store)

	f.app.Run(context.Background())

	text := f.out.String()
	assert.Contains(t, text, "Resuming session of a@b.com...")
	assert.Contains(t, text, "Logged in as a@b.com")
	assert.Contains(t, text, "smartmeet (a@b.com)> ")
}

func TestRun_RejectedStoredSession(t *testing.T) {
	store := &mapStore{token: "stale", user: []byte(`{"id":"1","email":"a@b.com"}`)}
	id := &fakeIdentity{meErr: &client.APIError{StatusCode: http.StatusUnauthorized}}
	f := newFixture(t, "exit\n", id, store)

	f.app.Run(context.Background())

	assert.Contains(t, f.out.String(), "Not logged in.")
	assert.Empty(t, store.token)
}

func TestLogin_ShowsServerDetail(t *testing.T) {
	stubPassword(t, "bad")
	id := &fakeIdentity{loginErr: &client.APIError{StatusCode: http.StatusUnauthorized, Detail: "Incorrect email or password"}}
	f := newFixture(t, "a@b.com\n", id, nil)

	err := f.app.Login(context.Background())

	require.Error(t, err)
	assert.Contains(t, f.out.String(), "Login failed: Incorrect email or password")
	assert.False(t, f.app.isLoggedIn())
}

func TestRegister_CreatesAndLogsIn(t *testing.T) {
	stubPassword(t, "pw")
	f := newFixture(t, "a@b.com\nAnn\n", nil, nil)

	require.NoError(t, f.app.Register(context.Background()))
	assert.Contains(t, f.out.String(), "Welcome, Ann!")
	assert.Equal(t, 1, f.id.logins)
	assert.Equal(t, "T", f.store.token)
}

func TestRegister_CreatedButLoginFailed(t *testing.T) {
	stubPassword(t, "pw")
	id := &fakeIdentity{loginErr: &client.APIError{StatusCode: http.StatusUnauthorized, Detail: "Incorrect email or password"}}
	f := newFixture(t, "a@b.com\nAnn\n", id, nil)

	err := f.app.Register(context.Background())

	require.ErrorIs(t, err, session.ErrRegisteredLoginFailed)
	text := f.out.String()
	assert.Contains(t, text, "Account created; please log in with 'login'.")
	assert.Contains(t, text, "Automatic login failed: Incorrect email or password")
	assert.NotContains(t, text, "Registration failed")
	assert.Equal(t, 1, f.id.logins)
	assert.False(t, f.app.isLoggedIn())
	assert.Empty(t, f.store.token)
}

func TestRegister_Unavailable(t *testing.T) {
	stubPassword(t, "pw")
	id := &fakeIdentity{regErr: client.ErrUnavailable}
	f := newFixture(t, "a@b.com\nAnn\n", id, nil)

	require.Error(t, f.app.Register(context.Background()))
	assert.Contains(t, f.out.String(), "Registration failed: server unavailable")
	assert.Zero(t, f.id.logins)
}

func TestNewMeeting(t *testing.T) {
	f := newFixture(t, "Retro\nline one\nline two\n\n", nil, nil)

	require.NoError(t, f.app.NewMeeting(context.Background()))
	assert.Equal(t, models.MeetingCreate{Title: "Retro", Description: "line one\nline two"}, f.meets.created)
	assert.Contains(t, f.out.String(), "Created meeting m9")
}

func TestMeetings_ErrorReported(t *testing.T) {
	f := newFixture(t, "", nil, nil)
	f.meets.err = services.ErrNotAuthenticated

	require.ErrorIs(t, f.app.Meetings(context.Background()), services.ErrNotAuthenticated)
	assert.Contains(t, f.out.String(), "Listing meetings failed: not logged in")
}

func TestJSONOutput(t *testing.T) {
	f := newFixture(t, "", nil, nil)
	f.app.config.OutputFormat = config.OutputJSON
	f.app = NewApp(Deps{Config: f.app.config, Session: f.app.session, Meetings: f.meets, Out: f.out})

	require.NoError(t, f.app.Tasks(context.Background(), ""))
	assert.JSONEq(t, `[{"id":"t1","meeting_id":"","text":"Send notes","assignees":null,"organizations":null,"confidence":0,"status":"pending","priority":"","created_at":""}]`, f.out.String())
}

type flakyPinger struct {
	calls atomic.Int32
	fail  atomic.Bool
}

func (p *flakyPinger) Ping(context.Context) error {
	p.calls.Add(1)
	if p.fail.Load() {
		return errors.New("down")
	}
	return nil
}

func TestOnlineStatusWatcher(t *testing.T) {
	p := &flakyPinger{}
	app := NewApp(Deps{Session: session.NewManager(&fakeIdentity{}, &mapStore{}, nil), Pinger: p, Out: &bytes.Buffer{}})
	assert.Equal(t, ModeUnknown, app.Mode())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		app.StartOnlineStatusWatcher(ctx, 5*time.Millisecond)
		close(done)
	}()

	require.Eventually(t, func() bool { return app.Mode() == ModeOnline }, time.Second, time.Millisecond)
	p.fail.Store(true)
	require.Eventually(t, func() bool { return app.Mode() == ModeOffline }, time.Second, time.Millisecond)
	assert.Equal(t, "(offline)", app.getStatus())

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestBootstrap_FileStore(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.StoreKind = config.StoreFile
	cfg.SessionFile = t.TempDir() + "/session.json"

	app, err := Bootstrap(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.False(t, app.isLoggedIn())
	require.NoError(t, app.Close())
}

func TestBootstrap_SQLiteStore(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.DatabasePath = t.TempDir() + "/smartmeet.db"

	app, err := Bootstrap(context.Background(), cfg, nil)
	require.NoError(t, err)
	require.Len(t, app.closers, 1)
	require.NoError(t, app.Close())
	require.NoError(t, app.Close())
}

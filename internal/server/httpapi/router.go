// Package httpapi serves the smartmeet HTTP contract: identity, meetings,
// action items and a health probe.
package httpapi

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/dmitrijs2005/smartmeet/internal/logging"
	"github.com/dmitrijs2005/smartmeet/internal/server/meetings"
	"github.com/dmitrijs2005/smartmeet/internal/server/users"
)

// UserService is the identity backend of the router.
type UserService interface {
	UserAuthenticator
	Register(ctx context.Context, email, fullName, password string) (*users.User, error)
	Login(ctx context.Context, email, password string) (string, *users.User, error)
}

// MeetingStore is the meetings backend of the router.
type MeetingStore interface {
	Create(ctx context.Context, ownerID, title, description string) (*meetings.Meeting, error)
	List(ctx context.Context, ownerID string, skip, limit int) ([]meetings.Meeting, error)
	Get(ctx context.Context, ownerID, id string) (*meetings.Meeting, error)
	ActionItems(ctx context.Context, ownerID, status string, skip, limit int) ([]meetings.ActionItem, error)
	MeetingActionItems(ctx context.Context, ownerID, meetingID string) ([]meetings.ActionItem, error)
}

type handlers struct {
	users    UserService
	meetings MeetingStore
	logger   logging.Logger
}

func NewRouter(us UserService, ms MeetingStore, logger logging.Logger) *mux.Router {
	h := &handlers{users: us, meetings: ms, logger: logger}

	r := mux.NewRouter()
	r.Use(LoggingMiddleware(logger))

	r.HandleFunc("/health", h.health).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
	api.HandleFunc("/auth/register", h.register).Methods(http.MethodPost)

	protected := api.NewRoute().Subrouter()
	protected.Use(AuthMiddleware(us, logger))
	protected.HandleFunc("/auth/me", h.me).Methods(http.MethodGet)
	protected.HandleFunc("/meetings/", h.listMeetings).Methods(http.MethodGet)
	protected.HandleFunc("/meetings/", h.createMeeting).Methods(http.MethodPost)
	protected.HandleFunc("/meetings/{id}", h.getMeeting).Methods(http.MethodGet)
	protected.HandleFunc("/tasks/", h.listTasks).Methods(http.MethodGet)
	protected.HandleFunc("/tasks/meeting/{id}", h.meetingTasks).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeDetail(w, http.StatusNotFound, "Not Found")
	})

	return r
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

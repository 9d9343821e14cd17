// Package services contains application services for the smartmeet client.
// They combine the API client with the current session so that callers do
// not handle tokens themselves.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/smartmeet/internal/client/client"
	"github.com/dmitrijs2005/smartmeet/internal/client/models"
)

// ErrNotAuthenticated is returned when an operation needs a session and
// there is none. It is detected locally; no request is sent.
var ErrNotAuthenticated = errors.New("not logged in")

// ErrEmptyTitle is returned by Create for a blank title.
var ErrEmptyTitle = errors.New("meeting title is required")

// Paging defaults used by the meetings and tasks views.
const (
	DefaultMeetingsLimit = 20
	DefaultTasksLimit    = 50
)

// TokenSource yields the bearer token of the current session, or "".
// *session.Manager implements it.
type TokenSource interface {
	Token() string
}

// MeetingService lists and creates meetings and their action items on
// behalf of the logged-in user.
//
// All methods must honor context cancellation/timeouts.
type MeetingService interface {
	List(ctx context.Context, skip, limit int) ([]models.Meeting, error)
	Get(ctx context.Context, id string) (*models.Meeting, error)
	Create(ctx context.Context, m models.MeetingCreate) (*models.Meeting, error)
	ActionItems(ctx context.Context, status models.TaskStatus) ([]models.ActionItem, error)
	MeetingActionItems(ctx context.Context, meetingID string) ([]models.ActionItem, error)
}

type meetingService struct {
	client  client.Client
	session TokenSource
}

// NewMeetingService constructs a MeetingService bound to the given API
// client and session.
func NewMeetingService(c client.Client, s TokenSource) MeetingService {
	return &meetingService{client: c, session: s}
}

func (s *meetingService) token() (string, error) {
	t := s.session.Token()
	if t == "" {
		return "", ErrNotAuthenticated
	}
	return t, nil
}

// List returns meetings newest first. A non-positive limit selects
// DefaultMeetingsLimit.
func (s *meetingService) List(ctx context.Context, skip, limit int) ([]models.Meeting, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = DefaultMeetingsLimit
	}
	return s.client.ListMeetings(ctx, token, skip, limit)
}

func (s *meetingService) Get(ctx context.Context, id string) (*models.Meeting, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.client.GetMeeting(ctx, token, id)
}

func (s *meetingService) Create(ctx context.Context, m models.MeetingCreate) (*models.Meeting, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	m.Title = strings.TrimSpace(m.Title)
	m.Description = strings.TrimSpace(m.Description)
	if m.Title == "" {
		return nil, ErrEmptyTitle
	}
	return s.client.CreateMeeting(ctx, token, m)
}

// ActionItems lists the user's action items, optionally filtered by status.
func (s *meetingService) ActionItems(ctx context.Context, status models.TaskStatus) ([]models.ActionItem, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("unknown task status %q", status)
	}
	return s.client.ListActionItems(ctx, token, status, 0, DefaultTasksLimit)
}

func (s *meetingService) MeetingActionItems(ctx context.Context, meetingID string) ([]models.ActionItem, error) {
	token, err := s.token()
	if err != nil {
		return nil, err
	}
	return s.client.ListMeetingActionItems(ctx, token, meetingID)
}

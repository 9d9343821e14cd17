package client

import (
	"context"

	"github.com/dmitrijs2005/smartmeet/internal/client/models"
)

// Client is the transport-agnostic contract of the smartmeet backend.
// Calls that act on behalf of a user take the bearer token explicitly.
type Client interface {
	Login(ctx context.Context, identifier, secret string) (*models.LoginResponse, error)
	Register(ctx context.Context, reg models.Registration) (*models.User, error)
	Me(ctx context.Context, token string) (*models.User, error)
	Ping(ctx context.Context) error

	ListMeetings(ctx context.Context, token string, skip, limit int) ([]models.Meeting, error)
	GetMeeting(ctx context.Context, token, id string) (*models.Meeting, error)
	CreateMeeting(ctx context.Context, token string, m models.MeetingCreate) (*models.Meeting, error)
	ListActionItems(ctx context.Context, token string, status models.TaskStatus, skip, limit int) ([]models.ActionItem, error)
	ListMeetingActionItems(ctx context.Context, token, meetingID string) ([]models.ActionItem, error)
}

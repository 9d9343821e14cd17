package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/smartmeet/internal/client/client"
	"github.com/dmitrijs2005/smartmeet/internal/client/models"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

type fakeClient struct {
	client.Client // unimplemented methods panic

	token      string
	skip       int
	limit      int
	status     models.TaskStatus
	created    models.MeetingCreate
	meetingID  string
	calls      int
	err        error
	meetings   []models.Meeting
	actionItem []models.ActionItem
}

func (f *fakeClient) ListMeetings(_ context.Context, token string, skip, limit int) ([]models.Meeting, error) {
	f.calls++
	f.token, f.skip, f.limit = token, skip, limit
	return f.meetings, f.err
}

func (f *fakeClient) GetMeeting(_ context.Context, token, id string) (*models.Meeting, error) {
	f.calls++
	f.token, f.meetingID = token, id
	if f.err != nil {
		return nil, f.err
	}
	return &models.Meeting{ID: id}, nil
}

func (f *fakeClient) CreateMeeting(_ context.Context, token string, m models.MeetingCreate) (*models.Meeting, error) {
	f.calls++
	f.token, f.created = token, m
	return &models.Meeting{ID: "new", Title: m.Title}, f.err
}

func (f *fakeClient) ListActionItems(_ context.Context, token string, status models.TaskStatus, _, limit int) ([]models.ActionItem, error) {
	f.calls++
	f.token, f.status, f.limit = token, status, limit
	return f.actionItem, f.err
}

func (f *fakeClient) ListMeetingActionItems(_ context.Context, token, meetingID string) ([]models.ActionItem, error) {
	f.calls++
	f.token, f.meetingID = token, meetingID
	return f.actionItem, f.err
}

func TestMeetingService_RequiresSession(t *testing.T) {
	fc := &fakeClient{}
	svc := NewMeetingService(fc, staticToken(""))
	ctx := context.Background()

	calls := map[string]func() error{
		"list":   func() error { _, err := svc.List(ctx, 0, 0); return err },
		"get":    func() error { _, err := svc.Get(ctx, "m1"); return err },
		"create": func() error { _, err := svc.Create(ctx, models.MeetingCreate{Title: "x"}); return err },
		"tasks":  func() error { _, err := svc.ActionItems(ctx, ""); return err },
		"meeting tasks": func() error {
			_, err := svc.MeetingActionItems(ctx, "m1")
			return err
		},
	}
	for name, call := range calls {
		t.Run(name, func(t *testing.T) {
			require.ErrorIs(t, call(), ErrNotAuthenticated)
		})
	}
	assert.Zero(t, fc.calls)
}

func TestList_Defaults(t *testing.T) {
	fc := &fakeClient{meetings: []models.Meeting{{ID: "m1"}}}
	svc := NewMeetingService(fc, staticToken("T"))

	got, err := svc.List(context.Background(), -3, 0)
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "T", fc.token)
	assert.Equal(t, 0, fc.skip)
	assert.Equal(t, DefaultMeetingsLimit, fc.limit)
}

func TestCreate_TrimsAndValidates(t *testing.T) {
	fc := &fakeClient{}
	svc := NewMeetingService(fc, staticToken("T"))

	_, err := svc.Create(context.Background(), models.MeetingCreate{Title: "   "})
	require.ErrorIs(t, err, ErrEmptyTitle)
	assert.Zero(t, fc.calls)

	m, err := svc.Create(context.Background(), models.MeetingCreate{Title: " Retro ", Description: " notes "})
	require.NoError(t, err)
	assert.Equal(t, "Retro", m.Title)
	assert.Equal(t, models.MeetingCreate{Title: "Retro", Description: "notes"}, fc.created)
}

func TestActionItems_StatusFilter(t *testing.T) {
	fc := &fakeClient{}
	svc := NewMeetingService(fc, staticToken("T"))

	_, err := svc.ActionItems(context.Background(), "bogus")
	require.Error(t, err)
	assert.Zero(t, fc.calls)

	_, err = svc.ActionItems(context.Background(), models.TaskCompleted)
	require.NoError(t, err)
	assert.Equal(t, models.TaskCompleted, fc.status)
	assert.Equal(t, DefaultTasksLimit, fc.limit)
}

func TestErrorsPassThrough(t *testing.T) {
	apiErr := &client.APIError{StatusCode: 404, Detail: "Meeting not found"}
	fc := &fakeClient{err: apiErr}
	svc := NewMeetingService(fc, staticToken("T"))

	_, err := svc.Get(context.Background(), "missing")
	assert.True(t, errors.Is(err, apiErr))
	assert.Equal(t, "missing", fc.meetingID)

	_, err = svc.MeetingActionItems(context.Background(), "m1")
	assert.Same(t, apiErr, err)
}

package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoginResponse_DecodesBackendShape(t *testing.T) {
	body := `{"access_token":"T","token_type":"bearer","user":{"id":"1","email":"a@b.com","full_name":"A","is_active":true,"created_at":"2024-01-01"}}`

	var resp LoginResponse
	require.NoError(t, json.Unmarshal([]byte(body), &resp))

	require.Equal(t, "T", resp.AccessToken)
	require.Equal(t, "bearer", resp.TokenType)
	require.Equal(t, User{ID: "1", Email: "a@b.com", FullName: "A", IsActive: true, CreatedAt: "2024-01-01"}, resp.User)
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-05T10:11:12", time.Date(2024, 3, 5, 10, 11, 12, 0, time.UTC)},
		{"2024-03-05T10:11:12.123456", time.Date(2024, 3, 5, 10, 11, 12, 123456000, time.UTC)},
		{"2024-03-05T10:11:12Z", time.Date(2024, 3, 5, 10, 11, 12, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := ParseTimestamp(tt.in)
		require.NoError(t, err, tt.in)
		require.True(t, tt.want.Equal(got), "%s: got %v", tt.in, got)
	}

	_, err := ParseTimestamp("yesterday")
	require.ErrorIs(t, err, ErrBadTimestamp)
}

func TestTaskStatus_Valid(t *testing.T) {
	require.True(t, TaskPending.Valid())
	require.True(t, TaskCancelled.Valid())
	require.False(t, TaskStatus("done").Valid())
}

func TestUser_AcceptsDocumentID(t *testing.T) {
	var u User
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"65f0","email":"x@y.z"}`), &u))
	require.Equal(t, "65f0", u.ID)

	var both User
	require.NoError(t, json.Unmarshal([]byte(`{"id":"1","_id":"2"}`), &both))
	require.Equal(t, "1", both.ID)

	b, err := json.Marshal(u)
	require.NoError(t, err)
	require.Contains(t, string(b), `"id":"65f0"`)
}

func TestMeeting_AcceptsDocumentID(t *testing.T) {
	var m Meeting
	require.NoError(t, json.Unmarshal([]byte(`{"_id":"m1","title":"Standup","transcription_status":"completed"}`), &m))
	require.Equal(t, "m1", m.ID)
	require.Equal(t, StatusCompleted, m.TranscriptionStatus)
}

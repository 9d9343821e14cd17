package httpapi

import (
	"time"

	"github.com/dmitrijs2005/smartmeet/internal/server/meetings"
	"github.com/dmitrijs2005/smartmeet/internal/server/users"
)

type userResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

type tokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        userResponse `json:"user"`
}

type registerRequest struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

type meetingResponse struct {
	ID                     string `json:"id"`
	Title                  string `json:"title"`
	Description            string `json:"description,omitempty"`
	Transcript             string `json:"transcript,omitempty"`
	Summary                string `json:"summary,omitempty"`
	ActionItemsCount       int    `json:"action_items_count"`
	TranscriptionStatus    string `json:"transcription_status"`
	SummarizationStatus    string `json:"summarization_status"`
	ActionExtractionStatus string `json:"action_extraction_status"`
	CreatedAt              string `json:"created_at"`
}

type actionItemResponse struct {
	ID            string   `json:"id"`
	MeetingID     string   `json:"meeting_id"`
	Text          string   `json:"text"`
	Assignees     []string `json:"assignees"`
	Organizations []string `json:"organizations"`
	Confidence    float64  `json:"confidence"`
	Status        string   `json:"status"`
	Priority      string   `json:"priority"`
	CreatedAt     string   `json:"created_at"`
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func toUserResponse(u *users.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		IsActive:  u.IsActive,
		CreatedAt: formatTime(u.CreatedAt),
	}
}

func toMeetingResponse(m *meetings.Meeting) meetingResponse {
	return meetingResponse{
		ID:                     m.ID,
		Title:                  m.Title,
		Description:            m.Description,
		Transcript:             m.Transcript,
		Summary:                m.Summary,
		ActionItemsCount:       m.ActionItemsCount,
		TranscriptionStatus:    string(m.TranscriptionStatus),
		SummarizationStatus:    string(m.SummarizationStatus),
		ActionExtractionStatus: string(m.ActionExtractionStatus),
		CreatedAt:              formatTime(m.CreatedAt),
	}
}

func toActionItemResponses(items []meetings.ActionItem) []actionItemResponse {
	out := make([]actionItemResponse, 0, len(items))
	for _, it := range items {
		assignees := it.Assignees
		if assignees == nil {
			assignees = []string{}
		}
		out = append(out, actionItemResponse{
			ID:            it.ID,
			MeetingID:     it.MeetingID,
			Text:          it.Text,
			Assignees:     assignees,
			Organizations: []string{},
			Status:        it.Status,
			Priority:      it.Priority,
			CreatedAt:     formatTime(it.CreatedAt),
		})
	}
	return out
}

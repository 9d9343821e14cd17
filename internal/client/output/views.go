package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/smartmeet/internal/client/models"
)

const textWidth = 48

// formatDate renders a backend timestamp as a short local date, or returns
// it unchanged when it cannot be parsed.
func formatDate(s string) string {
	if s == "" {
		return "-"
	}
	t, err := models.ParseTimestamp(s)
	if err != nil {
		return s
	}
	if len(s) == len(time.DateOnly) {
		return t.Format(time.DateOnly)
	}
	return t.Format("2006-01-02 15:04")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// UserView presents a single user.
type UserView models.User

func (u UserView) Table() Table {
	return Table{
		Headers: []string{"FIELD", "VALUE"},
		Rows: [][]string{
			{"id", u.ID},
			{"email", u.Email},
			{"full_name", orDash(u.FullName)},
			{"active", fmt.Sprintf("%t", u.IsActive)},
			{"member since", formatDate(u.CreatedAt)},
		},
	}
}

// MeetingList presents meetings one per row.
type MeetingList []models.Meeting

func (l MeetingList) Table() Table {
	t := Table{Headers: []string{"ID", "TITLE", "STATUS", "TASKS", "CREATED"}}
	for _, m := range l {
		t.Rows = append(t.Rows, []string{
			m.ID,
			Truncate(m.Title, textWidth),
			meetingStatus(m),
			fmt.Sprintf("%d", m.ActionItemsCount),
			formatDate(m.CreatedAt),
		})
	}
	return t
}

// MeetingView presents one meeting with its summary.
type MeetingView models.Meeting

func (m MeetingView) Table() Table {
	dur := "-"
	if m.Duration > 0 {
		dur = (time.Duration(m.Duration * float64(time.Second))).Round(time.Second).String()
	}
	return Table{
		Headers: []string{"FIELD", "VALUE"},
		Rows: [][]string{
			{"id", m.ID},
			{"title", m.Title},
			{"description", orDash(m.Description)},
			{"audio", orDash(m.AudioFileName)},
			{"duration", dur},
			{"transcription", orDash(string(m.TranscriptionStatus))},
			{"summarization", orDash(string(m.SummarizationStatus))},
			{"action extraction", orDash(string(m.ActionExtractionStatus))},
			{"action items", fmt.Sprintf("%d", m.ActionItemsCount)},
			{"created", formatDate(m.CreatedAt)},
			{"summary", orDash(Truncate(m.Summary, 200))},
		},
	}
}

// meetingStatus collapses the three pipeline stages into one word: the
// first stage that failed or is still running, otherwise completed.
func meetingStatus(m models.Meeting) string {
	stages := []models.ProcessingStatus{m.TranscriptionStatus, m.SummarizationStatus, m.ActionExtractionStatus}
	for _, s := range stages {
		if s == models.StatusFailed {
			return string(models.StatusFailed)
		}
	}
	for _, s := range stages {
		if s == models.StatusProcessing || s == models.StatusPending {
			return string(s)
		}
	}
	if m.TranscriptionStatus == "" {
		return "-"
	}
	return string(models.StatusCompleted)
}

// ActionItemList presents action items one per row.
type ActionItemList []models.ActionItem

func (l ActionItemList) Table() Table {
	t := Table{Headers: []string{"ID", "STATUS", "PRIORITY", "DUE", "ASSIGNEES", "TEXT"}}
	for _, a := range l {
		t.Rows = append(t.Rows, []string{
			a.ID,
			orDash(string(a.Status)),
			orDash(a.Priority),
			formatDate(a.DueDate),
			orDash(strings.Join(a.Assignees, ", ")),
			Truncate(a.Text, textWidth),
		})
	}
	return t
}

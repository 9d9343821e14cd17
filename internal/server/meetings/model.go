// Package meetings keeps the meetings and action items of the development
// server in memory. Processing (transcription, summaries, task extraction)
// is not performed; new meetings stay pending.
package meetings

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

type Meeting struct {
	ID               string
	OwnerID          string
	Title            string
	Description      string
	Transcript       string
	Summary          string
	ActionItemsCount int

	TranscriptionStatus    Status
	SummarizationStatus    Status
	ActionExtractionStatus Status

	CreatedAt time.Time
}

type ActionItem struct {
	ID        string
	MeetingID string
	OwnerID   string
	Text      string
	Assignees []string
	Status    string
	Priority  string
	CreatedAt time.Time
}

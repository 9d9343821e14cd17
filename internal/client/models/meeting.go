package models

import "encoding/json"

// ProcessingStatus tracks a server-side pipeline stage of a meeting.
type ProcessingStatus string

const (
	StatusPending    ProcessingStatus = "pending"
	StatusProcessing ProcessingStatus = "processing"
	StatusCompleted  ProcessingStatus = "completed"
	StatusFailed     ProcessingStatus = "failed"
)

// Meeting is a recorded or planned meeting as listed by the backend.
// Transcript and Summary are produced server-side and only displayed here.
type Meeting struct {
	ID            string  `json:"id" yaml:"id"`
	Title         string  `json:"title" yaml:"title"`
	Description   string  `json:"description,omitempty" yaml:"description,omitempty"`
	AudioFileName string  `json:"audio_file_name,omitempty" yaml:"audio_file_name,omitempty"`
	Duration      float64 `json:"duration,omitempty" yaml:"duration,omitempty"`
	Transcript    string  `json:"transcript,omitempty" yaml:"transcript,omitempty"`
	Summary       string  `json:"summary,omitempty" yaml:"summary,omitempty"`

	ActionItemsCount int `json:"action_items_count" yaml:"action_items_count"`

	TranscriptionStatus    ProcessingStatus `json:"transcription_status" yaml:"transcription_status"`
	SummarizationStatus    ProcessingStatus `json:"summarization_status" yaml:"summarization_status"`
	ActionExtractionStatus ProcessingStatus `json:"action_extraction_status" yaml:"action_extraction_status"`

	CreatedAt   string `json:"created_at" yaml:"created_at"`
	ProcessedAt string `json:"processed_at,omitempty" yaml:"processed_at,omitempty"`
}

// UnmarshalJSON accepts the id under either "id" or "_id".
func (m *Meeting) UnmarshalJSON(b []byte) error {
	type plain Meeting
	aux := struct {
		*plain
		DocumentID string `json:"_id"`
	}{plain: (*plain)(m)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = aux.DocumentID
	}
	return nil
}

// MeetingCreate carries the fields of a new meeting.
type MeetingCreate struct {
	Title       string
	Description string
}

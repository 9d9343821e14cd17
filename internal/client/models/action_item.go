package models

// TaskStatus is the lifecycle state of an action item.
type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in_progress"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskPending, TaskInProgress, TaskCompleted, TaskCancelled:
		return true
	}
	return false
}

// ActionItem is a task extracted from a meeting transcript.
type ActionItem struct {
	ID            string     `json:"id" yaml:"id"`
	MeetingID     string     `json:"meeting_id" yaml:"meeting_id"`
	Text          string     `json:"text" yaml:"text"`
	Assignees     []string   `json:"assignees" yaml:"assignees"`
	DueDate       string     `json:"due_date,omitempty" yaml:"due_date,omitempty"`
	Organizations []string   `json:"organizations" yaml:"organizations"`
	Confidence    float64    `json:"confidence" yaml:"confidence"`
	Status        TaskStatus `json:"status" yaml:"status"`
	Priority      string     `json:"priority" yaml:"priority"`
	CreatedAt     string     `json:"created_at" yaml:"created_at"`
	CompletedAt   string     `json:"completed_at,omitempty" yaml:"completed_at,omitempty"`
}

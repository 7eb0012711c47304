package model

import "time"

// Priority ranks how urgent a task is.
type Priority string

const (
	PriorityLow  Priority = "Low"
	PriorityMed  Priority = "Med"
	PriorityHigh Priority = "High"
)

// IsValidPriority reports whether p is one of the supported priorities.
func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityLow, PriorityMed, PriorityHigh:
		return true
	default:
		return false
	}
}

// DueDateLayout is the storage and wire format for task due dates.
// Dates are kept as strings so the stored value round-trips byte for byte.
const DueDateLayout = "2006-01-02"

// Task represents a single item on a user's list.
type Task struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"index" json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     string    `gorm:"size:10" json:"due_date"`
	Category    string    `json:"category"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `gorm:"default:false" json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Due parses the task's due date. The zero time is returned for tasks
// without one.
func (t Task) Due() (time.Time, error) {
	if t.DueDate == "" {
		return time.Time{}, nil
	}
	return time.Parse(DueDateLayout, t.DueDate)
}

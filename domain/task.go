package domain

import (
	"fmt"
	"strings"
	"time"
)

// Status is the workflow state of a task. Any status may move to any other.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
)

var validStatuses = []Status{StatusTodo, StatusInProgress, StatusDone}

// ValidStatuses returns the accepted statuses in display order.
func ValidStatuses() []Status {
	out := make([]Status, len(validStatuses))
	copy(out, validStatuses)
	return out
}

func (s Status) Valid() bool {
	for _, v := range validStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// ParseStatus validates a raw status value.
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

// TimestampLayout is the wire format for task timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Timestamp is a local wall-clock time with second precision.
type Timestamp struct {
	time.Time
}

// NewTimestamp truncates t to the second.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.Truncate(time.Second)}
}

func (t Timestamp) String() string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format(TimestampLayout)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(string(data), `"`)
	if raw == "" || raw == "null" {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.ParseInLocation(TimestampLayout, raw, time.Local)
	if err != nil {
		return fmt.Errorf("parse timestamp %q: %w", raw, err)
	}
	t.Time = parsed
	return nil
}

// TaskFields are the caller-controlled parts of a task.
type TaskFields struct {
	Title       string
	Description string
	Status      Status
}

// Task represents a single to-do item. ID and timestamps are owned by the store.
type Task struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   Timestamp `json:"created_at"`
	UpdatedAt   Timestamp `json:"updated_at"`
}

// StampCreated sets both timestamps to now.
func (t *Task) StampCreated(now time.Time) {
	if t == nil {
		return
	}
	t.CreatedAt = NewTimestamp(now)
	t.UpdatedAt = t.CreatedAt
}

// StampUpdated refreshes UpdatedAt, never moving it before CreatedAt.
func (t *Task) StampUpdated(now time.Time) {
	if t == nil {
		return
	}
	ts := NewTimestamp(now)
	if ts.Before(t.CreatedAt.Time) {
		ts = t.CreatedAt
	}
	t.UpdatedAt = ts
}

// Apply replaces every caller-controlled field.
func (t *Task) Apply(fields TaskFields) {
	t.Title = fields.Title
	t.Description = fields.Description
	t.Status = fields.Status
}

func (t *Task) IsDone() bool {
	return t != nil && t.Status == StatusDone
}

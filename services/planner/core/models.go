package core

import "time"

const (
	DefaultSubjectName      = "General"
	DefaultSubjectColor     = "#88b4ff"
	DefaultEstimatedMinutes = 30
)

type Subject struct {
	ID    int64  `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Color string `db:"color" json:"color"`
}

type Task struct {
	ID               int64      `db:"id" json:"id"`
	SubjectID        *int64     `db:"subject_id" json:"subject_id,omitempty"` // nil without subject
	Title            string     `db:"title" json:"title"`
	Description      string     `db:"description" json:"description"`
	DueDate          *time.Time `db:"due_date" json:"due_date,omitempty"`
	EstimatedMinutes int        `db:"estimated_minutes" json:"estimated_minutes"`
	Completed        bool       `db:"completed" json:"completed"`
	CreatedAt        time.Time  `db:"created_at" json:"created_at"`
}

// TaskView is a task left-joined with its subject. Subject fields are nil
// when the task has no subject or the subject is gone.
type TaskView struct {
	Task
	SubjectName  *string `db:"subject_name" json:"subject_name,omitempty"`
	SubjectColor *string `db:"subject_color" json:"subject_color,omitempty"`
}

type NewTask struct {
	SubjectID        *int64
	Title            string
	Description      string
	DueDate          *time.Time
	EstimatedMinutes int
}

// Session keeps start and end exactly as submitted; they are parsed when views are built.
type Session struct {
	ID      int64  `db:"id" json:"id"`
	TaskID  int64  `db:"task_id" json:"task_id"`
	StartAt string `db:"start_at" json:"start_at"`
	EndAt   string `db:"end_at" json:"end_at"`
	Notes   string `db:"notes" json:"notes"`
}

// SessionView is a session left-joined with its task title.
type SessionView struct {
	Session
	TaskTitle *string `db:"task_title" json:"task_title,omitempty"`
}

type NewSession struct {
	TaskID  int64
	StartAt string
	EndAt   string
	Notes   string
}

// ScheduledSession is a session with parsed times and a display label.
type ScheduledSession struct {
	ID     int64      `json:"id"`
	TaskID int64      `json:"task_id"`
	Label  string     `json:"label"`
	Start  time.Time  `json:"start"`
	End    *time.Time `json:"end,omitempty"` // nil when end_at does not parse
	Notes  string     `json:"notes,omitempty"`
}

type DayBucket struct {
	Date     time.Time          `json:"date"`
	Sessions []ScheduledSession `json:"sessions"`
}

// Dashboard is everything the planner page shows.
type Dashboard struct {
	Today     time.Time
	WeekStart time.Time
	Subjects  []Subject
	Tasks     []TaskView
	Upcoming  []ScheduledSession
	Week      []DayBucket
}

package rest

type CreateSubjectIn struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type CreateTaskIn struct {
	SubjectID        *int64 `json:"subject_id,omitempty"` // nil or 0: no subject
	Title            string `json:"title"`
	Description      string `json:"description"`
	DueDate          string `json:"due_date"` // YYYY-MM-DD, optional
	EstimatedMinutes int    `json:"estimated_minutes"`
}

type CreateSessionIn struct {
	TaskID  int64  `json:"task_id"`
	StartAt string `json:"start_at"`
	EndAt   string `json:"end_at"`
	Notes   string `json:"notes"`
}

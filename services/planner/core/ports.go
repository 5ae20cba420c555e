package core

import (
	"context"
	"time"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

// DB is the persistence gateway.
type DB interface {
	Pinger

	// subjects
	CreateSubject(ctx context.Context, name, color string) (Subject, error)
	GetSubject(ctx context.Context, id int64) (Subject, error)
	ListSubjects(ctx context.Context) ([]Subject, error)

	// tasks
	CreateTask(ctx context.Context, in NewTask) (Task, error)
	GetTask(ctx context.Context, id int64) (Task, error)
	ListTasksWithSubject(ctx context.Context) ([]TaskView, error)
	ToggleTaskCompleted(ctx context.Context, id int64) error
	DeleteTask(ctx context.Context, id int64) error

	// sessions; dates are calendar days, bounds inclusive
	CreateSession(ctx context.Context, in NewSession) (Session, error)
	ListSessionsInRange(ctx context.Context, from, to time.Time) ([]SessionView, error)
	ListSessionsOnDate(ctx context.Context, day time.Time) ([]SessionView, error)
}

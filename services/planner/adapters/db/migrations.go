package db

import (
	"context"
	_ "embed"
	"fmt"
)

//go:embed migrations/01_create_subjects.up.sql
var createSubjectsUp string

//go:embed migrations/02_create_tasks.up.sql
var createTasksUp string

//go:embed migrations/03_create_sessions.up.sql
var createSessionsUp string

// Migrate creates the planner tables when they are missing.
func (db *DB) Migrate(ctx context.Context) error {
	db.log.Debug("running planner migrations")

	steps := []struct {
		name string
		sql  string
	}{
		{"subjects", createSubjectsUp},
		{"tasks", createTasksUp},
		{"sessions", createSessionsUp},
	}

	for _, step := range steps {
		if _, err := db.conn.ExecContext(ctx, step.sql); err != nil {
			return fmt.Errorf("apply %s migration: %w", step.name, err)
		}
	}

	db.log.Debug("planner migrations finished")
	return nil
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"study-planner/services/planner/core"
)

type DB struct {
	log  *slog.Logger
	conn *sqlx.DB
}

func New(log *slog.Logger, address string) (*DB, error) {
	db, err := sqlx.Connect("pgx", address)
	if err != nil {
		log.Error("connection problem", "error", err)
		return nil, err
	}
	return &DB{log: log, conn: db}, nil
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// Subjects

func (db *DB) CreateSubject(ctx context.Context, name, color string) (core.Subject, error) {
	const q = `
		INSERT INTO subjects(name, color)
		VALUES ($1, $2)
		RETURNING id, name, color;
	`

	var s core.Subject
	if err := db.conn.GetContext(ctx, &s, q, name, color); err != nil {
		if isCheckViolation(err) {
			return core.Subject{}, core.ErrSubjectInvalidArgs
		}
		return core.Subject{}, fmt.Errorf("insert subject: %w", err)
	}
	return s, nil
}

func (db *DB) GetSubject(ctx context.Context, id int64) (core.Subject, error) {
	const q = `SELECT id, name, color FROM subjects WHERE id = $1`

	var s core.Subject
	if err := db.conn.GetContext(ctx, &s, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Subject{}, core.ErrSubjectNotFound
		}
		return core.Subject{}, fmt.Errorf("get subject: %w", err)
	}
	return s, nil
}

func (db *DB) ListSubjects(ctx context.Context) ([]core.Subject, error) {
	const q = `SELECT id, name, color FROM subjects ORDER BY name ASC, id ASC`

	out := []core.Subject{}
	if err := db.conn.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return out, nil
}

// Tasks

const taskColumns = `t.id, t.subject_id, t.title, COALESCE(t.description, '') AS description,
	t.due_date, t.estimated_minutes, t.completed, t.created_at`

func (db *DB) CreateTask(ctx context.Context, in core.NewTask) (core.Task, error) {
	const q = `
		INSERT INTO tasks AS t (subject_id, title, description, due_date, estimated_minutes)
		VALUES ($1, $2, NULLIF($3, ''), $4::date, $5)
		RETURNING ` + taskColumns + `;
	`

	var t core.Task
	err := db.conn.GetContext(ctx, &t, q,
		in.SubjectID, in.Title, in.Description, dateArg(in.DueDate), in.EstimatedMinutes)
	if err != nil {
		if isForeignKeyViolation(err) {
			return core.Task{}, core.ErrSubjectNotFound
		}
		if isCheckViolation(err) {
			return core.Task{}, core.ErrTaskInvalidArgs
		}
		return core.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return t, nil
}

func (db *DB) GetTask(ctx context.Context, id int64) (core.Task, error) {
	const q = `SELECT ` + taskColumns + ` FROM tasks t WHERE t.id = $1`

	var t core.Task
	if err := db.conn.GetContext(ctx, &t, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Task{}, core.ErrTaskNotFound
		}
		return core.Task{}, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

func (db *DB) ListTasksWithSubject(ctx context.Context) ([]core.TaskView, error) {
	const q = `
		SELECT ` + taskColumns + `, s.name AS subject_name, s.color AS subject_color
		FROM tasks t
		LEFT JOIN subjects s ON s.id = t.subject_id
		ORDER BY t.due_date IS NULL, t.due_date ASC, t.created_at DESC, t.id ASC;
	`

	out := []core.TaskView{}
	if err := db.conn.SelectContext(ctx, &out, q); err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return out, nil
}

func (db *DB) ToggleTaskCompleted(ctx context.Context, id int64) error {
	const q = `UPDATE tasks SET completed = NOT completed WHERE id = $1`

	if _, err := db.conn.ExecContext(ctx, q, id); err != nil {
		return fmt.Errorf("toggle task: %w", err)
	}
	return nil
}

func (db *DB) DeleteTask(ctx context.Context, id int64) error {
	const q = `DELETE FROM tasks WHERE id = $1`

	res, err := db.conn.ExecContext(ctx, q, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return core.ErrTaskNotFound
	}
	return nil
}

// Sessions

const sessionViewSelect = `
	SELECT s.id, s.task_id, s.start_at, s.end_at, COALESCE(s.notes, '') AS notes, t.title AS task_title
	FROM sessions s
	LEFT JOIN tasks t ON t.id = s.task_id
`

func (db *DB) CreateSession(ctx context.Context, in core.NewSession) (core.Session, error) {
	const q = `
		INSERT INTO sessions(task_id, start_at, end_at, notes)
		VALUES ($1, $2, $3, NULLIF($4, ''))
		RETURNING id, task_id, start_at, end_at, COALESCE(notes, '') AS notes;
	`

	var s core.Session
	if err := db.conn.GetContext(ctx, &s, q, in.TaskID, in.StartAt, in.EndAt, in.Notes); err != nil {
		return core.Session{}, fmt.Errorf("insert session: %w", err)
	}
	return s, nil
}

// ListSessionsInRange matches on the date prefix of start_at, so rows that
// will not parse can still come back; the view layer drops them.
func (db *DB) ListSessionsInRange(ctx context.Context, from, to time.Time) ([]core.SessionView, error) {
	const q = sessionViewSelect + `
		WHERE substr(s.start_at, 1, 10) BETWEEN $1 AND $2
		ORDER BY s.start_at ASC, s.id ASC;
	`

	out := []core.SessionView{}
	if err := db.conn.SelectContext(ctx, &out, q, from.Format(core.DateLayout), to.Format(core.DateLayout)); err != nil {
		return nil, fmt.Errorf("list sessions in range: %w", err)
	}
	return out, nil
}

func (db *DB) ListSessionsOnDate(ctx context.Context, day time.Time) ([]core.SessionView, error) {
	const q = sessionViewSelect + `
		WHERE substr(s.start_at, 1, 10) = $1
		ORDER BY s.start_at ASC, s.id ASC;
	`

	out := []core.SessionView{}
	if err := db.conn.SelectContext(ctx, &out, q, day.Format(core.DateLayout)); err != nil {
		return nil, fmt.Errorf("list sessions on date: %w", err)
	}
	return out, nil
}

// dateArg passes a calendar date as text so the server never shifts it by zone.
func dateArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.Format(core.DateLayout)
}

// pg helpers

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}

func isCheckViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23514"
}

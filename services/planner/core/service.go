package core

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"
)

var colorStrip = regexp.MustCompile(`[^#A-Fa-f0-9]`)

type Service struct {
	log *slog.Logger
	db  DB
	loc *time.Location
}

// NewService builds the planner service. Calendar days are computed in loc,
// time.Local when nil.
func NewService(log *slog.Logger, db DB, loc *time.Location) *Service {
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		log: log,
		db:  db,
		loc: loc,
	}
}

func (s *Service) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Location is the zone calendar days are computed in.
func (s *Service) Location() *time.Location {
	return s.loc
}

// Today returns midnight of now's calendar day in the service location.
func (s *Service) Today(now time.Time) time.Time {
	return StartOfDay(now.In(s.loc))
}

// Subjects

// SanitizeColor keeps only '#' and hex digits, falling back to the default color.
func SanitizeColor(color string) string {
	color = colorStrip.ReplaceAllString(color, "")
	if color == "" {
		return DefaultSubjectColor
	}
	return color
}

func (s *Service) CreateSubject(ctx context.Context, name, color string) (Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Subject{}, ErrSubjectInvalidArgs
	}
	return s.db.CreateSubject(ctx, name, SanitizeColor(color))
}

func (s *Service) ListSubjects(ctx context.Context) ([]Subject, error) {
	return s.db.ListSubjects(ctx)
}

// EnsureDefaultSubject lists subjects, creating the default one first when there are none.
func (s *Service) EnsureDefaultSubject(ctx context.Context) ([]Subject, error) {
	subjects, err := s.db.ListSubjects(ctx)
	if err != nil {
		return nil, err
	}
	if len(subjects) > 0 {
		return subjects, nil
	}

	subject, err := s.db.CreateSubject(ctx, DefaultSubjectName, DefaultSubjectColor)
	if err != nil {
		return nil, err
	}
	s.log.Info("created default subject", "id", subject.ID, "name", subject.Name)
	return []Subject{subject}, nil
}

// Tasks

func (s *Service) CreateTask(ctx context.Context, in NewTask) (Task, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return Task{}, ErrTaskInvalidArgs
	}
	in.Description = strings.TrimSpace(in.Description)
	if in.EstimatedMinutes <= 0 {
		in.EstimatedMinutes = DefaultEstimatedMinutes
	}

	if in.SubjectID != nil {
		if *in.SubjectID <= 0 {
			return Task{}, ErrTaskInvalidArgs
		}
		if _, err := s.db.GetSubject(ctx, *in.SubjectID); err != nil {
			return Task{}, err
		}
	}

	return s.db.CreateTask(ctx, in)
}

func (s *Service) GetTask(ctx context.Context, id int64) (Task, error) {
	if id <= 0 {
		return Task{}, ErrTaskInvalidArgs
	}
	return s.db.GetTask(ctx, id)
}

// ListTasks returns all tasks with their subjects in display order.
func (s *Service) ListTasks(ctx context.Context) ([]TaskView, error) {
	tasks, err := s.db.ListTasksWithSubject(ctx)
	if err != nil {
		return nil, err
	}
	return OrderTasks(tasks), nil
}

// ToggleTaskCompleted flips the completed flag. Unknown ids are ignored.
func (s *Service) ToggleTaskCompleted(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrTaskInvalidArgs
	}
	return s.db.ToggleTaskCompleted(ctx, id)
}

// DeleteTask removes the task only; its sessions stay and fall back to "Task #<id>".
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrTaskInvalidArgs
	}
	return s.db.DeleteTask(ctx, id)
}

// Sessions

func (s *Service) CreateSession(ctx context.Context, in NewSession) (Session, error) {
	in.StartAt = strings.TrimSpace(in.StartAt)
	in.EndAt = strings.TrimSpace(in.EndAt)
	in.Notes = strings.TrimSpace(in.Notes)
	if in.TaskID <= 0 || in.StartAt == "" || in.EndAt == "" {
		return Session{}, ErrSessionInvalidArgs
	}

	if _, err := s.db.GetTask(ctx, in.TaskID); err != nil {
		return Session{}, err
	}

	return s.db.CreateSession(ctx, in)
}

func (s *Service) ListSessions(ctx context.Context, f SessionFilter) ([]SessionView, error) {
	switch {
	case f.Date != nil && (f.From != nil || f.To != nil):
		return nil, ErrSessionInvalidArgs
	case f.Date != nil:
		return s.db.ListSessionsOnDate(ctx, *f.Date)
	case f.From != nil && f.To != nil:
		if f.To.Before(*f.From) {
			return nil, ErrSessionInvalidArgs
		}
		return s.db.ListSessionsInRange(ctx, *f.From, *f.To)
	default:
		return nil, ErrSessionInvalidArgs
	}
}

// Views

// Upcoming returns the sessions starting within seven days from now's calendar day.
func (s *Service) Upcoming(ctx context.Context, now time.Time) ([]ScheduledSession, error) {
	today := s.Today(now)
	sessions, err := s.scheduled(ctx, today, today.AddDate(0, 0, WindowDays-1))
	if err != nil {
		return nil, err
	}
	return UpcomingWindow(today, sessions), nil
}

// Week returns the week grid starting at weekStart, or at this week's Monday when nil.
func (s *Service) Week(ctx context.Context, now time.Time, weekStart *time.Time) ([]DayBucket, error) {
	start := s.weekStart(now, weekStart)
	sessions, err := s.scheduled(ctx, start, start.AddDate(0, 0, WindowDays-1))
	if err != nil {
		return nil, err
	}
	return WeekGrid(start, sessions), nil
}

// Dashboard loads everything the planner page renders. It creates the
// default subject when none exist.
func (s *Service) Dashboard(ctx context.Context, now time.Time, weekStart *time.Time) (Dashboard, error) {
	today := s.Today(now)
	start := s.weekStart(now, weekStart)

	subjects, err := s.EnsureDefaultSubject(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	from, to := today, today.AddDate(0, 0, WindowDays-1)
	if start.Before(from) {
		from = start
	}
	if end := start.AddDate(0, 0, WindowDays-1); end.After(to) {
		to = end
	}
	sessions, err := s.scheduled(ctx, from, to)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Today:     today,
		WeekStart: start,
		Subjects:  subjects,
		Tasks:     tasks,
		Upcoming:  UpcomingWindow(today, sessions),
		Week:      WeekGrid(start, sessions),
	}, nil
}

func (s *Service) weekStart(now time.Time, weekStart *time.Time) time.Time {
	if weekStart != nil {
		return StartOfDay(weekStart.In(s.loc))
	}
	return MondayOf(now.In(s.loc))
}

// scheduled loads sessions whose stored start date lies in from..to.
func (s *Service) scheduled(ctx context.Context, from, to time.Time) ([]ScheduledSession, error) {
	views, err := s.db.ListSessionsInRange(ctx, from, to)
	if err != nil {
		return nil, err
	}

	sessions, skipped := Schedule(views, s.loc)
	for _, bad := range skipped {
		s.log.Warn("session start time is not parsable, skipping",
			"session_id", bad.ID, "task_id", bad.TaskID, "start_at", bad.StartAt)
	}
	return sessions, nil
}

package tests

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"study-planner/services/planner/core"
)

var errStorageDown = errors.New("storage is down")

type fakeDB struct {
	mu sync.RWMutex

	nextSubjectID int64
	nextTaskID    int64
	nextSessionID int64

	subjects map[int64]core.Subject
	tasks    map[int64]core.Task
	sessions map[int64]core.Session

	// fail makes every call return errStorageDown
	fail bool
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		nextSubjectID: 1,
		nextTaskID:    1,
		nextSessionID: 1,
		subjects:      make(map[int64]core.Subject),
		tasks:         make(map[int64]core.Task),
		sessions:      make(map[int64]core.Session),
	}
}

func (db *fakeDB) setFail(fail bool) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.fail = fail
}

func cloneTask(t core.Task) core.Task {
	out := t
	if t.SubjectID != nil {
		sid := *t.SubjectID
		out.SubjectID = &sid
	}
	if t.DueDate != nil {
		due := *t.DueDate
		out.DueDate = &due
	}
	return out
}

func (db *fakeDB) Ping(context.Context) error {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.fail {
		return errStorageDown
	}
	return nil
}

func (db *fakeDB) CreateSubject(_ context.Context, name, color string) (core.Subject, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.fail {
		return core.Subject{}, errStorageDown
	}

	id := db.nextSubjectID
	db.nextSubjectID++

	subject := core.Subject{ID: id, Name: name, Color: color}
	db.subjects[id] = subject
	return subject, nil
}

func (db *fakeDB) GetSubject(_ context.Context, id int64) (core.Subject, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.fail {
		return core.Subject{}, errStorageDown
	}

	subject, ok := db.subjects[id]
	if !ok {
		return core.Subject{}, core.ErrSubjectNotFound
	}
	return subject, nil
}

func (db *fakeDB) ListSubjects(context.Context) ([]core.Subject, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.fail {
		return nil, errStorageDown
	}

	out := make([]core.Subject, 0, len(db.subjects))
	for _, subject := range db.subjects {
		out = append(out, subject)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (db *fakeDB) CreateTask(_ context.Context, in core.NewTask) (core.Task, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.fail {
		return core.Task{}, errStorageDown
	}

	if in.SubjectID != nil {
		if _, ok := db.subjects[*in.SubjectID]; !ok {
			return core.Task{}, core.ErrSubjectNotFound
		}
	}

	id := db.nextTaskID
	db.nextTaskID++

	task := core.Task{
		ID:               id,
		SubjectID:        in.SubjectID,
		Title:            in.Title,
		Description:      in.Description,
		DueDate:          in.DueDate,
		EstimatedMinutes: in.EstimatedMinutes,
		CreatedAt:        time.Now().Add(time.Duration(id) * time.Millisecond),
	}

	db.tasks[id] = cloneTask(task)
	return cloneTask(task), nil
}

func (db *fakeDB) GetTask(_ context.Context, id int64) (core.Task, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.fail {
		return core.Task{}, errStorageDown
	}

	task, ok := db.tasks[id]
	if !ok {
		return core.Task{}, core.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (db *fakeDB) ListTasksWithSubject(context.Context) ([]core.TaskView, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.fail {
		return nil, errStorageDown
	}

	out := make([]core.TaskView, 0, len(db.tasks))
	for _, task := range db.tasks {
		view := core.TaskView{Task: cloneTask(task)}
		if task.SubjectID != nil {
			if subject, ok := db.subjects[*task.SubjectID]; ok {
				name, color := subject.Name, subject.Color
				view.SubjectName = &name
				view.SubjectColor = &color
			}
		}
		out = append(out, view)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (db *fakeDB) ToggleTaskCompleted(_ context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.fail {
		return errStorageDown
	}

	task, ok := db.tasks[id]
	if !ok {
		return nil
	}
	task.Completed = !task.Completed
	db.tasks[id] = task
	return nil
}

func (db *fakeDB) DeleteTask(_ context.Context, id int64) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.fail {
		return errStorageDown
	}

	if _, ok := db.tasks[id]; !ok {
		return core.ErrTaskNotFound
	}

	delete(db.tasks, id)
	return nil
}

func (db *fakeDB) CreateSession(_ context.Context, in core.NewSession) (core.Session, error) {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.fail {
		return core.Session{}, errStorageDown
	}

	id := db.nextSessionID
	db.nextSessionID++

	session := core.Session{
		ID:      id,
		TaskID:  in.TaskID,
		StartAt: in.StartAt,
		EndAt:   in.EndAt,
		Notes:   in.Notes,
	}
	db.sessions[id] = session
	return session, nil
}

// listSessions mirrors the SQL filter on the date prefix of start_at.
func (db *fakeDB) listSessions(match func(day string) bool) ([]core.SessionView, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	if db.fail {
		return nil, errStorageDown
	}

	out := make([]core.SessionView, 0)
	for _, s := range db.sessions {
		day := s.StartAt
		if len(day) >= len(core.DateLayout) {
			day = day[:len(core.DateLayout)]
		}
		if !match(day) {
			continue
		}

		view := core.SessionView{Session: s}
		if task, ok := db.tasks[s.TaskID]; ok {
			title := task.Title
			view.TaskTitle = &title
		}
		out = append(out, view)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].StartAt != out[j].StartAt {
			return out[i].StartAt < out[j].StartAt
		}
		return out[i].ID < out[j].ID
	})

	return out, nil
}

func (db *fakeDB) ListSessionsInRange(_ context.Context, from, to time.Time) ([]core.SessionView, error) {
	lo, hi := from.Format(core.DateLayout), to.Format(core.DateLayout)
	return db.listSessions(func(day string) bool {
		return strings.Compare(day, lo) >= 0 && strings.Compare(day, hi) <= 0
	})
}

func (db *fakeDB) ListSessionsOnDate(_ context.Context, day time.Time) ([]core.SessionView, error) {
	want := day.Format(core.DateLayout)
	return db.listSessions(func(d string) bool { return d == want })
}

func (db *fakeDB) sizes() (subjects, tasks, sessions int) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return len(db.subjects), len(db.tasks), len(db.sessions)
}

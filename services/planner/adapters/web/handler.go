package web

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"study-planner/services/planner/core"
)

var timeNow = time.Now

var errUnknownAction = errors.New("unknown action")

// NewPlannerHandler serves the planner page and dispatches its form actions.
// A successful or rejected action redirects back to the page; a storage
// failure ends the request with 500.
func NewPlannerHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "invalid form", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		weekStart, err := parseWeek(r.Form.Get("week"), svc.Location())
		if err != nil {
			log.Debug("ignoring invalid week parameter", "week", r.Form.Get("week"))
		}

		if action := r.Form.Get("action"); action != "" {
			// actions change data, so they only come from the page's POST forms
			if r.Method != http.MethodPost {
				w.Header().Set("Allow", http.MethodPost)
				http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
				return
			}

			err := dispatch(ctx, svc, action, r.Form)
			switch {
			case err == nil:
				log.Debug("action applied", "action", action)
			case core.IsValidation(err) || errors.Is(err, errUnknownAction):
				log.Debug("action skipped", "action", action, "reason", err)
			default:
				log.Error("action failed", "action", action, "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
				return
			}

			var ws time.Time
			if weekStart != nil {
				ws = *weekStart
			}
			http.Redirect(w, r, selfURL(r.URL.Path, ws, weekStart != nil), http.StatusSeeOther)
			return
		}

		dashboard, err := svc.Dashboard(ctx, timeNow(), weekStart)
		if err != nil {
			log.Error("failed to load planner", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := renderPage(w, newPageData(r, dashboard, weekStart != nil)); err != nil {
			log.Error("failed to render planner", "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
	}
}

// NewStaticHandler serves the embedded stylesheet.
func NewStaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}

func dispatch(ctx context.Context, svc *core.Service, action string, form url.Values) error {
	switch action {
	case "add_subject":
		_, err := svc.CreateSubject(ctx, form.Get("name"), form.Get("color"))
		return err

	case "add_task":
		in, err := taskFromForm(form, svc.Location())
		if err != nil {
			return err
		}
		_, err = svc.CreateTask(ctx, in)
		return err

	case "toggle_complete":
		id, err := parseID(form.Get("id"), core.ErrTaskInvalidArgs)
		if err != nil {
			return err
		}
		return svc.ToggleTaskCompleted(ctx, id)

	case "delete_task":
		id, err := parseID(form.Get("id"), core.ErrTaskInvalidArgs)
		if err != nil {
			return err
		}
		return svc.DeleteTask(ctx, id)

	case "add_session":
		taskID, err := parseID(form.Get("task_id"), core.ErrSessionInvalidArgs)
		if err != nil {
			return err
		}
		_, err = svc.CreateSession(ctx, core.NewSession{
			TaskID:  taskID,
			StartAt: form.Get("start_at"),
			EndAt:   form.Get("end_at"),
			Notes:   form.Get("notes"),
		})
		return err

	default:
		return errUnknownAction
	}
}

func taskFromForm(form url.Values, loc *time.Location) (core.NewTask, error) {
	in := core.NewTask{
		Title:       form.Get("title"),
		Description: form.Get("description"),
	}

	// "" and "0" both mean no subject
	if v := strings.TrimSpace(form.Get("subject_id")); v != "" && v != "0" {
		id, err := parseID(v, core.ErrTaskInvalidArgs)
		if err != nil {
			return core.NewTask{}, err
		}
		in.SubjectID = &id
	}

	if v := strings.TrimSpace(form.Get("due_date")); v != "" {
		due, err := core.ParseDate(v, loc)
		if err != nil {
			return core.NewTask{}, core.ErrTaskInvalidArgs
		}
		in.DueDate = &due
	}

	// non-numeric or empty falls back to the default later on
	if n, err := strconv.Atoi(strings.TrimSpace(form.Get("estimated_minutes"))); err == nil {
		in.EstimatedMinutes = n
	}

	return in, nil
}

func parseID(v string, invalid error) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid
	}
	return id, nil
}

func parseWeek(v string, loc *time.Location) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := core.ParseDate(v, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func weekURL(path string, start time.Time) string {
	return path + "?week=" + url.QueryEscape(start.Format(core.DateLayout))
}

// selfURL is the page address actions redirect to, keeping an explicit week.
func selfURL(path string, weekStart time.Time, explicitWeek bool) string {
	if !explicitWeek {
		return path
	}
	return weekURL(path, weekStart)
}

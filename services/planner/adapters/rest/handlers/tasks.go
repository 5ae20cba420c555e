package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"study-planner/services/planner/adapters/rest"
	"study-planner/services/planner/core"
	"study-planner/services/planner/pkg/res"
)

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func NewCreateTaskHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.CreateTaskIn
		if !res.DecodeJSON(w, r, &in) {
			return
		}

		task := core.NewTask{
			Title:            in.Title,
			Description:      in.Description,
			EstimatedMinutes: in.EstimatedMinutes,
		}
		// subject_id: nil - not sent, 0 - no subject
		if in.SubjectID != nil && *in.SubjectID != 0 {
			task.SubjectID = in.SubjectID
		}
		if v := strings.TrimSpace(in.DueDate); v != "" {
			due, err := core.ParseDate(v, svc.Location())
			if err != nil {
				res.Error(w, "invalid due_date", http.StatusBadRequest)
				return
			}
			task.DueDate = &due
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.CreateTask(ctx, task)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, t, http.StatusCreated)
	}
}

func NewGetTaskHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		t, err := svc.GetTask(ctx, id)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, t, http.StatusOK)
	}
}

func NewListTasksHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.ListTasks(ctx)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, map[string]any{"tasks": items}, http.StatusOK)
	}
}

func NewToggleTaskHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.ToggleTaskCompleted(ctx, id); err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.NoContent(w)
	}
}

func NewDeleteTaskHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(r)
		if !ok {
			res.Error(w, "invalid id", http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := svc.DeleteTask(ctx, id); err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, map[string]any{"ok": true}, http.StatusOK)
	}
}

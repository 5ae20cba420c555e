package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"study-planner/services/planner/adapters/rest"
	"study-planner/services/planner/core"
	"study-planner/services/planner/pkg/res"
)

func NewCreateSubjectHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.CreateSubjectIn
		if !res.DecodeJSON(w, r, &in) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		s, err := svc.CreateSubject(ctx, in.Name, in.Color)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, s, http.StatusCreated)
	}
}

func NewListSubjectsHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.EnsureDefaultSubject(ctx)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, map[string]any{"subjects": items}, http.StatusOK)
	}
}

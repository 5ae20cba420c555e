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

func NewUpcomingHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		now := timeNow()
		items, err := svc.Upcoming(ctx, now)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, map[string]any{
			"today":    svc.Today(now).Format(core.DateLayout),
			"sessions": items,
		}, http.StatusOK)
	}
}

// NewWeekHandler returns the week grid starting at ?start=, or this week's Monday.
func NewWeekHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var start *time.Time
		if v := r.URL.Query().Get("start"); v != "" {
			t, err := core.ParseDate(v, svc.Location())
			if err != nil {
				res.Error(w, "invalid start", http.StatusBadRequest)
				return
			}
			start = &t
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		days, err := svc.Week(ctx, timeNow(), start)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, map[string]any{"days": days}, http.StatusOK)
	}
}

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

func NewCreateSessionHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in rest.CreateSessionIn
		if !res.DecodeJSON(w, r, &in) {
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		s, err := svc.CreateSession(ctx, core.NewSession{
			TaskID:  in.TaskID,
			StartAt: in.StartAt,
			EndAt:   in.EndAt,
			Notes:   in.Notes,
		})
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, s, http.StatusCreated)
	}
}

// NewListSessionsHandler lists raw sessions by ?date= or by ?from=&to=.
func NewListSessionsHandler(log *slog.Logger, svc *core.Service, timeout time.Duration) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		loc := svc.Location()

		var f core.SessionFilter
		for _, p := range []struct {
			name string
			dst  **time.Time
		}{
			{"date", &f.Date},
			{"from", &f.From},
			{"to", &f.To},
		} {
			v := q.Get(p.name)
			if v == "" {
				continue
			}
			t, err := core.ParseDate(v, loc)
			if err != nil {
				res.Error(w, "invalid "+p.name, http.StatusBadRequest)
				return
			}
			*p.dst = &t
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		items, err := svc.ListSessions(ctx, f)
		if err != nil {
			rest.WriteErr(log, w, err)
			return
		}
		res.Json(w, map[string]any{"sessions": items}, http.StatusOK)
	}
}

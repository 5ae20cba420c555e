package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"study-planner/services/planner/adapters/rest"
	"study-planner/services/planner/core"
)

var timeNow = time.Now

// Register mounts the JSON API. pingers are the dependencies /api/ping reports
// on; POST routes only accept JSON bodies.
func Register(mux *http.ServeMux, log *slog.Logger, svc *core.Service, pingers map[string]core.Pinger, timeout time.Duration) {
	post := func(pattern string, h http.Handler) {
		mux.Handle("POST "+pattern, rest.RequireJSON(h))
	}

	// ping
	mux.Handle("GET /api/ping", NewPingHandler(log, pingers, timeout))

	// subjects
	post("/api/subjects", NewCreateSubjectHandler(log, svc, timeout))
	mux.Handle("GET /api/subjects", NewListSubjectsHandler(log, svc, timeout))

	// tasks
	post("/api/tasks", NewCreateTaskHandler(log, svc, timeout))
	mux.Handle("GET /api/tasks", NewListTasksHandler(log, svc, timeout))
	mux.Handle("GET /api/tasks/{id}", NewGetTaskHandler(log, svc, timeout))
	post("/api/tasks/{id}/toggle", NewToggleTaskHandler(log, svc, timeout))
	mux.Handle("DELETE /api/tasks/{id}", NewDeleteTaskHandler(log, svc, timeout))

	// sessions
	post("/api/sessions", NewCreateSessionHandler(log, svc, timeout))
	mux.Handle("GET /api/sessions", NewListSessionsHandler(log, svc, timeout))

	// schedule views
	mux.Handle("GET /api/schedule/upcoming", NewUpcomingHandler(log, svc, timeout))
	mux.Handle("GET /api/schedule/week", NewWeekHandler(log, svc, timeout))
}

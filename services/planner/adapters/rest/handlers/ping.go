package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"study-planner/services/planner/core"
	"study-planner/services/planner/pkg/res"
)

type dependencyStatus struct {
	Name      string `json:"name"`
	Status    string `json:"status"`
	LatencyMs int64  `json:"latency_ms"`
	Error     string `json:"error,omitempty"`
}

// NewPingHandler checks every dependency concurrently. The overall status is
// "ok" only when all of them answer; otherwise it is "degraded" with a 503.
func NewPingHandler(log *slog.Logger, pingers map[string]core.Pinger, timeout time.Duration) http.HandlerFunc {
	names := make([]string, 0, len(pingers))
	for name := range pingers {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		deps := make([]dependencyStatus, len(names))
		var wg sync.WaitGroup
		for i, name := range names {
			wg.Add(1)
			go func() {
				defer wg.Done()
				start := time.Now()
				err := pingers[name].Ping(ctx)
				deps[i] = dependencyStatus{Name: name, Status: "ok", LatencyMs: time.Since(start).Milliseconds()}
				if err != nil {
					log.Warn("ping failed", "dependency", name, "error", err)
					deps[i].Status = "down"
					deps[i].Error = err.Error()
				}
			}()
		}
		wg.Wait()

		status, code := "ok", http.StatusOK
		for _, d := range deps {
			if d.Status != "ok" {
				status, code = "degraded", http.StatusServiceUnavailable
				break
			}
		}
		res.Json(w, map[string]any{"status": status, "dependencies": deps}, code)
	}
}

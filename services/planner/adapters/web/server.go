package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/csrf"

	"study-planner/services/planner/adapters/web/middleware"
	"study-planner/services/planner/core"
)

// CSRFOptions configures form protection. An empty Key disables it.
type CSRFOptions struct {
	Key    []byte
	Secure bool
}

// Register mounts the planner page and its stylesheet on mux. protect wraps
// the page only; the JSON API is not form driven.
func Register(mux *http.ServeMux, log *slog.Logger, svc *core.Service, timeout time.Duration, protect func(http.Handler) http.Handler) {
	mux.Handle("/{$}", protect(NewPlannerHandler(log, svc, timeout)))
	mux.Handle("GET /static/", NewStaticHandler())
}

// NewCSRF returns the form protection middleware, or a pass-through when no key is set.
func NewCSRF(log *slog.Logger, opts CSRFOptions) func(http.Handler) http.Handler {
	if len(opts.Key) == 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	protect := csrf.Protect(opts.Key,
		csrf.Secure(opts.Secure),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log.Warn("csrf check failed", "reason", csrf.FailureReason(r), "path", r.URL.Path)
			http.Error(w, "forbidden", http.StatusForbidden)
		})),
	)

	return func(next http.Handler) http.Handler {
		h := protect(next)
		if opts.Secure {
			return h
		}
		// without TLS the origin check must not expect https
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}

// NewRouter wraps mux with the HTTP middleware stack. Metrics sits closest to
// the mux so the matched pattern is visible on the request it observes.
func NewRouter(mux *http.ServeMux, log *slog.Logger, metrics *middleware.Metrics) http.Handler {
	var h http.Handler = mux
	if metrics != nil {
		h = metrics.Middleware(h)
	}
	return middleware.Chain(h,
		middleware.RequestID,
		middleware.Logging(log),
		middleware.SecurityHeaders,
	)
}

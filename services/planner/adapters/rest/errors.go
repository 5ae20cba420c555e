package rest

import (
	"errors"
	"log/slog"
	"net/http"

	"study-planner/services/planner/core"
	"study-planner/services/planner/pkg/res"
)

// WriteErr maps core errors onto HTTP statuses. Unknown errors are logged and
// reported as a bare 500.
func WriteErr(log *slog.Logger, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, core.ErrSubjectInvalidArgs),
		errors.Is(err, core.ErrTaskInvalidArgs),
		errors.Is(err, core.ErrSessionInvalidArgs),
		errors.Is(err, core.ErrSessionTimeInvalid):
		res.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrSubjectNotFound),
		errors.Is(err, core.ErrTaskNotFound):
		res.Error(w, err.Error(), http.StatusNotFound)
	default:
		log.Error("request failed", "error", err)
		res.Error(w, "internal error", http.StatusInternalServerError)
	}
}

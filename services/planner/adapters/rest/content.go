package rest

import (
	"net/http"

	"study-planner/services/planner/pkg/res"
)

// RequireJSON answers 415 unless the request declares a JSON body. Browsers
// cannot send that content type cross-site without a preflight, so mutating
// API routes are out of reach for plain HTML forms.
func RequireJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !res.IsJSON(r) {
			res.Error(w, "content type must be application/json", http.StatusUnsupportedMediaType)
			return
		}
		next.ServeHTTP(w, r)
	})
}

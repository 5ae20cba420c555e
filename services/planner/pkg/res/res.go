package res

import (
	"encoding/json"
	"mime"
	"net/http"
)

// maxBody caps request bodies; planner payloads are a few hundred bytes.
const maxBody = 1 << 20

func Json(w http.ResponseWriter, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, msg string, statusCode int) {
	Json(w, map[string]any{"error": msg}, statusCode)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// IsJSON reports whether r declares an application/json body.
func IsJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

// DecodeJSON reads r's body into dst. On failure it writes the error response
// and returns false.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if !IsJSON(r) {
		Error(w, "content type must be application/json", http.StatusUnsupportedMediaType)
		return false
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(dst); err != nil {
		Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	return true
}

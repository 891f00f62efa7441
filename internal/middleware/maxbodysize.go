package middleware

import (
	"encoding/json"
	"net/http"
)

// DefaultMaxBodyBytes fits a plan request carrying a few thousand
// caller-supplied waypoints.
const DefaultMaxBodyBytes int64 = 1 << 20

// NewMaxBodySizeHandler returns a middleware that limits incoming request body
// sizes to limit bytes. A request advertising a larger Content-Length is
// rejected with 413 before the next handler runs. Otherwise the body is
// wrapped in http.MaxBytesReader so reads past the limit fail.
func NewMaxBodySizeHandler(limit int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.ContentLength > limit {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				_ = json.NewEncoder(w).Encode(map[string]any{
					"error": map[string]string{"code": "request_too_large", "message": "request body is too large"},
				})
				return
			}
			r.Body = http.MaxBytesReader(w, r.Body, limit)
			next.ServeHTTP(w, r)
		})
	}
}

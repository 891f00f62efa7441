package middleware_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/route66/internal/middleware"
)

// logOnce runs one request through the logger around a handler that writes
// status and body, and returns the decoded log line.
func logOnce(t *testing.T, status int, body string) map[string]any {
	t.Helper()
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := middleware.NewSlogLogger(logger)(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(body))
		}),
	)

	req := httptest.NewRequest(http.MethodPost, "/trips/plan", nil)

	// Simulate what chimiddleware.RequestID does: inject a known ID into context.
	ctx := context.WithValue(req.Context(), chimiddleware.RequestIDKey, "test-req-id")
	req = req.WithContext(ctx)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, status, rec.Code)

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	return logEntry
}

// TestSlogLogger_logsRequestFields verifies that the SlogLogger middleware
// writes a structured JSON log line containing method, path, status, size,
// duration, and the request ID placed in context by chi's RequestID middleware.
func TestSlogLogger_logsRequestFields(t *testing.T) {
	logEntry := logOnce(t, http.StatusCreated, `{"ok":true}`)

	assert.Equal(t, "INFO", logEntry["level"])
	assert.Equal(t, "POST", logEntry["method"])
	assert.Equal(t, "/trips/plan", logEntry["path"])
	assert.EqualValues(t, http.StatusCreated, logEntry["status"])
	assert.EqualValues(t, len(`{"ok":true}`), logEntry["bytes"])
	assert.Equal(t, "test-req-id", logEntry["request_id"])
	assert.NotNil(t, logEntry["duration_ms"])
}

func TestSlogLogger_levelFollowsStatus(t *testing.T) {
	assert.Equal(t, "WARN", logOnce(t, http.StatusUnprocessableEntity, "")["level"])
	assert.Equal(t, "ERROR", logOnce(t, http.StatusInternalServerError, "")["level"])
}

func TestSlogLogger_implicitOK(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := middleware.NewSlogLogger(logger)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var logEntry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &logEntry))
	assert.EqualValues(t, http.StatusOK, logEntry["status"])
}

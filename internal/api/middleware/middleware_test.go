package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID_Generated(t *testing.T) {
	var seen string
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, w.Header().Get("X-Request-ID"))
}

func TestRequestID_Propagated(t *testing.T) {
	handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-123", GetRequestID(r.Context()))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, "req-123", w.Header().Get("X-Request-ID"))
}

func TestRequestID_RejectsUnsafeIDs(t *testing.T) {
	for _, id := range []string{"has space", "line\nbreak", strings.Repeat("a", 129)} {
		handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NotEqual(t, id, GetRequestID(r.Context()))
			_, err := uuid.Parse(GetRequestID(r.Context()))
			assert.NoError(t, err)
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", id)
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
}

func TestAccessLog_EmitsEvent(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	handler := RequestID(AccessLog(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		zerolog.Ctx(r.Context()).Info().Msg("inside handler")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"Missing query or ext"}`))
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/deep-search?query=q", nil)
	req.Header.Set("X-Request-ID", "req-abc")
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var inner map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &inner))
	assert.Equal(t, "req-abc", inner["request_id"])

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[1], &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/api/deep-search", entry["path"])
	assert.Equal(t, float64(http.StatusBadRequest), entry["status"])
	assert.Equal(t, "req-abc", entry["request_id"])
	assert.Equal(t, "203.0.113.7", entry["remote_addr"])
	assert.Equal(t, "http request", entry["message"])
}

func TestAccessLog_DefaultStatus(t *testing.T) {
	var buf bytes.Buffer
	handler := AccessLog(zerolog.New(&buf))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", clientIP(req))

	req.Header.Set("X-Real-IP", "198.51.100.2")
	assert.Equal(t, "198.51.100.2", clientIP(req))
}

func TestSentryMiddleware_WithoutClient(t *testing.T) {
	handler := SentryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotNil(t, sentry.GetHubFromContext(r.Context()))
		w.WriteHeader(http.StatusInternalServerError)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/deep-search", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSentryMiddleware_RepanicsAfterCapture(t *testing.T) {
	handler := SentryMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	assert.PanicsWithValue(t, "boom", func() {
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	})
}

func TestHTTPStatusToSpanStatus(t *testing.T) {
	tests := []struct {
		status   int
		expected sentry.SpanStatus
	}{
		{200, sentry.SpanStatusOK},
		{400, sentry.SpanStatusInvalidArgument},
		{404, sentry.SpanStatusNotFound},
		{429, sentry.SpanStatusResourceExhausted},
		{500, sentry.SpanStatusInternalError},
		{503, sentry.SpanStatusUnavailable},
		{504, sentry.SpanStatusDeadlineExceeded},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusToSpanStatus(tt.status), "status %d", tt.status)
	}
}

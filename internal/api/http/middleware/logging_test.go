package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rosterlab/memberd/internal/logger"
)

func TestLogging_Handle(t *testing.T) {
	var buf bytes.Buffer
	l := &logger.Logger{Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{}))}

	m := NewLogging(l)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/members", nil)
	rec := httptest.NewRecorder()
	m.Handle(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusTeapot, rec.Code)
	out := buf.String()
	assert.Contains(t, out, "HTTP request started")
	assert.Contains(t, out, "HTTP request completed")
	assert.Contains(t, out, "status=418")
	assert.Contains(t, out, "request_id=")
}

func TestLogging_Handle_DefaultStatus(t *testing.T) {
	var buf bytes.Buffer
	l := &logger.Logger{Logger: slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{}))}

	m := NewLogging(l)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})

	rec := httptest.NewRecorder()
	m.Handle(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, buf.String(), "status=200")
}

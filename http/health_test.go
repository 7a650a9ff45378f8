package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthHandler_Readiness(t *testing.T) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	pass := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("redis: connection refused") }

	tests := []struct {
		name     string
		checks   []func(context.Context) error
		expected int
	}{
		{"no checks", nil, http.StatusOK},
		{"all checks pass", []func(context.Context) error{pass, pass}, http.StatusOK},
		{"a later check fails", []func(context.Context) error{pass, fail}, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHealthHandler(log, tt.checks...)
			w := httptest.NewRecorder()

			h.Readiness(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.expected, w.Code)
		})
	}
}

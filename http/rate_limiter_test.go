package http

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLimiter(t *testing.T, capacity int, refill time.Duration) (*RateLimiter, *time.Time) {
	t.Helper()
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(capacity, refill)
	rl.now = func() time.Time { return now }
	t.Cleanup(rl.Stop)
	return rl, &now
}

func TestRateLimiter_Allow(t *testing.T) {
	t.Run("should allow up to capacity then reject", func(t *testing.T) {
		rl, _ := newTestLimiter(t, 3, time.Minute)

		for i := 0; i < 3; i++ {
			ok, _ := rl.Allow("10.0.0.1")
			require.True(t, ok, "request %d", i)
		}

		ok, retryAfter := rl.Allow("10.0.0.1")
		assert.False(t, ok)
		assert.Equal(t, time.Minute, retryAfter)
	})

	t.Run("should keep one bucket per key", func(t *testing.T) {
		rl, _ := newTestLimiter(t, 1, time.Minute)

		ok, _ := rl.Allow("a")
		require.True(t, ok)
		ok, _ = rl.Allow("b")
		assert.True(t, ok)
		ok, _ = rl.Allow("a")
		assert.False(t, ok)
	})

	t.Run("should refill after the refill duration", func(t *testing.T) {
		rl, now := newTestLimiter(t, 1, time.Minute)

		ok, _ := rl.Allow("a")
		require.True(t, ok)

		*now = now.Add(20 * time.Second)
		ok, retryAfter := rl.Allow("a")
		require.False(t, ok)
		assert.Equal(t, 40*time.Second, retryAfter)

		*now = now.Add(40 * time.Second)
		ok, _ = rl.Allow("a")
		assert.True(t, ok)
	})

	t.Run("should forget idle buckets on cleanup", func(t *testing.T) {
		rl, now := newTestLimiter(t, 1, time.Minute)

		rl.Allow("a")
		*now = now.Add(2 * time.Hour)
		rl.cleanup()

		rl.mu.Lock()
		assert.Empty(t, rl.clients)
		rl.mu.Unlock()
	})

	t.Run("stop is idempotent", func(t *testing.T) {
		rl, _ := newTestLimiter(t, 1, time.Minute)

		assert.NotPanics(t, func() {
			rl.Stop()
			rl.Stop()
		})
	})
}

func TestRateLimitMiddleware(t *testing.T) {
	rl, _ := newTestLimiter(t, 2, time.Minute)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	h := RateLimitMiddleware(rl, log, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	call := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/clients", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, call("192.0.2.1:1000").Code)
	// Same host on another port shares the bucket.
	assert.Equal(t, http.StatusOK, call("192.0.2.1:2000").Code)

	w := call("192.0.2.1:3000")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, call("192.0.2.2:1000").Code)
}

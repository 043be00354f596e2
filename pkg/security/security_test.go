package security

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimiterRefillsOverWindow(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	l := NewLimiter(3, time.Minute)
	l.now = func() time.Time { return now }

	for i := 0; i < 3; i++ {
		ok, _ := l.Reserve("10.0.0.1")
		require.True(t, ok, "request %d", i)
	}
	ok, wait := l.Reserve("10.0.0.1")
	assert.False(t, ok)
	assert.InDelta(t, float64(20*time.Second), float64(wait), float64(time.Millisecond))

	ok, _ = l.Reserve("10.0.0.2")
	assert.True(t, ok, "buckets are per key")

	now = now.Add(21 * time.Second)
	ok, _ = l.Reserve("10.0.0.1")
	assert.True(t, ok)
}

func TestLimiterSweepDropsIdleKeys(t *testing.T) {
	now := time.Now()
	l := NewLimiter(5, time.Minute)
	l.now = func() time.Time { return now }

	l.Reserve("a")
	now = now.Add(2 * time.Minute)
	l.Reserve("b")
	now = now.Add(2 * time.Minute)

	assert.Equal(t, 1, l.Sweep())
	assert.Len(t, l.visitors, 1)
}

func TestRunSweeperStopsWithContext(t *testing.T) {
	now := time.Now()
	l := NewLimiter(5, time.Minute)
	l.now = func() time.Time { return now }
	l.Reserve("a")
	l.now = func() time.Time { return now.Add(time.Hour) }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.RunSweeper(ctx, 5*time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool {
		l.mu.Lock()
		defer l.mu.Unlock()
		return len(l.visitors) == 0
	}, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("sweeper still running after cancel")
	}
}

func TestMiddlewareAnswers429(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(NewLimiter(1, time.Hour), "Slow down"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Body.String(), "Slow down")
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestCORSPreflight(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS([]string{"https://phonetics.md/"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://phonetics.md")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://phonetics.md", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

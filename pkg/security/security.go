package security

import (
	"context"
	"learning_center_backend/internal/util"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	allowHeaders  = "Content-Type, Content-Length, Accept, Accept-Encoding, Authorization, Origin, Cache-Control, X-Requested-With, X-Request-ID, Range"
	allowMethods  = "GET, POST, PATCH, DELETE, OPTIONS"
	exposeHeaders = "Content-Disposition, Content-Range, Accept-Ranges, X-Request-ID, Retry-After"
	preflightAge  = "600"
	sweepInterval = time.Minute
)

// CORS allows only listed origins and always sends credentials for them, as
// the session travels in a cookie. A "*" entry reflects any origin.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	originSet := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originSet[strings.TrimRight(o, "/")] = true
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		h := c.Writer.Header()
		h.Add("Vary", "Origin")

		if origin != "" && (originSet[origin] || originSet["*"]) {
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Set("Access-Control-Expose-Headers", exposeHeaders)
		}

		if c.Request.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Headers", allowHeaders)
			h.Set("Access-Control-Allow-Methods", allowMethods)
			h.Set("Access-Control-Max-Age", preflightAge)
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// Secure sets hardening headers. Uploaded images are embedded by the site's
// frontend, so resources stay readable cross-origin within the same site.
func Secure() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Cross-Origin-Resource-Policy", "same-site")
		if !strings.HasPrefix(c.Request.URL.Path, "/swagger/") {
			h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")
		}
		if c.Request.TLS != nil {
			h.Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		c.Next()
	}
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// Limiter hands out one token bucket per key. A bucket holds maxRequests
// tokens and refills evenly over the window.
type Limiter struct {
	mu       sync.Mutex
	visitors map[string]*visitor
	every    rate.Limit
	burst    int
	idle     time.Duration
	now      func() time.Time
}

func NewLimiter(maxRequests int, window time.Duration) *Limiter {
	if maxRequests <= 0 {
		maxRequests = 1
	}
	if window <= 0 {
		window = time.Minute
	}
	idle := window * 3
	if idle < time.Minute {
		idle = time.Minute
	}
	return &Limiter{
		visitors: make(map[string]*visitor),
		every:    rate.Every(window / time.Duration(maxRequests)),
		burst:    maxRequests,
		idle:     idle,
		now:      time.Now,
	}
}

// Reserve takes a token for key. When none is left it reports how long the
// caller should wait.
func (l *Limiter) Reserve(key string) (bool, time.Duration) {
	now := l.now()

	l.mu.Lock()
	v, ok := l.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(l.every, l.burst)}
		l.visitors[key] = v
	}
	v.lastSeen = now
	l.mu.Unlock()

	r := v.limiter.ReserveN(now, 1)
	delay := r.DelayFrom(now)
	if delay == 0 {
		return true, 0
	}
	r.CancelAt(now)
	return false, delay
}

// Sweep forgets keys that have been idle longer than three windows.
func (l *Limiter) Sweep() int {
	now := l.now()
	l.mu.Lock()
	defer l.mu.Unlock()

	removed := 0
	for key, v := range l.visitors {
		if now.Sub(v.lastSeen) > l.idle {
			delete(l.visitors, key)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep on every tick and returns once ctx is done.
func (l *Limiter) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.Sweep()
		}
	}
}

// RateLimiter allows maxRequests per window for each client IP and answers
// the rest with 429 and a Retry-After header. Idle keys are swept until ctx
// is done.
func RateLimiter(ctx context.Context, maxRequests int, window time.Duration, message string) gin.HandlerFunc {
	l := NewLimiter(maxRequests, window)
	go l.RunSweeper(ctx, sweepInterval)
	return Middleware(l, message)
}

func Middleware(l *Limiter, message string) gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, wait := l.Reserve(c.ClientIP())
		if !ok {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(wait.Seconds()))))
			util.HandleError(c, util.NewTooManyRequests(message))
			return
		}
		c.Next()
	}
}

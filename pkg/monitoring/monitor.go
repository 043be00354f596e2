package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learning_center_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "learning_center_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// LoginAttempts counts every stats log status written by the auth flows.
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learning_center_login_attempts_total",
			Help: "Login and OTP attempts by outcome",
		},
		[]string{"status"},
	)

	ExamSubmissions = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "learning_center_exam_submissions_total",
			Help: "Graded exam submissions",
		},
	)

	UploadedBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learning_center_uploaded_bytes_total",
			Help: "Bytes accepted by the upload endpoints",
		},
		[]string{"scope"},
	)

	MailsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learning_center_mails_sent_total",
			Help: "Outgoing mails by result",
		},
		[]string{"result"},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "learning_center_cache_lookups_total",
			Help: "Redis content cache reads by result",
		},
		[]string{"result"},
	)

	InFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "learning_center_http_requests_in_flight",
			Help: "Requests currently being served",
		},
	)
)

var registerOnce sync.Once

// Init registers the collectors. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			RequestCounter,
			RequestDuration,
			InFlight,
			LoginAttempts,
			ExamSubmissions,
			UploadedBytes,
			MailsSent,
			CacheLookups,
		)
	})
}

// MetricsMiddleware labels requests by route template, never by raw path,
// so id tokens and slugs do not explode the series count.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}
		InFlight.Inc()
		defer InFlight.Dec()

		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

package middleware

import (
	"learning_center_backend/internal/model"
	"learning_center_backend/internal/util"
	"learning_center_backend/pkg/logger"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

// RequestID tags every request with an id, reusing one sent by a proxy.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set(util.ContextRequestIDKey, id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// AccessLog writes one zap line per request once the response is done.
func AccessLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []zap.Field{
			zap.String("request_id", c.GetString(util.ContextRequestIDKey)),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if claims := util.GetUserFromContext(c); claims != nil {
			fields = append(fields, zap.String("login", claims.Login))
		}

		switch {
		case status >= 500:
			logger.Log.Error("request", fields...)
		case status >= 400:
			logger.Log.Warn("request", fields...)
		default:
			logger.Log.Debug("request", fields...)
		}
	}
}

type StatsRecorder interface {
	Create(entry *model.StatsLog) error
}

// StatsLogger stores a stats row for each request of the routes it wraps.
// The row is written after the handler so the session login is known. Its
// status is always success; only the auth flows record failures.
func StatsLogger(repo StatsRecorder) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		info := util.NewClientInfo(c)
		entry := &model.StatsLog{
			IP:         info.IP,
			Method:     info.Method,
			URL:        info.URL,
			UserAgent:  info.UserAgent,
			OS:         info.OS,
			Browser:    info.Browser,
			DeviceType: info.DeviceType,
			Status:     model.StatsSuccess,
			CreatedAt:  time.Now(),
		}
		if claims := util.GetUserFromContext(c); claims != nil {
			entry.Login = claims.Login
		}
		if err := repo.Create(entry); err != nil {
			logger.Log.Warn("stats log write failed", zap.Error(err))
		}
	}
}

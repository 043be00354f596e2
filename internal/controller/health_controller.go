package controller

import (
	"context"
	"learning_center_backend/internal/util"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type HealthController struct {
	DB    *gorm.DB
	Redis *redis.Client
}

func NewHealthController(db *gorm.DB, rdb *redis.Client) *HealthController {
	return &HealthController{DB: db, Redis: rdb}
}

// @Summary Health check
// @Description Reports database and, when enabled, redis reachability
// @Tags System
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} util.Response
// @Router /api/health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	sqlDB, err := c.DB.DB()
	if err != nil {
		util.InternalServerError(ctx)
		return
	}

	pingCtx, cancel := context.WithTimeout(ctx.Request.Context(), 2*time.Second)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	components := gin.H{"database": "up", "redis": "disabled"}
	if c.Redis != nil {
		if err := c.Redis.Ping(pingCtx).Err(); err != nil {
			util.Error(ctx, http.StatusServiceUnavailable, "Redis unavailable")
			return
		}
		components["redis"] = "up"
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}

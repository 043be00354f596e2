package database

import (
	"context"
	"fmt"
	"learning_center_backend/internal/config"
	"learning_center_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// InitRedis returns a nil client when redis is disabled; callers treat a
// nil client as "no cache".
func InitRedis(cfg *config.RedisConfig) (*redis.Client, error) {
	if !cfg.Enabled {
		logger.Log.Info("Redis disabled, content cache off")
		return nil, nil
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     50,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, errors.Wrapf(err, "ping redis at %s", addr)
	}

	logger.Log.Info("Redis connection established", zap.String("addr", addr))
	return rdb, nil
}

package service

import (
	"context"
	"encoding/json"
	"learning_center_backend/pkg/logger"
	"learning_center_backend/pkg/monitoring"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	cacheKeyHomepage = "content:homepage"
	cacheKeyFAQ      = "content:faq"
	cacheKeyAboutUs  = "content:about-us"
	cacheKeyBlogTags = "dictionary:blog-tags"
)

// Cache stores JSON values in redis. A nil client disables it: reads miss
// and writes are dropped. Redis errors are logged and treated as misses.
type Cache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Cache{Redis: rdb, TTL: ttl}
}

func (c *Cache) enabled() bool {
	return c != nil && c.Redis != nil
}

// Get decodes the cached value of key into dst and reports whether it was found.
func (c *Cache) Get(key string, dst interface{}) bool {
	if !c.enabled() {
		return false
	}
	val, err := c.Redis.Get(context.Background(), key).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.Log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		}
		monitoring.CacheLookups.WithLabelValues("miss").Inc()
		return false
	}
	if err := json.Unmarshal(val, dst); err != nil {
		logger.Log.Warn("cache decode failed", zap.String("key", key), zap.Error(err))
		monitoring.CacheLookups.WithLabelValues("miss").Inc()
		return false
	}
	monitoring.CacheLookups.WithLabelValues("hit").Inc()
	return true
}

func (c *Cache) Set(key string, value interface{}) {
	if !c.enabled() {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := c.Redis.Set(context.Background(), key, payload, c.TTL).Err(); err != nil {
		logger.Log.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) Invalidate(keys ...string) {
	if !c.enabled() {
		return
	}
	if err := c.Redis.Del(context.Background(), keys...).Err(); err != nil {
		logger.Log.Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

package service

import (
	"context"
	"edu_challenge_backend/pkg/logger"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Cache 对 redis 的薄封装，client 为 nil 时所有操作都是空操作
type Cache struct {
	Redis *redis.Client
}

func NewCache(rdb *redis.Client) *Cache {
	return &Cache{Redis: rdb}
}

func (c *Cache) Enabled() bool {
	return c != nil && c.Redis != nil
}

// GetJSON 命中时解码到 dst 并返回 true；redis 出错按未命中处理
func (c *Cache) GetJSON(ctx context.Context, key string, dst interface{}) bool {
	if !c.Enabled() {
		return false
	}
	data, err := c.Redis.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logger.Log.Warn("cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *Cache) SetJSON(ctx context.Context, key string, v interface{}, ttl time.Duration) {
	if !c.Enabled() || ttl <= 0 {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.Redis.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.Log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (c *Cache) Del(ctx context.Context, keys ...string) {
	if !c.Enabled() || len(keys) == 0 {
		return
	}
	if err := c.Redis.Del(ctx, keys...).Err(); err != nil {
		logger.Log.Warn("cache delete failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// Version 读取版本号，不存在时为 0
func (c *Cache) Version(ctx context.Context, key string) int64 {
	if !c.Enabled() {
		return 0
	}
	v, err := c.Redis.Get(ctx, key).Int64()
	if err != nil {
		return 0
	}
	return v
}

// Bump 递增版本号，旧版本的缓存键随即失效并等待过期
func (c *Cache) Bump(ctx context.Context, key string) {
	if !c.Enabled() {
		return
	}
	if err := c.Redis.Incr(ctx, key).Err(); err != nil {
		logger.Log.Warn("cache version bump failed", zap.String("key", key), zap.Error(err))
	}
}

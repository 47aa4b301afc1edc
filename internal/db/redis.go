package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ErrCacheMiss is returned by GetCache when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

const cachePrefix = "cache:"

type RedisDB struct {
	Client *redis.Client
	log    *zap.Logger
}

func NewRedisDB(redisURL string, log *zap.Logger) (*RedisDB, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	log.Info("connected to Redis", zap.String("addr", opt.Addr))
	return NewRedisDBFromClient(client, log), nil
}

// NewRedisDBFromClient wraps an existing client without pinging it.
func NewRedisDBFromClient(client *redis.Client, log *zap.Logger) *RedisDB {
	return &RedisDB{Client: client, log: log}
}

func (r *RedisDB) Close() {
	if r.Client != nil {
		if err := r.Client.Close(); err != nil {
			r.log.Warn("failed to close Redis client", zap.Error(err))
		}
	}
}

// SetCache stores value as JSON under key.
func (r *RedisDB) SetCache(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, cachePrefix+key, data, expiration).Err()
}

// GetCache decodes the JSON stored under key into dest.
func (r *RedisDB) GetCache(ctx context.Context, key string, dest interface{}) error {
	data, err := r.Client.Get(ctx, cachePrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

// InvalidateCache deletes every key matching pattern.
func (r *RedisDB) InvalidateCache(ctx context.Context, pattern string) error {
	var keys []string
	iter := r.Client.Scan(ctx, 0, cachePrefix+pattern, 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) > 0 {
		return r.Client.Del(ctx, keys...).Err()
	}
	return nil
}

package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// Cache is the subset of the Redis helper used for board views.
type Cache interface {
	GetCache(ctx context.Context, key string, dest interface{}) error
	SetCache(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	InvalidateCache(ctx context.Context, pattern string) error
}

var errCacheDisabled = errors.New("cache disabled")

// NopCache never stores anything.
type NopCache struct{}

func (NopCache) GetCache(context.Context, string, interface{}) error { return errCacheDisabled }

func (NopCache) SetCache(context.Context, string, interface{}, time.Duration) error { return nil }

func (NopCache) InvalidateCache(context.Context, string) error { return nil }

func BoardViewCacheKey(boardID string) string {
	return "board-view:" + boardID
}

// viewCache wraps Cache with the board view key scheme. Failures are logged
// and otherwise ignored; the store stays the source of truth.
type viewCache struct {
	cache Cache
	ttl   time.Duration
	log   *zap.Logger
}

func (v *viewCache) get(ctx context.Context, boardID string, dest *BoardView) bool {
	return v.cache.GetCache(ctx, BoardViewCacheKey(boardID), dest) == nil
}

func (v *viewCache) set(ctx context.Context, boardID string, view *BoardView) {
	if err := v.cache.SetCache(ctx, BoardViewCacheKey(boardID), view, v.ttl); err != nil {
		v.log.Warn("failed to cache board view", zap.String("boardId", boardID), zap.Error(err))
	}
}

func (v *viewCache) invalidate(ctx context.Context, boardIDs ...string) {
	for _, id := range boardIDs {
		if id == "" {
			continue
		}
		if err := v.cache.InvalidateCache(ctx, BoardViewCacheKey(id)); err != nil {
			v.log.Warn("failed to invalidate board view", zap.String("boardId", id), zap.Error(err))
		}
	}
}

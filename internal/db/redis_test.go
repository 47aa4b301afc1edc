package db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type cachedView struct {
	Title string `json:"title"`
	Cards int    `json:"cards"`
}

func setupRedisMock(t *testing.T) (*RedisDB, redismock.ClientMock) {
	t.Helper()
	client, mock := redismock.NewClientMock()
	rdb := NewRedisDBFromClient(client, zap.NewNop())
	t.Cleanup(rdb.Close)
	return rdb, mock
}

func TestRedisSetCache(t *testing.T) {
	rdb, mock := setupRedisMock(t)

	mock.ExpectSet("cache:board-view:b1", []byte(`{"title":"Sprint 1","cards":3}`), 5*time.Minute).SetVal("OK")

	err := rdb.SetCache(context.Background(), "board-view:b1", cachedView{Title: "Sprint 1", Cards: 3}, 5*time.Minute)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisGetCache(t *testing.T) {
	rdb, mock := setupRedisMock(t)

	mock.ExpectGet("cache:board-view:b1").SetVal(`{"title":"Sprint 1","cards":3}`)

	var got cachedView
	require.NoError(t, rdb.GetCache(context.Background(), "board-view:b1", &got))
	assert.Equal(t, cachedView{Title: "Sprint 1", Cards: 3}, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisGetCache_Miss(t *testing.T) {
	rdb, mock := setupRedisMock(t)

	mock.ExpectGet("cache:board-view:b1").RedisNil()

	var got cachedView
	err := rdb.GetCache(context.Background(), "board-view:b1", &got)
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisGetCache_Error(t *testing.T) {
	rdb, mock := setupRedisMock(t)

	mock.ExpectGet("cache:board-view:b1").SetErr(errors.New("connection reset"))

	var got cachedView
	err := rdb.GetCache(context.Background(), "board-view:b1", &got)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCacheMiss)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisInvalidateCache(t *testing.T) {
	rdb, mock := setupRedisMock(t)

	mock.ExpectScan(0, "cache:board-view:*", 100).SetVal([]string{"cache:board-view:b1", "cache:board-view:b2"}, 0)
	mock.ExpectDel("cache:board-view:b1", "cache:board-view:b2").SetVal(2)

	require.NoError(t, rdb.InvalidateCache(context.Background(), "board-view:*"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisInvalidateCache_NoKeys(t *testing.T) {
	rdb, mock := setupRedisMock(t)

	mock.ExpectScan(0, "cache:board-view:b1", 100).SetVal([]string{}, 0)

	require.NoError(t, rdb.InvalidateCache(context.Background(), "board-view:b1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

package database

import (
	"context"
	"testing"
	"time"

	"quizserver/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestSaveAndGetSession(t *testing.T) {
	rdb := newTestRedis(t)
	logger := zap.NewNop()
	ctx := context.Background()

	issued := time.Now().Truncate(time.Second)
	info := models.SessionInfo{UserID: 7, Role: "admin", IssuedAt: issued}

	err := SaveSession(ctx, rdb, "jti-1", info, time.Hour, logger)
	require.NoError(t, err)

	got, err := GetSession(ctx, rdb, "jti-1", logger)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.UserID)
	assert.Equal(t, "admin", got.Role)
	assert.True(t, got.IssuedAt.Equal(issued))
}

func TestGetSessionMissing(t *testing.T) {
	rdb := newTestRedis(t)

	_, err := GetSession(context.Background(), rdb, "unknown", zap.NewNop())
	assert.ErrorIs(t, err, redis.Nil)
}

func TestDeleteSessionIsIdempotent(t *testing.T) {
	rdb := newTestRedis(t)
	logger := zap.NewNop()
	ctx := context.Background()

	info := models.SessionInfo{UserID: 1, Role: "player", IssuedAt: time.Now()}
	require.NoError(t, SaveSession(ctx, rdb, "jti-2", info, time.Hour, logger))

	require.NoError(t, DeleteSession(ctx, rdb, "jti-2", logger))
	_, err := GetSession(ctx, rdb, "jti-2", logger)
	assert.ErrorIs(t, err, redis.Nil)

	// 2回目の削除もエラーにならない
	require.NoError(t, DeleteSession(ctx, rdb, "jti-2", logger))
}

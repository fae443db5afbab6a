package database

import (
	"context"
	"encoding/json"
	"time"

	"quizserver/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const sessionKeyPrefix = "session:"

// SaveSession はログイン時にセッション情報をRedisへ保存します。
// キーはトークンのjtiで、トークンの有効期限と同じTTLを設定します。
func SaveSession(ctx context.Context, rdb *redis.Client, tokenID string, info models.SessionInfo, ttl time.Duration, logger *zap.Logger) error {
	sessionInfoJSON, err := json.Marshal(info)
	if err != nil {
		logger.Error("Error encoding session info", zap.Error(err))
		return err
	}

	if err := rdb.Set(ctx, sessionKeyPrefix+tokenID, sessionInfoJSON, ttl).Err(); err != nil {
		logger.Error("Error storing session info in Redis", zap.Error(err))
		return err
	}

	logger.Info("Session info stored", zap.String("tokenID", tokenID))
	return nil
}

// GetSession はjtiに対応するセッション情報を取得します。
// 存在しない・期限切れの場合はredis.Nilを含むエラーを返します。
func GetSession(ctx context.Context, rdb *redis.Client, tokenID string, logger *zap.Logger) (*models.SessionInfo, error) {
	sessionInfoJSON, err := rdb.Get(ctx, sessionKeyPrefix+tokenID).Result()
	if err != nil {
		if err != redis.Nil {
			logger.Error("Failed to retrieve session info", zap.Error(err))
		}
		return nil, err
	}

	var info models.SessionInfo
	if err := json.Unmarshal([]byte(sessionInfoJSON), &info); err != nil {
		logger.Error("Failed to decode session info", zap.Error(err))
		return nil, err
	}

	return &info, nil
}

// DeleteSession はログアウト時にセッション情報を削除します。
// 既に存在しないキーの削除もエラーにはなりません（冪等）。
func DeleteSession(ctx context.Context, rdb *redis.Client, tokenID string, logger *zap.Logger) error {
	if err := rdb.Del(ctx, sessionKeyPrefix+tokenID).Err(); err != nil {
		logger.Error("Error deleting session info", zap.Error(err))
		return err
	}
	return nil
}

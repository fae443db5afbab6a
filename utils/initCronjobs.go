package utils

import (
	"time"

	"quizserver/models"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func CronCleaner(db *gorm.DB, logger *zap.Logger) {
	c := cron.New()

	// 期限切れのセッショントークン記録を削除するジョブ（毎日実行）
	c.AddFunc("@daily", func() {
		logger.Info("期限切れセッショントークンの削除を開始")
		result := db.Where("expires_at <= ?", time.Now()).Delete(&models.SessionToken{})
		if result.Error != nil {
			logger.Error("期限切れセッショントークンの削除に失敗しました", zap.Error(result.Error))
		} else {
			logger.Info("期限切れセッショントークンの削除完了",
				zap.Int("tokens_deleted", int(result.RowsAffected)))
		}
	})

	// 論理削除されたクイズと設問を完全に削除するジョブ（"分 時 日 月 曜日"）
	c.AddFunc("0 3 * * *", func() {
		logger.Info("論理削除済みクイズの完全削除を開始")
		// 48時間以上前に論理削除されたクイズを取得
		deletedQuizIDs := []uint{}
		db.Unscoped().Model(&models.Quiz{}).
			Where("deleted_at IS NOT NULL AND deleted_at <= ?", time.Now().Add(-48*time.Hour)).
			Pluck("id", &deletedQuizIDs)

		if len(deletedQuizIDs) == 0 {
			return
		}

		// 設問を先に削除してからクイズ本体を削除
		db.Unscoped().Where("quiz_id IN ?", deletedQuizIDs).Delete(&models.Question{})

		result := db.Unscoped().Where("id IN ?", deletedQuizIDs).Delete(&models.Quiz{})
		if result.Error != nil {
			logger.Error("論理削除済みクイズの完全削除に失敗しました", zap.Error(result.Error))
		} else {
			logger.Info("論理削除済みクイズの完全削除完了",
				zap.Int("quizzes_deleted", int(result.RowsAffected)))
		}
	})

	c.Start()
}

package handlers

import (
	"net/http"
	"time"

	"quizserver/middlewares"
	"quizserver/models"
	"quizserver/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DashboardHandler はダッシュボード画面の情報を提供するハンドラーです。
func DashboardHandler(c *gin.Context, db *gorm.DB, store session.Store, logger *zap.Logger) {
	userID, err := middlewares.GetUserIDFromToken(c, store, logger)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		logger.Error("Failed to retrieve user", zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	// 公開中の自作クイズの数
	var publishedCount int64
	if err := db.Model(&models.Quiz{}).
		Where("user_id = ? AND state = 'published'", userID).
		Count(&publishedCount).Error; err != nil {
		logger.Error("Failed to count published quizzes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	// 直近の解答結果を最大5件取得
	var recent []struct {
		CreatedAt time.Time `json:"createdAt"`
		Score     int       `json:"score"`
		Total     int       `json:"total"`
		Title     string    `json:"title"`
	}
	if err := db.Model(&models.Attempt{}).
		Joins("join quizzes on quizzes.id = attempts.quiz_id").
		Where("attempts.user_id = ?", userID).
		Select("attempts.created_at", "attempts.score", "attempts.total", "quizzes.title").
		Order("attempts.created_at desc").
		Limit(5).
		Find(&recent).Error; err != nil {
		logger.Error("Failed to retrieve recent attempts", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":       user.UserName,
		"role":           user.Role,
		"quizCount":      user.QuizCount,
		"attemptCount":   user.AttemptCount,
		"publishedCount": publishedCount,
		"recentAttempts": recent,
	})
}

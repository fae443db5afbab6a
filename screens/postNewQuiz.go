package screens

import (
	"net/http"

	"quizserver/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// currentAdminID はAdminOnlyミドルウェアがコンテキストに設定した
// ユーザーIDを取り出します。
func currentAdminID(c *gin.Context) (uint, bool) {
	v, ok := c.Get("UserID")
	if !ok {
		return 0, false
	}
	userID, ok := v.(uint)
	return userID, ok
}

// QuizCreateHandler は管理画面からのクイズ作成を処理するハンドラーです。
func QuizCreateHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	userID, ok := currentAdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.QuizCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Request binding error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request binding error"})
		return
	}

	quiz := models.Quiz{
		UserID:     userID,
		Title:      req.Title,
		State:      "draft",
		ShareToken: uuid.New().String(), // 公開URL用
	}
	if err := db.Create(&quiz).Error; err != nil {
		logger.Error("Failed to create a new quiz", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create quiz"})
		return
	}

	// 作成後にユーザーのQuizCountを更新
	if err := db.Model(&models.User{}).Where("id = ?", userID).
		Update("quiz_count", gorm.Expr("quiz_count + 1")).Error; err != nil {
		logger.Error("Failed to update user's quiz_count", zap.Error(err))
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Quiz successfully created",
		"quizId":     quiz.ID,
		"shareToken": quiz.ShareToken,
	})
}

package screens

import (
	"net/http"

	"quizserver/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// クイズの状態遷移。draftからpublished、publishedからarchivedの一方向のみ。
var allowedTransitions = map[string]string{
	"draft":     "published",
	"published": "archived",
}

// QuizUpdateHandler はクイズのタイトル変更・状態遷移を処理するハンドラーです。
func QuizUpdateHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	userID, ok := currentAdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req models.QuizUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Request binding error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request binding error"})
		return
	}

	var quiz models.Quiz
	if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&quiz).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}

	updates := map[string]interface{}{}
	if req.Title != "" {
		updates["title"] = req.Title
	}
	if req.State != "" && req.State != quiz.State {
		if allowedTransitions[quiz.State] != req.State {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid state transition"})
			return
		}
		updates["state"] = req.State
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, gin.H{"message": "Nothing to update"})
		return
	}

	if err := db.Model(&quiz).Updates(updates).Error; err != nil {
		logger.Error("Failed to update quiz", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update quiz"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz updated"})
}

// QuizDeleteHandler はクイズと結びつく設問を削除するハンドラーです。
func QuizDeleteHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	userID, ok := currentAdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var quiz models.Quiz
	if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&quiz).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}

	// 設問を先に削除してからクイズ本体を削除
	if err := db.Where("quiz_id = ?", quiz.ID).Delete(&models.Question{}).Error; err != nil {
		logger.Error("Failed to delete questions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete quiz"})
		return
	}
	if err := db.Delete(&quiz).Error; err != nil {
		logger.Error("Failed to delete quiz", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete quiz"})
		return
	}

	if err := db.Model(&models.User{}).Where("id = ? AND quiz_count > 0", userID).
		Update("quiz_count", gorm.Expr("quiz_count - 1")).Error; err != nil {
		logger.Error("Failed to update user's quiz_count", zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted"})
}

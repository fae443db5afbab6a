package screens

import (
	"encoding/json"
	"net/http"

	"quizserver/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuestionCreateHandler は設問追加を処理するハンドラーです。
func QuestionCreateHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
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

	var req models.QuestionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Request binding error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request binding error"})
		return
	}
	if req.Answer < 0 || req.Answer >= len(req.Choices) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Answer index out of range"})
		return
	}

	choicesJSON, err := json.Marshal(req.Choices)
	if err != nil {
		logger.Error("Failed to encode choices", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	position := req.Position
	if position == 0 {
		// 省略時は末尾に追加
		var count int64
		db.Model(&models.Question{}).Where("quiz_id = ?", quiz.ID).Count(&count)
		position = int(count) + 1
	}

	question := models.Question{
		QuizID:   quiz.ID,
		Text:     req.Text,
		Choices:  string(choicesJSON),
		Answer:   req.Answer,
		Position: position,
	}
	if err := db.Create(&question).Error; err != nil {
		logger.Error("Failed to create question", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Question successfully created",
		"questionId": question.ID,
	})
}

// QuestionDeleteHandler は設問削除を処理するハンドラーです。
func QuestionDeleteHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
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

	result := db.Where("id = ? AND quiz_id = ?", c.Param("qid"), quiz.ID).Delete(&models.Question{})
	if result.Error != nil {
		logger.Error("Failed to delete question", zap.Error(result.Error))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete question"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted"})
}

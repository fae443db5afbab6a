package screens

import (
	"encoding/json"
	"net/http"

	ws "quizserver/internal/websocket"
	"quizserver/middlewares"
	"quizserver/models"
	"quizserver/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PlayQuizHandler は公開中のクイズを解答用に返すハンドラーです。
// 正解インデックスはレスポンスに含めません。
func PlayQuizHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	var quiz models.Quiz
	if err := db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.position asc")
	}).Where("share_token = ? AND state = 'published'", c.Param("shareToken")).
		First(&quiz).Error; err != nil {
		logger.Error("Quiz not found with share token", zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}

	questions := make([]gin.H, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		var choices []string
		if err := json.Unmarshal([]byte(q.Choices), &choices); err != nil {
			// 設問を黙って飛ばすと採点時の解答インデックスとずれるため、
			// ここではリクエスト全体を失敗させる
			logger.Error("Failed to decode question choices", zap.Uint("questionID", q.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load quiz"})
			return
		}
		questions = append(questions, gin.H{
			"text":    q.Text,
			"choices": choices,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"title":     quiz.Title,
		"questions": questions,
	})
}

// AttemptHandler は解答送信を処理するハンドラーです。採点結果を保存し、
// 同じクイズのロビーへ通知します。
func AttemptHandler(c *gin.Context, db *gorm.DB, store session.Store, hub *ws.Hub, logger *zap.Logger) {
	userID, err := middlewares.GetUserIDFromToken(c, store, logger)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	var quiz models.Quiz
	if err := db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.position asc")
	}).Where("share_token = ? AND state = 'published'", c.Param("shareToken")).
		First(&quiz).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}

	var req models.AttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Request binding error", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Request binding error"})
		return
	}

	score, total := scoreAnswers(quiz.Questions, req.Answers)

	attempt := models.Attempt{
		UserID: userID,
		QuizID: quiz.ID,
		Score:  score,
		Total:  total,
	}
	if err := db.Create(&attempt).Error; err != nil {
		logger.Error("Failed to create attempt", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record attempt"})
		return
	}

	if err := db.Model(&models.User{}).Where("id = ?", userID).
		Update("attempt_count", gorm.Expr("attempt_count + 1")).Error; err != nil {
		logger.Error("Failed to update user's attempt_count", zap.Error(err))
	}

	// ロビーへ通知（参加者がいなければ何も起きない）
	if hub != nil {
		var user models.User
		if err := db.First(&user, userID).Error; err == nil {
			hub.BroadcastAttempt(quiz.ID, user.UserName, score, total, logger)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Attempt recorded",
		"score":   score,
		"total":   total,
	})
}

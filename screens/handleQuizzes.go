package screens

import (
	"encoding/json"
	"net/http"
	"time"

	"quizserver/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// QuizListHandler は管理画面のクイズ一覧を提供するハンドラーです。
func QuizListHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	userID, ok := currentAdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var quizzes []struct {
		ID         uint      `json:"id"`
		CreatedAt  time.Time `json:"createdAt"`
		Title      string    `json:"title"`
		State      string    `json:"state"`
		ShareToken string    `json:"shareToken"`
	}
	if err := db.Model(&models.Quiz{}).
		Where("user_id = ?", userID).
		Select("id", "created_at", "title", "state", "share_token").
		Order("created_at desc").
		Find(&quizzes).Error; err != nil {
		logger.Error("Failed to retrieve quiz list", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve quiz list"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"quizzes": quizzes})
}

// QuizInfoHandler は1件のクイズを設問付きで返すハンドラーです。
// 自分が作成したクイズのみ参照できます。
func QuizInfoHandler(c *gin.Context, db *gorm.DB, logger *zap.Logger) {
	userID, ok := currentAdminID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var quiz models.Quiz
	if err := db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.position asc")
	}).Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&quiz).Error; err != nil {
		logger.Error("Quiz not found", zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}

	questions := make([]gin.H, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		var choices []string
		if err := json.Unmarshal([]byte(q.Choices), &choices); err != nil {
			// 一部の設問だけ欠けた一覧を返すと編集画面が壊れるため失敗させる
			logger.Error("Failed to decode question choices", zap.Uint("questionID", q.ID), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load quiz"})
			return
		}
		questions = append(questions, gin.H{
			"id":       q.ID,
			"text":     q.Text,
			"choices":  choices,
			"answer":   q.Answer,
			"position": q.Position,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         quiz.ID,
		"title":      quiz.Title,
		"state":      quiz.State,
		"shareToken": quiz.ShareToken,
		"questions":  questions,
	})
}

package handlers

import (
	"net/http"

	"quizserver/auth"
	"quizserver/database"
	"quizserver/models"
	"quizserver/session"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProfileHandler はプロフィール画面の情報を提供するハンドラーです。
// セッションの発行時刻はRedisから取得しますが、取得できない場合でも
// プロフィール自体は返します（表示項目が欠けるだけ）。
func ProfileHandler(c *gin.Context, db *gorm.DB, rdb *redis.Client, store session.Store, logger *zap.Logger) {
	tokenString, ok := store.GetToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	claims, err := auth.ParseClaims(tokenString)
	if err != nil {
		logger.Error("Failed to parse session token", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	var user models.User
	if err := db.First(&user, claims.UserID).Error; err != nil {
		logger.Error("Failed to retrieve user", zap.Error(err))
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	response := gin.H{
		"username":     user.UserName,
		"role":         user.Role,
		"memberSince":  user.CreatedAt,
		"quizCount":    user.QuizCount,
		"attemptCount": user.AttemptCount,
	}

	if info, err := database.GetSession(c.Request.Context(), rdb, claims.Id, logger); err == nil {
		response["sessionIssuedAt"] = info.IssuedAt
	} else {
		logger.Warn("セッション情報の取得に失敗", zap.Error(err))
	}

	c.JSON(http.StatusOK, response)
}

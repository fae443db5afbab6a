package middlewares

import (
	"fmt"
	"net/http"

	"quizserver/auth"
	"quizserver/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetUserIDFromToken はセッションストアのトークンからユーザーIDを解析して返します。
// ガードを通過した後のハンドラーが、どのユーザーのデータを返すかを
// 決めるために使用します。
func GetUserIDFromToken(c *gin.Context, store session.Store, logger *zap.Logger) (uint, error) {
	tokenString, ok := store.GetToken(c)
	if !ok {
		logger.Error("Token string is empty")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
		return 0, fmt.Errorf("token is required")
	}

	claims, err := auth.ParseClaims(tokenString)
	if err != nil {
		logger.Error("Failed to parse session token", zap.Error(err))
		return 0, err
	}

	return claims.UserID, nil
}

package middlewares

import (
	"time"

	"quizserver/auth"
	"quizserver/models"

	jwt "github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GenerateToken はログイン成功時に渡すセッショントークンを生成します。
// クライアント側ではトークンの中身は解釈されず、存在のみが意味を持ちます。
// 戻り値はトークン文字列、jti、有効期限です。
func GenerateToken(user models.User, logger *zap.Logger) (string, string, time.Time, error) {
	var expirationTime time.Time

	// 管理者は長い有効期限を設定
	if user.Role == "admin" {
		expirationTime = time.Now().Add(72 * time.Hour)
	} else {
		expirationTime = time.Now().Add(24 * time.Hour)
	}

	tokenID := uuid.New().String()

	// JWTトークン生成時に内包するデータ
	claims := &models.MyClaims{
		UserID: user.ID,
		Role:   user.Role,
		StandardClaims: jwt.StandardClaims{
			Id:        tokenID,
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: expirationTime.Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(auth.JwtKey)
	if err != nil {
		logger.Error("トークン生成中にエラー発生", zap.Error(err))
		return "", "", time.Time{}, err
	}

	return tokenString, tokenID, expirationTime, nil
}

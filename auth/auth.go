package auth

import (
	"os"

	"quizserver/models"

	jwt "github.com/golang-jwt/jwt"
)

// JwtKey はトークン署名に使用する共通鍵です。
// ！！！本番環境では必ず環境変数JWT_KEYで設定
var JwtKey = []byte(jwtKeyFromEnv())

func jwtKeyFromEnv() string {
	if key := os.Getenv("JWT_KEY"); key != "" {
		return key
	}
	return "your_secret_key" // 開発用のデフォルト値
}

// ParseClaims はトークン文字列を検証し、クレームを取り出します。
func ParseClaims(tokenString string) (*models.MyClaims, error) {
	claims := &models.MyClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return JwtKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.NewValidationError("invalid token", jwt.ValidationErrorClaimsInvalid)
	}

	return claims, nil
}

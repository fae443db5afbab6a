package middlewares

import (
	"testing"
	"time"

	"quizserver/auth"
	"quizserver/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func TestGenerateTokenRoundTrip(t *testing.T) {
	user := models.User{
		Model:    gorm.Model{ID: 42},
		UserName: "alice",
		Role:     "player",
	}

	tokenString, tokenID, expiresAt, err := GenerateToken(user, zap.NewNop())
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	require.NotEmpty(t, tokenID)

	claims, err := auth.ParseClaims(tokenString)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "player", claims.Role)
	assert.Equal(t, tokenID, claims.Id)
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt)
}

func TestGenerateTokenAdminExpiry(t *testing.T) {
	admin := models.User{Model: gorm.Model{ID: 1}, UserName: "admin", Role: "admin"}
	player := models.User{Model: gorm.Model{ID: 2}, UserName: "bob", Role: "player"}

	_, _, adminExpiry, err := GenerateToken(admin, zap.NewNop())
	require.NoError(t, err)
	_, _, playerExpiry, err := GenerateToken(player, zap.NewNop())
	require.NoError(t, err)

	// 管理者のトークンの方が有効期限が長い
	assert.True(t, adminExpiry.After(time.Now().Add(71*time.Hour)))
	assert.True(t, playerExpiry.Before(time.Now().Add(25*time.Hour)))
}

func TestParseClaimsRejectsGarbage(t *testing.T) {
	_, err := auth.ParseClaims("not-a-jwt-at-all")
	assert.Error(t, err)
}

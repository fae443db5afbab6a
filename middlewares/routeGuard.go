package middlewares

import (
	"net/http"

	"quizserver/auth"
	"quizserver/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// LoginPath は未ログイン時のリダイレクト先です。
const LoginPath = "/login"

// RouteGuard は保護されたルートを包むミドルウェアです。
// セッションストアにトークンが存在するかどうかだけを確認し、
// 無ければログイン画面へリダイレクトします。トークンの中身の検証や
// 有効期限のチェックはここでは行いません。
//
// リダイレクトには303 See Otherを使用します。通常のリダイレクトと同様に
// 元のURLはブラウザ履歴に積まれないため、戻るボタンで保護ページには戻れません。
func RouteGuard(store session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !store.HasToken(c) {
			logger.Info("未認証のアクセスをリダイレクト",
				zap.String("path", c.Request.URL.Path),
			)
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminOnly は管理画面用のミドルウェアです。RouteGuardの内側で使用し、
// トークンのroleクレームがadminのユーザーのみ通過させます。
func AdminOnly(store session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := store.GetToken(c)
		if !ok {
			c.Redirect(http.StatusSeeOther, LoginPath)
			c.Abort()
			return
		}

		claims, err := auth.ParseClaims(tokenString)
		if err != nil || claims.Role != "admin" {
			logger.Warn("管理者権限のないアクセス",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err),
			)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		c.Set("UserID", claims.UserID)
		c.Next()
	}
}

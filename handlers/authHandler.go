package handlers

import (
	"errors"
	"net/http"
	"time"

	"quizserver/auth"
	"quizserver/database"
	"quizserver/middlewares"
	"quizserver/models"
	"quizserver/session"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// デモ用の固定資格情報。本物の認証基盤が繋がるまでの暫定ログインで、
// 初回ログイン時に管理者ユーザーが自動作成されます。
const (
	demoUserName = "admin"
	demoPassword = "admin1234"
)

// RegisterUser はユーザー登録ハンドラーです。
func RegisterUser(db *gorm.DB, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.RegisterRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		// デモログイン用の名前は登録させない。許可するとデモ資格情報で
		// そのユーザーとしてログインできてしまう
		if req.UserName == demoUserName {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username is reserved"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logger.Error("Failed to hash password", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		user := models.User{
			UserName:     req.UserName,
			PasswordHash: string(hash),
			Role:         "player",
		}

		if err := db.Create(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				c.JSON(http.StatusConflict, gin.H{"error": "Username already taken"})
				return
			}
			logger.Error("Failed to create user", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "User registered", "userId": user.ID})
	}
}

// LoginPage はリダイレクト先となるログイン画面用のエンドポイントです。
// 画面自体はクライアント側で描画されるため、ここでは案内のみを返します。
func LoginPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Login required"})
	}
}

// Login はログインハンドラーです。資格情報を検証し、セッショントークンを
// 発行してセッションストアへ書き込みます。ガードはトークンの存在のみを
// 見るため、発行されたトークンの中身はクライアントにとって不透明です。
func Login(db *gorm.DB, rdb *redis.Client, store session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		var user models.User
		if req.UserName == demoUserName && req.Password == demoPassword {
			// デモ資格情報。管理者ユーザーが無ければここで作成する
			err := db.Where("user_name = ?", demoUserName).First(&user).Error
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), bcrypt.DefaultCost)
				if err != nil {
					logger.Error("Failed to hash demo password", zap.Error(err))
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
					return
				}
				user = models.User{UserName: demoUserName, PasswordHash: string(hash), Role: "admin"}
				if err := db.Create(&user).Error; err != nil {
					logger.Error("Failed to create demo user", zap.Error(err))
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
					return
				}
			case err != nil:
				logger.Error("Failed to fetch demo user", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
				return
			case user.Role != "admin":
				// デモ名を持つ既存ユーザーがいた場合はハッシュ照合を省略しない
				if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
					logger.Warn("ログイン失敗: パスワード不一致", zap.String("username", req.UserName))
					c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
					return
				}
			}
		} else {
			if err := db.Where("user_name = ?", req.UserName).First(&user).Error; err != nil {
				logger.Warn("ログイン失敗: ユーザーが存在しない", zap.String("username", req.UserName))
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
			if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
				logger.Warn("ログイン失敗: パスワード不一致", zap.String("username", req.UserName))
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
				return
			}
		}

		tokenString, tokenID, expiresAt, err := middlewares.GenerateToken(user, logger)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}

		// 発行済みトークンをデータベースに記録（Cronで期限切れを掃除）
		tokenType := "registered"
		if user.UserName == demoUserName {
			tokenType = "demo"
		}
		record := models.SessionToken{
			UserID:     user.ID,
			TokenID:    tokenID,
			TokenType:  tokenType,
			ExpiresAt:  expiresAt,
			DeviceInfo: c.Request.UserAgent(),
		}
		if err := db.Create(&record).Error; err != nil {
			logger.Error("Failed to record session token", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}

		// Redisへセッション情報を保存。失敗してもログイン自体は成立させる
		info := models.SessionInfo{UserID: user.ID, Role: user.Role, IssuedAt: time.Now()}
		if err := database.SaveSession(c.Request.Context(), rdb, tokenID, info, time.Until(expiresAt), logger); err != nil {
			logger.Warn("セッション情報の保存に失敗", zap.Error(err))
		}

		store.SetToken(c, tokenString)
		logger.Info("ログイン成功", zap.Uint("userID", user.ID), zap.String("role", user.Role))

		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"token":   tokenString,
			"role":    user.Role,
		})
	}
}

// Logout はログアウトハンドラーです。セッションストアのトークンを削除し、
// Redisのセッション情報も破棄します。トークンが無い状態で呼ばれても
// エラーにはなりません（冪等）。
func Logout(rdb *redis.Client, store session.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := store.GetToken(c); ok {
			// jtiが取り出せた場合のみRedis側のセッション情報を削除
			if claims, err := auth.ParseClaims(tokenString); err == nil && claims.Id != "" {
				if err := database.DeleteSession(c.Request.Context(), rdb, claims.Id, logger); err != nil {
					logger.Warn("セッション情報の削除に失敗", zap.Error(err))
				}
			}
		}

		store.ClearToken(c)
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

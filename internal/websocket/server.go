package websocket

import (
	"net/http"
	"sync"

	"quizserver/auth"
	"quizserver/models"
	"quizserver/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Hub は公開中クイズごとのロビー接続を管理します。
type Hub struct {
	mu      sync.Mutex
	clients map[*Client]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[*Client]bool)}
}

func (h *Hub) register(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[client] = true
}

func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, client)
}

// broadcast は同じクイズのロビーにいる全クライアントへメッセージを送信します。
func (h *Hub) broadcast(quizID uint, message interface{}, logger *zap.Logger) {
	h.mu.Lock()
	targets := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		if c.QuizID == quizID {
			targets = append(targets, c)
		}
	}
	h.mu.Unlock()

	for _, c := range targets {
		if err := c.sendJSON(message); err != nil {
			logger.Error("Failed to send lobby message",
				zap.Uint("to", c.UserID),
				zap.Error(err),
			)
		}
	}
}

// BroadcastAttempt は解答送信をロビーへ通知します。解答処理側から呼ばれます。
func (h *Hub) BroadcastAttempt(quizID uint, userName string, score, total int, logger *zap.Logger) {
	h.broadcast(quizID, map[string]interface{}{
		"type":     "attemptResult",
		"username": userName,
		"score":    score,
		"total":    total,
	}, logger)
}

// HandleConnections はロビーへのWebSocket接続を処理します。
// ルートガードの内側に置かれるため、ここではユーザーIDの解析と
// 対象クイズが公開中であることの確認のみを行います。
func HandleConnections(c *gin.Context, db *gorm.DB, store session.Store, hub *Hub, upgrader *websocket.Upgrader, logger *zap.Logger) {
	tokenString, ok := store.GetToken(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	claims, err := auth.ParseClaims(tokenString)
	if err != nil {
		logger.Error("Failed to parse session token", zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var quiz models.Quiz
	if err := db.Where("share_token = ? AND state = 'published'", c.Param("shareToken")).
		First(&quiz).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Quiz not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Error("Error upgrading WebSocket", zap.Error(err))
		return
	}

	client := &Client{Conn: conn, UserID: claims.UserID, QuizID: quiz.ID}
	hub.register(client)
	logger.Info("New lobby client added",
		zap.Uint("UserID", client.UserID),
		zap.Uint("QuizID", quiz.ID),
	)

	hub.broadcast(quiz.ID, map[string]interface{}{
		"type":   "joined",
		"userID": client.UserID,
	}, logger)

	// クライアントごとにメッセージ読み取りゴルーチンを起動
	go client.readLoop(hub, logger)

	// Ping/Pongを管理するゴルーチンを起動
	go client.pingLoop(hub, logger)
}

package websocket

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Client はロビーに参加しているWebSocketクライアントを表します。
type Client struct {
	Conn   *websocket.Conn
	UserID uint // トークンのクレームから抽出したユーザーID
	QuizID uint

	writeMu sync.Mutex // 複数ゴルーチンからの書き込みを直列化
}

func (c *Client) sendJSON(message interface{}) error {
	messageJSON, err := json.Marshal(message)
	if err != nil {
		return err
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteMessage(websocket.TextMessage, messageJSON)
}

// readLoop はクライアントからのメッセージを読み取り続けるゴルーチンです。
func (c *Client) readLoop(hub *Hub, logger *zap.Logger) {
	defer func() {
		c.Conn.Close()
		hub.remove(c)
	}()

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Error("WebSocket error", zap.Error(err))
			}
			break
		}

		var msg map[string]interface{}
		if err := json.Unmarshal(message, &msg); err != nil {
			logger.Error("Error decoding message", zap.Error(err))
			continue
		}

		switch msg["type"] {
		case "chatMessage":
			c.handleChatMessage(msg, hub, logger)
		default:
			logger.Info("Received unknown message type", zap.Any("message", msg))
		}
	}
}

// handleChatMessage はロビー内チャットを同じクイズの参加者へ中継します。
func (c *Client) handleChatMessage(msg map[string]interface{}, hub *Hub, logger *zap.Logger) {
	chatMessage, ok := msg["message"].(string)
	if !ok {
		return
	}

	timestamp := time.Now().Format(time.RFC3339)
	logger.Info("Received chat message",
		zap.String("message", chatMessage),
		zap.Uint("from", c.UserID),
		zap.String("timestamp", timestamp),
	)

	hub.broadcast(c.QuizID, map[string]interface{}{
		"type":      "chatMessage",
		"message":   chatMessage,
		"from":      c.UserID,
		"timestamp": timestamp,
	}, logger)
}

// pingLoop はPing/Pongで接続の生存を監視するゴルーチンです。
func (c *Client) pingLoop(hub *Hub, logger *zap.Logger) {
	defer func() {
		c.Conn.Close()
		hub.remove(c)
		logger.Info("Client removed", zap.Uint("UserID", c.UserID))
	}()

	// Pongメッセージを受信したら読み取りデッドラインを更新
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		c.writeMu.Lock()
		err := c.Conn.WriteMessage(websocket.PingMessage, nil)
		c.writeMu.Unlock()
		if err != nil {
			logger.Error("Error sending ping", zap.Error(err))
			return
		}
	}
}

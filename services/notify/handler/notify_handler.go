package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"friender/pkg/helper"
	"friender/pkg/logger"
	"friender/pkg/types/sock"
	"friender/services/notify/service"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

const (
	writeWait    = 10 * time.Second
	pongWait     = 15 * time.Second
	pingInterval = 5 * time.Second
)

// WebSocket 업그레이더 설정
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type NotifyHandler struct {
	hub *service.Hub
}

func NewNotifyHandler(hub *service.Hub) *NotifyHandler {
	return &NotifyHandler{hub: hub}
}

func (h *NotifyHandler) HandleMatchSocket(c echo.Context) error {
	// X-User-ID 헤더 확인 및 변환
	userID, err := helper.UserIDFromHeader(c.Request())
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
	}

	// WebSocket으로 업그레이드
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("❌ WebSocket 업그레이드 실패")
		return nil
	}
	defer conn.Close()

	client := service.NewClient(userID)
	h.hub.Register(client)
	defer h.hub.Unregister(client)

	done := make(chan struct{})
	go func() {
		defer close(done)
		writePump(conn, client)
	}()

	readPump(conn, userID)

	// reader ended: close Send so the writer exits too
	h.hub.Unregister(client)
	<-done
	return nil
}

// readPump keeps the read deadline alive on every client message. Clients
// answer our ping with a {"kind":"pong"} message.
func readPump(conn *websocket.Conn, userID uint) {
	conn.SetReadDeadline(time.Now().Add(pongWait))
	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Logger.Warn().Err(err).Uint("user_id", userID).Msg("⚠️ Unexpected WebSocket close error")
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(pongWait))

		var wsMsg sock.WebSocketMessage
		if err := json.Unmarshal(msg, &wsMsg); err != nil {
			logger.Logger.Debug().Err(err).Uint("user_id", userID).Msg("메시지 파싱 실패")
			continue
		}
		if wsMsg.Kind != sock.MessageKindPong {
			logger.Logger.Debug().Str("kind", wsMsg.Kind).Uint("user_id", userID).Msg("Ignoring client message")
		}
	}
}

// writePump is the only goroutine writing to conn.
func writePump(conn *websocket.Conn, client *service.Client) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()

	for {
		select {
		case msg, ok := <-client.Send:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				logger.Logger.Error().Err(err).Uint("user_id", client.UserID).Msg("❌ 메시지 전송 실패")
				conn.Close()
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(sock.WebSocketMessage{Kind: sock.MessageKindPing}); err != nil {
				logger.Logger.Error().Err(err).Uint("user_id", client.UserID).Msg("❌ Ping 전송 실패")
				conn.Close()
				return
			}
		}
	}
}

func (h *NotifyHandler) HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

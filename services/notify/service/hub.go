package service

import (
	"encoding/json"
	"sync"

	"friender/pkg/logger"
	eventtypes "friender/pkg/types/eventtype"
	"friender/pkg/types/sock"
)

const sendBufferSize = 16

// Client is one websocket connection. Send is drained by the connection's
// writer goroutine and closed exactly once.
type Client struct {
	UserID uint
	Send   chan sock.WebSocketMessage

	mu     sync.Mutex
	closed bool
}

func NewClient(userID uint) *Client {
	return &Client{UserID: userID, Send: make(chan sock.WebSocketMessage, sendBufferSize)}
}

// trySend never blocks; a full buffer drops the message.
func (c *Client) trySend(msg sock.WebSocketMessage) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.Send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.Send)
	}
}

// Hub keeps at most one live connection per user.
type Hub struct {
	clients sync.Map // key: userID, value: *Client
}

func NewHub() *Hub {
	return &Hub{}
}

// Register replaces and closes any older connection of the same user.
func (h *Hub) Register(c *Client) {
	if old, loaded := h.clients.Swap(c.UserID, c); loaded {
		old.(*Client).Close()
	}
	logger.Logger.Info().Uint("user_id", c.UserID).Msg("✅ WebSocket 연결")
}

// Unregister removes c only if it is still the registered connection.
func (h *Hub) Unregister(c *Client) {
	h.clients.CompareAndDelete(c.UserID, c)
	c.Close()
	logger.Logger.Info().Uint("user_id", c.UserID).Msg("📴 WebSocket 연결 해제")
}

func (h *Hub) Send(userID uint, msg sock.WebSocketMessage) bool {
	v, ok := h.clients.Load(userID)
	if !ok {
		return false
	}
	return v.(*Client).trySend(msg)
}

func (h *Hub) Connected(userID uint) bool {
	_, ok := h.clients.Load(userID)
	return ok
}

// NotifyMatch pushes the match to both users and returns how many got it.
func (h *Hub) NotifyMatch(event eventtypes.MatchEvent) int {
	payload, err := json.Marshal(sock.MatchNotification{MatchID: event.MatchID, UserIDs: event.UserIDs})
	if err != nil {
		logger.Logger.Error().Err(err).Msg("❌ Failed to marshal match notification")
		return 0
	}
	msg := sock.WebSocketMessage{Kind: sock.MessageKindMatch, Payload: payload}

	delivered := 0
	for _, id := range event.UserIDs {
		if h.Send(id, msg) {
			delivered++
			continue
		}
		logger.Logger.Debug().Uint("user_id", id).Str("match_id", event.MatchID).Msg("User not connected, match notification skipped")
	}
	return delivered
}

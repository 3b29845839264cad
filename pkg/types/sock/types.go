package sock

import "encoding/json"

const (
	MessageKindPing  = "ping"
	MessageKindPong  = "pong"
	MessageKindMatch = "match"
)

type WebSocketMessage struct {
	Kind    string          `json:"kind"`
	Payload json.RawMessage `json:"payload"`
}

// MatchNotification is pushed to both users of a new match.
type MatchNotification struct {
	MatchID string `json:"matchId"`
	UserIDs []uint `json:"userIds"`
}

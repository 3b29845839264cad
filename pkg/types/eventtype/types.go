package eventtypes

import (
	"encoding/json"
	"time"
)

type EventPayload struct {
	EventType string          `json:"event_type"`
	Data      json.RawMessage `json:"data"`
}

// Event Types
const (
	EventTypeUserCreated  = "user.created"
	EventTypeMatchCreated = "match.created"
	EventTypeLog          = "log"
)

type UserCreatedEvent struct {
	UserID   uint `json:"user_id"`
	Location int  `json:"location"`
	Radius   int  `json:"radius"`
}

type MatchEvent struct {
	MatchID   string    `json:"match_id" bson:"match_id"`
	UserIDs   []uint    `json:"user_ids" bson:"user_ids"`
	MatchedAt time.Time `json:"matched_at" bson:"matched_at"`
}

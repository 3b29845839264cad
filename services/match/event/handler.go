package event

import (
	"context"
	"encoding/json"
	"time"

	"friender/pkg/logger"
	eventtypes "friender/pkg/types/eventtype"
)

type UserIndexer interface {
	IndexUser(ctx context.Context, userID uint, location int) error
}

type EventHandler struct {
	indexer UserIndexer
}

func NewEventHandler(indexer UserIndexer) *EventHandler {
	return &EventHandler{indexer: indexer}
}

// HandleUserCreated puts a freshly signed up user into the geo index.
func (h *EventHandler) HandleUserCreated(body json.RawMessage) {
	var eventData eventtypes.UserCreatedEvent
	if err := json.Unmarshal(body, &eventData); err != nil {
		logger.Logger.Error().Err(err).Msg("❌ Failed to unmarshal user created event")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := h.indexer.IndexUser(ctx, eventData.UserID, eventData.Location); err != nil {
		logger.Logger.Error().Err(err).Uint("user_id", eventData.UserID).Msg("❌ Failed to index new user")
		return
	}
	logger.Logger.Debug().Uint("user_id", eventData.UserID).Int("location", eventData.Location).Msg("📍 User indexed")
}

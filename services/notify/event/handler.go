package event

import (
	"encoding/json"

	"friender/pkg/logger"
	eventtypes "friender/pkg/types/eventtype"
)

type MatchNotifier interface {
	NotifyMatch(event eventtypes.MatchEvent) int
}

type EventHandler struct {
	notifier MatchNotifier
}

func NewEventHandler(notifier MatchNotifier) *EventHandler {
	return &EventHandler{notifier: notifier}
}

func (h *EventHandler) HandleMatchCreated(body json.RawMessage) {
	var eventData eventtypes.MatchEvent
	if err := json.Unmarshal(body, &eventData); err != nil {
		logger.Logger.Error().Err(err).Msg("❌ Failed to unmarshal match created event")
		return
	}

	delivered := h.notifier.NotifyMatch(eventData)
	logger.Logger.Info().
		Str("match_id", eventData.MatchID).
		Int("delivered", delivered).
		Msg("🎯 Match notification processed")
}

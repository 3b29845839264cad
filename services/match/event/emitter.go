package event

import (
	"encoding/json"

	"friender/pkg/helper"
	"friender/pkg/logger"
	"friender/pkg/mq"
	eventtypes "friender/pkg/types/eventtype"
)

// MessagePublisher is satisfied by *mq.RabbitMQ.
type MessagePublisher interface {
	PublishMessage(exchange, routingKey string, body []byte) error
}

type Emitter struct {
	mqClient MessagePublisher
}

func NewEmitter(mqClient MessagePublisher) *Emitter {
	return &Emitter{mqClient: mqClient}
}

func (e *Emitter) PublishMatchEvent(event eventtypes.MatchEvent) error {
	payload := eventtypes.EventPayload{
		EventType: eventtypes.EventTypeMatchCreated,
		Data:      helper.ToJSON(event),
	}

	eventBytes, err := json.Marshal(payload)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("❌ Failed to marshal match created event")
		return err
	}

	err = e.mqClient.PublishMessage(
		mq.ExchangeMatchEvents,    // Exchange Name (Topic 타입)
		mq.RoutingKeyMatchCreated, // Routing Key
		eventBytes,
	)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("❌ Failed to publish match created event")
		return err
	}

	logger.Logger.Info().Str("match_id", event.MatchID).Msg("Match created event published")
	return nil
}

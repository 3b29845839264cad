package event

import (
	"encoding/json"

	"friender/pkg/helper"
	"friender/pkg/logger"
	"friender/pkg/mq"
	eventtypes "friender/pkg/types/eventtype"
)

type MessagePublisher interface {
	PublishMessage(exchange, routingKey string, body []byte) error
}

type Emitter struct {
	mqClient MessagePublisher
}

func NewEmitter(mqClient MessagePublisher) *Emitter {
	return &Emitter{mqClient: mqClient}
}

// DeclareExchanges creates the exchanges the auth service publishes to.
func DeclareExchanges(mqClient *mq.RabbitMQ) error {
	if err := mqClient.DeclareExchange(mq.ExchangeUserEvents, mq.ExchangeTypeTopic); err != nil {
		return err
	}
	return mqClient.DeclareExchange(mq.ExchangeLog, mq.ExchangeTypeFanout)
}

func (e *Emitter) PublishUserCreated(event eventtypes.UserCreatedEvent) error {
	payload := eventtypes.EventPayload{
		EventType: eventtypes.EventTypeUserCreated,
		Data:      helper.ToJSON(event),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("❌ Failed to marshal user created event")
		return err
	}

	if err := e.mqClient.PublishMessage(mq.ExchangeUserEvents, mq.RoutingKeyUserCreated, body); err != nil {
		logger.Logger.Error().Err(err).Msg("❌ Failed to publish user created event")
		return err
	}
	return nil
}

package event

import (
	"friender/pkg/logger"
	"friender/pkg/mq"
	eventtypes "friender/pkg/types/eventtype"
)

type Consumer struct {
	mqClient     *mq.RabbitMQ
	eventHandler *EventHandler
}

func NewConsumer(mqClient *mq.RabbitMQ, indexer UserIndexer) *Consumer {
	return &Consumer{
		mqClient:     mqClient,
		eventHandler: NewEventHandler(indexer),
	}
}

// DeclareExchanges sets up both exchanges the match service touches.
func DeclareExchanges(mqClient *mq.RabbitMQ) error {
	if err := mqClient.DeclareExchange(mq.ExchangeUserEvents, mq.ExchangeTypeTopic); err != nil {
		return err
	}
	if err := mqClient.DeclareExchange(mq.ExchangeMatchEvents, mq.ExchangeTypeTopic); err != nil {
		return err
	}
	return mqClient.DeclareExchange(mq.ExchangeLog, mq.ExchangeTypeFanout)
}

func (c *Consumer) StartListening() error {
	// Queue 생성 및 바인딩
	queue, err := c.mqClient.DeclareQueue(mq.QueueMatchUser, mq.ExchangeUserEvents, []string{mq.RoutingKeyUserCreated})
	if err != nil {
		logger.Logger.Error().Err(err).Str("queue", mq.QueueMatchUser).Msg("❌ Failed to declare queue")
		return err
	}

	handlers := mq.EventHandlerMap{
		eventtypes.EventTypeUserCreated: c.eventHandler.HandleUserCreated,
	}
	if err := c.mqClient.ConsumeMessages(queue.Name, handlers); err != nil {
		return err
	}

	logger.Logger.Info().Msg("✅ RabbitMQ Consumer Listening...")
	return nil
}

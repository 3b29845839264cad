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

func NewConsumer(mqClient *mq.RabbitMQ, notifier MatchNotifier) *Consumer {
	return &Consumer{
		mqClient:     mqClient,
		eventHandler: NewEventHandler(notifier),
	}
}

func (c *Consumer) StartListening() error {
	// Exchange 및 Queue 설정
	if err := c.mqClient.DeclareExchange(mq.ExchangeMatchEvents, mq.ExchangeTypeTopic); err != nil {
		logger.Logger.Error().Err(err).Str("exchange", mq.ExchangeMatchEvents).Msg("❌ Failed to declare exchange")
		return err
	}

	queue, err := c.mqClient.DeclareQueue(mq.QueueNotifyMatch, mq.ExchangeMatchEvents, []string{mq.RoutingKeyMatchCreated})
	if err != nil {
		logger.Logger.Error().Err(err).Str("queue", mq.QueueNotifyMatch).Msg("❌ Failed to declare queue")
		return err
	}

	// 이벤트 핸들러 등록
	handlers := mq.EventHandlerMap{
		eventtypes.EventTypeMatchCreated: c.eventHandler.HandleMatchCreated,
	}
	if err := c.mqClient.ConsumeMessages(queue.Name, handlers); err != nil {
		return err
	}

	logger.Logger.Info().Msg("✅ RabbitMQ Consumer Listening...")
	return nil
}

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

func NewConsumer(mqClient *mq.RabbitMQ, logRepo LogStore) *Consumer {
	return &Consumer{
		mqClient:     mqClient,
		eventHandler: NewEventHandler(logRepo),
	}
}

func (c *Consumer) StartListening() error {
	// Exchange 설정
	if err := c.mqClient.DeclareExchange(mq.ExchangeLog, mq.ExchangeTypeFanout); err != nil {
		logger.Logger.Error().Err(err).Str("exchange", mq.ExchangeLog).Msg("❌ Failed to declare exchange")
		return err
	}

	// Queue 생성 및 바인딩
	queue, err := c.mqClient.DeclareQueue(mq.QueueLog, mq.ExchangeLog, nil)
	if err != nil {
		logger.Logger.Error().Err(err).Str("queue", mq.QueueLog).Msg("❌ Failed to declare queue")
		return err
	}

	// 이벤트 핸들러 등록
	handlers := mq.EventHandlerMap{
		eventtypes.EventTypeLog: c.eventHandler.HandleLogEvent,
	}
	if err := c.mqClient.ConsumeMessages(queue.Name, handlers); err != nil {
		return err
	}

	logger.Logger.Info().Msg("✅ Logger Service Consumer Listening...")
	return nil
}

package mq

import (
	"encoding/json"
	"log"

	eventtypes "friender/pkg/types/eventtype"

	amqp "github.com/rabbitmq/amqp091-go"
)

// EventHandlerMap routes a consumed EventPayload to its handler by EventType.
type EventHandlerMap map[string]func(json.RawMessage)

type RabbitMQ struct {
	Conn    *amqp.Connection
	channel *amqp.Channel
}

// ConnectToRabbitMQ: RabbitMQ 연결 설정
func ConnectToRabbitMQ(url string) (*RabbitMQ, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Printf("❌ Failed to connect to RabbitMQ: %v", err)
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("❌ Failed to open RabbitMQ channel: %v", err)
		conn.Close()
		return nil, err
	}

	return &RabbitMQ{Conn: conn, channel: ch}, nil
}

func (mq *RabbitMQ) Close() error {
	if mq.channel != nil {
		mq.channel.Close()
	}
	return mq.Conn.Close()
}

// DeclareExchange: Exchange 생성
func (mq *RabbitMQ) DeclareExchange(name, exchangeType string) error {
	return mq.channel.ExchangeDeclare(
		name,         // exchange name
		exchangeType, // type: topic or fanout
		true,         // durable
		false,        // autoDelete
		false,        // internal
		false,        // noWait
		nil,          // arguments
	)
}

// DeclareQueue declares a durable queue and binds it once per routing key.
func (mq *RabbitMQ) DeclareQueue(queueName, exchangeName string, routingKeys []string) (amqp.Queue, error) {
	queue, err := mq.channel.QueueDeclare(
		queueName, // queue name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // arguments
	)
	if err != nil {
		return queue, err
	}

	if len(routingKeys) == 0 {
		routingKeys = []string{""}
	}
	for _, key := range routingKeys {
		err = mq.channel.QueueBind(
			queue.Name,   // queue name
			key,          // routing key
			exchangeName, // exchange name
			false,        // noWait
			nil,          // arguments
		)
		if err != nil {
			return queue, err
		}
	}

	return queue, nil
}

// PublishMessage: 메시지 발행
func (mq *RabbitMQ) PublishMessage(exchange, routingKey string, body []byte) error {
	return mq.channel.Publish(
		exchange,   // exchange name
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType: "application/json",
			Body:        body,
		},
	)
}

// ConsumeMessages starts a goroutine that dispatches deliveries to handlers.
func (mq *RabbitMQ) ConsumeMessages(queueName string, handlers EventHandlerMap) error {
	msgs, err := mq.channel.Consume(
		queueName, // queue name
		"",        // consumer
		true,      // autoAck
		false,     // exclusive
		false,     // noLocal
		false,     // noWait
		nil,       // arguments
	)
	if err != nil {
		return err
	}

	go func() {
		for msg := range msgs {
			Dispatch(msg.Body, handlers)
		}
	}()
	return nil
}

// Dispatch decodes one delivery body and invokes the matching handler.
func Dispatch(body []byte, handlers EventHandlerMap) bool {
	var payload eventtypes.EventPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		log.Printf("❌ Failed to unmarshal event payload: %v", err)
		return false
	}

	handler, ok := handlers[payload.EventType]
	if !ok {
		log.Printf("⚠️ No handler for event type %s", payload.EventType)
		return false
	}

	handler(payload.Data)
	return true
}

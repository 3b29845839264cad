package main

import (
	"friender/pkg/config"
	"friender/pkg/logger"
	"friender/pkg/mq"
	"friender/services/notify/event"
	"friender/services/notify/handler"
	"friender/services/notify/service"
	"friender/services/notify/transport"
)

func main() {
	cfg := config.LoadConfigOrPanic()
	logger.InitLogger(logger.ServiceTypeNotify, cfg.Log.Level)

	mqClient, err := mq.ConnectToRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("RabbitMQ 연결 실패")
	}
	defer mqClient.Close()

	if err := mqClient.DeclareExchange(mq.ExchangeLog, mq.ExchangeTypeFanout); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to declare log exchange")
	}
	logger.AttachPublisher(mqClient)

	hub := service.NewHub()

	consumer := event.NewConsumer(mqClient, hub)
	if err := consumer.StartListening(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start consumer")
	}

	e := transport.NewRouter(handler.NewNotifyHandler(hub), cfg.Auth.JWTSecret)

	logger.Logger.Info().Str("addr", cfg.App.Addr()).Msg("🚀 Notify Service Started")
	if err := e.Start(cfg.App.Addr()); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Notify Service stopped")
	}
}

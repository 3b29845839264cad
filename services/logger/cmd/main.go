package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"friender/pkg/config"
	"friender/pkg/db"
	"friender/pkg/logger"
	"friender/pkg/mq"
	"friender/services/logger/event"
	"friender/services/logger/repo"
)

func main() {
	cfg := config.LoadConfigOrPanic()
	logger.InitLogger(logger.ServiceTypeLogger, cfg.Log.Level)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	mongoClient, err := db.ConnectMongo(ctx, cfg.Mongo)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("MongoDB 연결 실패")
	}
	defer mongoClient.Disconnect(context.Background())

	mqClient, err := mq.ConnectToRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("RabbitMQ 연결 실패")
	}
	defer mqClient.Close()

	logRepo := repo.NewLogRepository(mongoClient, cfg.Mongo.Database)
	if err := logRepo.EnsureIndexes(ctx); err != nil {
		logger.Logger.Warn().Err(err).Msg("⚠️ Failed to create log indexes")
	}

	eventConsumer := event.NewConsumer(mqClient, logRepo)
	if err := eventConsumer.StartListening(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start consumer")
	}

	logger.Logger.Info().Msg("🚀 Logger Service Started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
}

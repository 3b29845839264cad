package db

import (
	"context"
	"time"

	"friender/pkg/config"
	"friender/pkg/logger"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func ConnectMongo(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(cfg.URI())
	if cfg.User != "" {
		clientOptions.SetAuth(options.Credential{
			Username: cfg.User,
			Password: cfg.Password,
		})
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("❌ MongoDB 연결 실패")
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.Logger.Error().Err(err).Msg("❌ MongoDB ping 실패")
		return nil, err
	}

	logger.Logger.Info().Msg("✅ MongoDB 연결 성공!")
	return client, nil
}

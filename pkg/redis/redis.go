package redis

import (
	"context"

	"friender/pkg/config"
	"friender/pkg/logger"

	"github.com/go-redis/redis/v8"
)

type RedisClient struct {
	Client *redis.Client
}

// Redis 클라이언트 생성
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*RedisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 연결 확인
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Logger.Error().Err(err).Str("addr", cfg.Addr()).Msg("❌ Redis 연결 실패")
		return nil, err
	}

	logger.Logger.Info().Msg("✅ Redis 연결 성공!")
	return &RedisClient{Client: rdb}, nil
}

func (r *RedisClient) Close() error {
	return r.Client.Close()
}

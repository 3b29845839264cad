package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"friender/pkg/config"
	"friender/pkg/db"
	"friender/pkg/geo"
	"friender/pkg/logger"
	"friender/pkg/mq"
	"friender/pkg/redis"
	"friender/services/match/event"
	"friender/services/match/handler"
	"friender/services/match/repository"
	"friender/services/match/service"
	"friender/services/match/transport"
)

func main() {
	cfg := config.LoadConfigOrPanic()
	logger.InitLogger(logger.ServiceTypeMatch, cfg.Log.Level)

	dbConn, err := db.ConnectMySQL(cfg.MySQL)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("MySQL 연결 실패")
	}

	mqClient, err := mq.ConnectToRabbitMQ(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("RabbitMQ 연결 실패")
	}
	defer mqClient.Close()

	if err := event.DeclareExchanges(mqClient); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to declare exchanges")
	}
	logger.AttachPublisher(mqClient)

	// 의존성 주입 (DI)
	userRepo := repository.NewUserRepository(dbConn)
	if err := userRepo.InitDB(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to User DB Migration")
	}

	table, err := geo.Load(cfg.Geo.PostalFile)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to load postal table")
	}
	logger.Logger.Info().Int("codes", table.Len()).Msg("✅ Postal table loaded")
	calc, err := geo.NewCachedCalculator(table, cfg.Geo.CacheSize)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to create distance calculator")
	}

	var index service.LocationIndex
	redisClient, err := redis.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		// redis 없이도 전체 스캔으로 동작
		logger.Logger.Warn().Err(err).Msg("⚠️ Redis unavailable, candidate scans use the full user table")
	} else {
		defer redisClient.Close()
		index = repository.NewGeoIndex(redisClient, table)
	}

	emitter := event.NewEmitter(mqClient)
	matchService := service.NewMatchService(userRepo, calc, table, index, emitter)
	matchHandler := handler.NewMatchHandler(matchService)

	if err := matchService.RebuildIndex(context.Background()); err != nil {
		logger.Logger.Warn().Err(err).Msg("⚠️ Failed to rebuild geo index")
	}

	consumer := event.NewConsumer(mqClient, matchService)
	if err := consumer.StartListening(); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to start consumer")
	}

	srv := &http.Server{
		Addr:              cfg.App.Addr(),
		Handler:           transport.NewRouter(matchHandler, cfg.Auth.JWTSecret),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Logger.Info().Str("addr", srv.Addr).Msg("🚀 Match Service Started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal().Err(err).Msg("Match Service stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("❌ Graceful shutdown failed")
	}
}

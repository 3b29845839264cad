package main

import (
	"time"

	"friender/pkg/config"
	"friender/pkg/db"
	"friender/pkg/geo"
	"friender/pkg/logger"
	"friender/pkg/mq"
	"friender/services/auth/event"
	"friender/services/auth/handler"
	"friender/services/auth/repository"
	"friender/services/auth/service"
	"friender/services/auth/transport"

	"github.com/labstack/echo/v4"
)

func main() {
	cfg := config.LoadConfigOrPanic()
	logger.InitLogger(logger.ServiceTypeAuth, cfg.Log.Level)

	dbConn, err := db.ConnectMySQL(cfg.MySQL)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("MySQL 연결 실패")
	}
	if err := db.Migrate(dbConn); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to User DB Migration")
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

	table, err := geo.Load(cfg.Geo.PostalFile)
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to load postal table")
	}

	// 의존성 주입 (DI)
	authRepo := repository.NewAuthRepository(dbConn)
	authService := service.NewAuthService(
		authRepo,
		table,
		event.NewEmitter(mqClient),
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTL)*time.Second,
	)
	authHandler := handler.NewAuthHandler(authService)

	e := echo.New()
	e.HideBanner = true

	transport.RegisterAuthRoutes(e, authHandler)

	logger.Logger.Info().Str("addr", cfg.App.Addr()).Msg("🚀 Auth Service Started")
	if err := e.Start(cfg.App.Addr()); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Auth Service stopped")
	}
}

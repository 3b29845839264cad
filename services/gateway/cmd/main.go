package main

import (
	"friender/pkg/config"
	"friender/pkg/logger"
	"friender/services/gateway/handler"
	"friender/services/gateway/transport"
)

func main() {
	cfg := config.LoadConfigOrPanic()
	logger.InitLogger(logger.ServiceTypeGateway, cfg.Log.Level)

	gatewayHandler, err := handler.NewGatewayHandler(handler.Upstreams{
		Auth:   cfg.Gateway.AuthURL,
		Match:  cfg.Gateway.MatchURL,
		Notify: cfg.Gateway.NotifyURL,
	})
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Invalid gateway upstreams")
	}

	e := transport.NewRouter(gatewayHandler)

	logger.Logger.Info().Str("addr", cfg.App.Addr()).Msg("🚀 Gateway Service Started")
	if err := e.Start(cfg.App.Addr()); err != nil {
		logger.Logger.Fatal().Err(err).Msg("Gateway Service stopped")
	}
}

package transport

import (
	"friender/services/gateway/handler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func NewRouter(gatewayHandler *handler.GatewayHandler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	e.GET("/health", gatewayHandler.HealthHandler)
	gatewayHandler.Register(e)

	return e
}

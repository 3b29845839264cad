package transport

import (
	"friender/pkg/middleware"
	"friender/services/notify/handler"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
)

func NewRouter(notifyHandler *handler.NotifyHandler, jwtSecret string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.Recover())

	// CORS 설정
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.GET("/health", notifyHandler.HealthHandler)

	// 웹소켓 매칭 알림 엔드포인트
	e.GET("/ws/match", notifyHandler.HandleMatchSocket, middleware.EchoJWTAuth(jwtSecret))

	return e
}

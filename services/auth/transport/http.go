package transport

import (
	"friender/services/auth/handler"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RegisterAuthRoutes 설정
func RegisterAuthRoutes(e *echo.Echo, authHandler *handler.AuthHandler) {
	e.Use(middleware.Recover())

	// CORS 설정
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"https://*", "http://*"},
		AllowMethods:     []string{echo.GET, echo.POST, echo.PUT, echo.PATCH, echo.DELETE, echo.OPTIONS},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposeHeaders:    []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	e.GET("/health", authHandler.HealthHandler)

	e.POST("/signup", authHandler.SignupHandler)
	e.POST("/login", authHandler.LoginHandler)
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// EchoJWTAuth: 토큰 검증 후 X-User-ID 헤더에 사용자 ID 저장
func EchoJWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := authenticate(secret, c.Request()); err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			}
			return next(c)
		}
	}
}

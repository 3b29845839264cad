package handler

import (
	"fmt"
	"net/http"
	"net/url"

	"friender/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Upstreams struct {
	Auth   string
	Match  string
	Notify string
}

type GatewayHandler struct {
	auth   echo.MiddlewareFunc
	match  echo.MiddlewareFunc
	notify echo.MiddlewareFunc
}

func NewGatewayHandler(upstreams Upstreams) (*GatewayHandler, error) {
	auth, err := proxyTo(upstreams.Auth)
	if err != nil {
		return nil, err
	}
	match, err := proxyTo(upstreams.Match)
	if err != nil {
		return nil, err
	}
	notify, err := proxyTo(upstreams.Notify)
	if err != nil {
		return nil, err
	}
	return &GatewayHandler{auth: auth, match: match, notify: notify}, nil
}

// proxyTo forwards the request unchanged, websocket upgrades included.
func proxyTo(rawURL string) (echo.MiddlewareFunc, error) {
	target, err := url.Parse(rawURL)
	if err != nil || target.Host == "" {
		return nil, fmt.Errorf("invalid upstream url %q", rawURL)
	}
	return middleware.ProxyWithConfig(middleware.ProxyConfig{
		Balancer: middleware.NewRoundRobinBalancer([]*middleware.ProxyTarget{{URL: target}}),
		ErrorHandler: func(c echo.Context, err error) error {
			logger.Logger.Error().Err(err).Str("upstream", rawURL).Str("path", c.Request().URL.Path).Msg("❌ Proxy request failed")
			return c.JSON(http.StatusBadGateway, map[string]string{"error": "upstream_unavailable"})
		},
	}), nil
}

// 프록시 미들웨어가 응답하므로 핸들러는 호출되지 않는다
func unreachable(c echo.Context) error {
	return c.JSON(http.StatusNotFound, map[string]string{"error": "not_found"})
}

func (h *GatewayHandler) Register(e *echo.Echo) {
	e.POST("/signup", unreachable, h.auth)
	e.POST("/login", unreachable, h.auth)

	e.Any("/users/*", unreachable, h.match)

	e.GET("/ws/*", unreachable, h.notify)
}

func (h *GatewayHandler) HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

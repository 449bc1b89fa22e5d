package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"exchange-chat-service/pkg/logger"
)

type Router struct {
	handler *Handler
	log     *logger.Logger
}

func NewRouter(handler *Handler, log *logger.Logger) *Router {
	return &Router{
		handler: handler,
		log:     log,
	}
}

func (r *Router) Setup() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())

	e.GET("/ws", r.handler.HandleWebSocket)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return e
}

package server

import (
	"net/http"

	"orderdesk/internal/handler"
	"orderdesk/internal/metrics"

	"github.com/labstack/echo/v4"
)

type Handlers struct {
	Order      *handler.OrderHandler
	AdminOrder *handler.AdminOrderHandler
	Auth       *handler.AuthHandler
}

func RegisterRoutes(e *echo.Echo, h Handlers, jwtSecret string, m *metrics.Metrics) {
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, handler.SuccessResponse{Message: "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	h.Order.RegisterRoutes(e)
	h.Auth.RegisterRoutes(e)
	h.AdminOrder.RegisterRoutes(e, jwtSecret)
}

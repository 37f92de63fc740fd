package handler

import (
	"net/http"
	"strings"

	"orderdesk/internal/metrics"
	"orderdesk/internal/middleware"
	"orderdesk/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminOrderHandler struct {
	uc      *usecase.AdminOrderUsecase
	metrics *metrics.Metrics
}

func NewAdminOrderHandler(uc *usecase.AdminOrderUsecase, m *metrics.Metrics) *AdminOrderHandler {
	return &AdminOrderHandler{uc: uc, metrics: m}
}

type OrderStatusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *AdminOrderHandler) RegisterRoutes(e *echo.Echo, jwtSecret string) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(jwtSecret))

	admin.GET("/orders", h.list)
	admin.PUT("/orders/:id/status", h.updateStatus)
	admin.DELETE("/orders/:id", h.delete)
}

// ?mode=all|name|id|status&q=...
func (h *AdminOrderHandler) list(c echo.Context) error {
	out, err := h.uc.List(c.Request().Context(), usecase.AdminOrderListFilter{
		Mode:  c.QueryParam("mode"),
		Query: c.QueryParam("q"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *AdminOrderHandler) updateStatus(c echo.Context) error {
	orderID := c.Param("id")

	var req OrderStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.UpdateStatus(
		c.Request().Context(),
		orderID,
		usecase.AdminUpdateOrderStatusInput{Status: req.Status},
	); err != nil {
		return writeError(c, err)
	}

	h.metrics.StatusUpdated(strings.ToUpper(strings.TrimSpace(req.Status)))
	return c.JSON(http.StatusOK, SuccessResponse{Message: "updated"})
}

func (h *AdminOrderHandler) delete(c echo.Context) error {
	if err := h.uc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return writeError(c, err)
	}

	h.metrics.OrderDeleted()
	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}

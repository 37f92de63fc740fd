package handler

import (
	"net/http"

	"orderdesk/internal/metrics"
	"orderdesk/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /orders の公開API（ログイン不要）
type OrderHandler struct {
	uc      *usecase.OrderUsecase
	metrics *metrics.Metrics
}

func NewOrderHandler(uc *usecase.OrderUsecase, m *metrics.Metrics) *OrderHandler {
	return &OrderHandler{uc: uc, metrics: m}
}

type LineItemRequest struct {
	ProductLink string  `json:"product_link"`
	Color       string  `json:"color"`
	Size        string  `json:"size"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

type QuoteRequest struct {
	Items []LineItemRequest `json:"items"`
}

type OrderCreateRequest struct {
	CustomerName    string            `json:"customer_name"`
	Phone           string            `json:"phone"`
	DeliveryMode    string            `json:"delivery_mode"`
	DeliveryAddress string            `json:"delivery_address"`
	Comment         string            `json:"comment"`
	Items           []LineItemRequest `json:"items"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/orders")

	g.POST("", h.create)
	g.POST("/quote", h.quote)
}

func toLineItemInputs(items []LineItemRequest) []usecase.LineItemInput {
	out := make([]usecase.LineItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, usecase.LineItemInput{
			ProductLink: it.ProductLink,
			Color:       it.Color,
			Size:        it.Size,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		})
	}
	return out
}

func (h *OrderHandler) quote(c echo.Context) error {
	var req QuoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Quote(c.Request().Context(), toLineItemInputs(req.Items))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) create(c echo.Context) error {
	var req OrderCreateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.PlaceOrder(c.Request().Context(), usecase.PlaceOrderInput{
		CustomerName:    req.CustomerName,
		Phone:           req.Phone,
		DeliveryMode:    req.DeliveryMode,
		DeliveryAddress: req.DeliveryAddress,
		Comment:         req.Comment,
		Items:           toLineItemInputs(req.Items),
	})
	if err != nil {
		return writeError(c, err)
	}

	h.metrics.OrderPlaced()
	return c.JSON(http.StatusCreated, out)
}

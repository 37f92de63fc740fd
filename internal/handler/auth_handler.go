package handler

import (
	"errors"
	"net/http"

	"orderdesk/internal/metrics"
	auth "orderdesk/internal/usecase/auth_usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthHandler struct {
	loginUC *auth.AdminLoginUsecase // 管理者ログインusecase
	metrics *metrics.Metrics
	log     *zap.Logger
}

// DIコンストラクタ
func NewAuthHandler(loginUC *auth.AdminLoginUsecase, m *metrics.Metrics, log *zap.Logger) *AuthHandler {
	return &AuthHandler{loginUC: loginUC, metrics: m, log: log}
}

// /admin/login のリクエストボディ。
type loginRequest struct {
	Password string `json:"password"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/admin/login", h.login)
}

func (h *AuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.loginUC.Execute(c.Request().Context(), auth.LoginInput{Password: req.Password})
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.metrics.LoginAttempt("invalid")
			return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid credentials"})
		}
		h.metrics.LoginAttempt("error")
		h.log.Error("admin login failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}

	h.metrics.LoginAttempt("success")
	return c.JSON(http.StatusOK, out)
}

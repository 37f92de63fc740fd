package usecase

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"orderdesk/internal/domain/model"
	repo "orderdesk/internal/repository"

	"go.uber.org/zap"
)

// 管理画面の検索モード
type FilterMode string

const (
	FilterAll    FilterMode = "all"
	FilterName   FilterMode = "name"
	FilterID     FilterMode = "id"
	FilterStatus FilterMode = "status"
)

type AdminOrderListFilter struct {
	Mode  string
	Query string
}

type AdminUpdateOrderStatusInput struct {
	Status string
}

type AdminOrderUsecase struct {
	orders repo.OrderRepository
	log    *zap.Logger
}

func NewAdminOrderUsecase(orders repo.OrderRepository, log *zap.Logger) *AdminOrderUsecase {
	return &AdminOrderUsecase{orders: orders, log: log}
}

// 注文一覧（モード別の絞り込み）
func (u *AdminOrderUsecase) List(ctx context.Context, f AdminOrderListFilter) ([]model.Order, error) {
	var (
		orders []model.Order
		err    error
	)

	switch FilterMode(strings.ToLower(strings.TrimSpace(f.Mode))) {
	case "", FilterAll:
		orders, err = u.orders.LoadAll(ctx)
	case FilterName:
		orders, err = u.orders.FindByNameSubstring(ctx, f.Query)
	case FilterID:
		orders, err = u.orders.FindByIDSubstring(ctx, f.Query)
	case FilterStatus:
		st, ok := model.ParseOrderStatus(f.Query)
		if !ok {
			return []model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
		orders, err = u.orders.FindByStatus(ctx, st)
	default:
		return []model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid mode")
	}

	if err != nil {
		u.log.Error("list orders failed", zap.String("mode", f.Mode), zap.Error(err))
		return []model.Order{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

// ステータス更新（どのステータスからどのステータスへも可）
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, orderID string, in AdminUpdateOrderStatusInput) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	st, ok := model.ParseOrderStatus(in.Status)
	if !ok {
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	if err := u.orders.UpdateStatus(ctx, orderID, st); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		u.log.Error("update order status failed", zap.String("order_id", orderID), zap.Error(err))
		return NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	u.log.Info("order status updated", zap.String("order_id", orderID), zap.String("status", string(st)))
	return nil
}

func (u *AdminOrderUsecase) Delete(ctx context.Context, orderID string) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.orders.Delete(ctx, orderID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		u.log.Error("delete order failed", zap.String("order_id", orderID), zap.Error(err))
		return NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	u.log.Info("order deleted", zap.String("order_id", orderID))
	return nil
}

package validator

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"orderdesk/internal/domain/model"
	"orderdesk/internal/usecase"
)

var (
	// 入力が不正
	ErrInvalidInput = errors.New("invalid input")
)

type orderValidator struct{}

// Usecaseは interface を依存注入
func NewOrderValidator() usecase.OrderValidator {
	return &orderValidator{}
}

// カート明細を検証
func (v *orderValidator) ValidateLineItem(ctx context.Context, in usecase.LineItemInput) error {
	// 必須チェック
	if strings.TrimSpace(in.ProductLink) == "" {
		return fmt.Errorf("%w: product_link is required", ErrInvalidInput)
	}
	if strings.TrimSpace(in.Color) == "" {
		return fmt.Errorf("%w: color is required", ErrInvalidInput)
	}

	if _, ok := model.ParseSize(in.Size); !ok {
		return fmt.Errorf("%w: invalid size", ErrInvalidInput)
	}

	// 価格は0以上（NaN/Infは不可）
	if math.IsNaN(in.UnitPrice) || math.IsInf(in.UnitPrice, 0) || in.UnitPrice < 0 {
		return fmt.Errorf("%w: unit_price must be >= 0", ErrInvalidInput)
	}

	if in.Quantity < 1 {
		return fmt.Errorf("%w: quantity must be >= 1", ErrInvalidInput)
	}

	return nil
}

// 注文確定の入力を検証（明細は ValidateLineItem 側）
func (v *orderValidator) ValidatePlaceOrder(ctx context.Context, in usecase.PlaceOrderInput) error {
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: cart is empty", ErrInvalidInput)
	}

	mode := model.DeliveryMode(strings.ToUpper(strings.TrimSpace(in.DeliveryMode)))
	if !mode.Valid() {
		return fmt.Errorf("%w: invalid delivery_mode", ErrInvalidInput)
	}

	// 名前・電話・住所は形式チェックしない
	return nil
}

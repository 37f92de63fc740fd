package usecase

import (
	"context"
	"time"
)

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// usecaseがValidatorInterfaceに依存する約束
type OrderValidator interface {
	ValidateLineItem(ctx context.Context, in LineItemInput) error
	ValidatePlaceOrder(ctx context.Context, in PlaceOrderInput) error
}

package usecase

import (
	"context"
	"net/http"
	"strings"

	"orderdesk/internal/domain/model"
	repo "orderdesk/internal/repository"

	"go.uber.org/zap"
)

// OrderUsecase は顧客側の注文受付。
type OrderUsecase struct {
	orders    repo.OrderRepository
	validator OrderValidator
	idGen     IDGenerator
	clock     Clock
	log       *zap.Logger
}

// DI
func NewOrderUsecase(
	orders repo.OrderRepository,
	validator OrderValidator,
	idGen IDGenerator,
	clock Clock,
	log *zap.Logger,
) *OrderUsecase {
	return &OrderUsecase{
		orders:    orders,
		validator: validator,
		idGen:     idGen,
		clock:     clock,
		log:       log,
	}
}

// カートに入れる1明細
type LineItemInput struct {
	ProductLink string
	Color       string
	Size        string
	UnitPrice   float64
	Quantity    int
}

type PlaceOrderInput struct {
	CustomerName    string
	Phone           string
	DeliveryMode    string
	DeliveryAddress string
	Comment         string
	Items           []LineItemInput
}

type QuoteOutput struct {
	Items []model.LineItem `json:"items"`
	Total float64          `json:"total"`
}

// BuildCart は入力明細を検証してIDを振り、カートにする。
func (u *OrderUsecase) BuildCart(ctx context.Context, items []LineItemInput) (model.Cart, error) {
	var cart model.Cart
	for _, in := range items {
		if in.Quantity == 0 {
			in.Quantity = 1
		}
		if err := u.validator.ValidateLineItem(ctx, in); err != nil {
			return model.Cart{}, NewHTTPError(http.StatusBadRequest, err.Error())
		}

		size, _ := model.ParseSize(in.Size)
		cart.Add(model.LineItem{
			ID:          u.idGen.NewID(),
			ProductLink: strings.TrimSpace(in.ProductLink),
			Color:       strings.TrimSpace(in.Color),
			Size:        size,
			UnitPrice:   in.UnitPrice,
			Quantity:    in.Quantity,
		})
	}
	return cart, nil
}

// Quote は保存せずに合計だけ返す（カート画面の表示用）。
func (u *OrderUsecase) Quote(ctx context.Context, items []LineItemInput) (QuoteOutput, error) {
	cart, err := u.BuildCart(ctx, items)
	if err != nil {
		return QuoteOutput{}, err
	}
	if cart.Items == nil {
		cart.Items = []model.LineItem{}
	}
	return QuoteOutput{Items: cart.Items, Total: cart.Total()}, nil
}

// PlaceOrder は注文を確定して保存する。
func (u *OrderUsecase) PlaceOrder(ctx context.Context, in PlaceOrderInput) (model.Order, error) {
	if err := u.validator.ValidatePlaceOrder(ctx, in); err != nil {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, err.Error())
	}

	cart, err := u.BuildCart(ctx, in.Items)
	if err != nil {
		return model.Order{}, err
	}
	if cart.IsEmpty() {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	mode := model.DeliveryMode(strings.ToUpper(strings.TrimSpace(in.DeliveryMode)))

	//合計はここで確定（以後再計算しない）
	order := model.NewOrder(u.idGen.NewID(), u.clock.Now(), model.NewOrderParams{
		CustomerName:    strings.TrimSpace(in.CustomerName),
		Phone:           strings.TrimSpace(in.Phone),
		DeliveryMode:    mode,
		DeliveryAddress: in.DeliveryAddress,
		Comment:         in.Comment,
	}, cart)

	if err := u.orders.Append(ctx, order); err != nil {
		u.log.Error("append order failed", zap.String("order_id", order.ID), zap.Error(err))
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "storage error")
	}

	u.log.Info("order placed",
		zap.String("order_id", order.ID),
		zap.Int("items", len(order.Items)),
		zap.Float64("total", order.Total),
	)
	return order, nil
}

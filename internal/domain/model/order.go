package model

import (
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// 表示順の全ステータス
var OrderStatuses = []OrderStatus{
	OrderStatusPreparing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPreparing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// 大文字小文字を問わずステータス名を解釈する
func ParseOrderStatus(s string) (OrderStatus, bool) {
	st := OrderStatus(strings.ToUpper(strings.TrimSpace(s)))
	return st, st.Valid()
}

type DeliveryMode string

const (
	DeliveryModeWithDelivery    DeliveryMode = "WITH_DELIVERY"
	DeliveryModeWithoutDelivery DeliveryMode = "WITHOUT_DELIVERY"
)

func (m DeliveryMode) Valid() bool {
	return m == DeliveryModeWithDelivery || m == DeliveryModeWithoutDelivery
}

// Order は顧客1回分の注文。
// Total は作成時に確定し、あとから再計算しない。
type Order struct {
	ID              string       `json:"id"`
	CustomerName    string       `json:"customer_name"`
	Phone           string       `json:"phone"`
	CreatedAt       time.Time    `json:"created_at"`
	Items           []LineItem   `json:"items"`
	Total           float64      `json:"total"`
	DeliveryMode    DeliveryMode `json:"delivery_mode"`
	DeliveryAddress string       `json:"delivery_address"`
	Comment         string       `json:"comment"`
	Status          OrderStatus  `json:"status"`
}

// 注文作成時の入力
type NewOrderParams struct {
	CustomerName    string
	Phone           string
	DeliveryMode    DeliveryMode
	DeliveryAddress string
	Comment         string
}

// NewOrder はカートをスナップショットして PREPARING の注文を作る。
func NewOrder(id string, now time.Time, p NewOrderParams, cart Cart) Order {
	items := make([]LineItem, len(cart.Items))
	copy(items, cart.Items)

	return Order{
		ID:              id,
		CustomerName:    p.CustomerName,
		Phone:           p.Phone,
		CreatedAt:       now,
		Items:           items,
		Total:           cart.Total(),
		DeliveryMode:    p.DeliveryMode,
		DeliveryAddress: p.DeliveryAddress,
		Comment:         p.Comment,
		Status:          OrderStatusPreparing,
	}
}

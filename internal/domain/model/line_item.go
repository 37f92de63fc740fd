package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

type Size string

const (
	SizeXS  Size = "XS"
	SizeS   Size = "S"
	SizeM   Size = "M"
	SizeL   Size = "L"
	SizeXL  Size = "XL"
	SizeXXL Size = "XXL"
)

var Sizes = []Size{SizeXS, SizeS, SizeM, SizeL, SizeXL, SizeXXL}

func (s Size) Valid() bool {
	for _, v := range Sizes {
		if s == v {
			return true
		}
	}
	return false
}

func ParseSize(s string) (Size, bool) {
	sz := Size(strings.ToUpper(strings.TrimSpace(s)))
	return sz, sz.Valid()
}

// 注文の明細（カート追加時点の値）
type LineItem struct {
	ID          string  `json:"id"`
	ProductLink string  `json:"product_link"`
	Color       string  `json:"color"`
	Size        Size    `json:"size"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
}

// 単価×数量（decimalで計算）
func (li LineItem) Subtotal() decimal.Decimal {
	return decimal.NewFromFloat(li.UnitPrice).Mul(decimal.NewFromInt(int64(li.Quantity)))
}

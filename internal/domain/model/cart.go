package model

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrCartIndexOutOfRange = errors.New("cart index out of range")

// Cart は未確定の明細。サーバーには保存せず、呼び出し側のセッションが持って毎回渡す。
type Cart struct {
	Items []LineItem `json:"items"`
}

func (c *Cart) Add(item LineItem) {
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	c.Items = append(c.Items, item)
}

// i番目を削除（残りの順序は維持）
func (c *Cart) Remove(i int) error {
	if i < 0 || i >= len(c.Items) {
		return ErrCartIndexOutOfRange
	}
	c.Items = append(c.Items[:i:i], c.Items[i+1:]...)
	return nil
}

func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// 合計金額。decimalで足してから float64 に戻す（0.1+0.2 の誤差を持ち込まない）
func (c Cart) Total() float64 {
	sum := decimal.Zero
	for _, it := range c.Items {
		sum = sum.Add(it.Subtotal())
	}
	return sum.InexactFloat64()
}

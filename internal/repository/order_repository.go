package repository

import (
	"context"
	"errors"

	"orderdesk/internal/domain/model"
)

// 指定IDの注文が無いことを統一
var ErrNotFound = errors.New("not found")

// OrderRepository は注文コレクション全体の保存・取得の約束。
// 変更系は毎回「全件読む→1件変える→全件書く」で、キャッシュは持たない。
type OrderRepository interface {
	//全件（保存順）。まだ保存先が無ければ空
	LoadAll(ctx context.Context) ([]model.Order, error)
	//全件を丸ごと置き換える
	SaveAll(ctx context.Context, orders []model.Order) error
	//末尾に1件追加
	Append(ctx context.Context, order model.Order) error

	//顧客名の部分一致（大文字小文字無視）。空文字は全件
	FindByNameSubstring(ctx context.Context, term string) ([]model.Order, error)
	//IDの部分一致（大文字小文字無視）。空文字は全件
	FindByIDSubstring(ctx context.Context, term string) ([]model.Order, error)
	//ステータス完全一致
	FindByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error)

	//一致した1件のstatusだけ書き換える。無ければErrNotFound
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error
	//一致した1件を削除。無ければErrNotFound
	Delete(ctx context.Context, id string) error
}

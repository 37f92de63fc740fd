package filestore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"orderdesk/internal/domain/model"
	repo "orderdesk/internal/repository"

	"github.com/google/renameio/v2"
)

// OrderFileStore は注文の配列を1つのJSONファイルに丸ごと保存する。
// 変更は毎回「全件読む→変更→全件書く」。プロセス内の同時実行は mu で直列化するが、
// 別プロセスからの同時書き込みは想定しない（後勝ちで消える）。
type OrderFileStore struct {
	path string
	mu   sync.Mutex
}

var _ repo.OrderRepository = (*OrderFileStore)(nil)

// DI
func NewOrderFileStore(path string) *OrderFileStore {
	return &OrderFileStore{path: path}
}

func (s *OrderFileStore) Path() string {
	return s.path
}

func (s *OrderFileStore) LoadAll(ctx context.Context) ([]model.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load()
}

func (s *OrderFileStore) SaveAll(ctx context.Context, orders []model.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.save(orders)
}

func (s *OrderFileStore) Append(ctx context.Context, order model.Order) error {
	return s.mutate(ctx, func(orders []model.Order) ([]model.Order, error) {
		return append(orders, order), nil
	})
}

func (s *OrderFileStore) FindByNameSubstring(ctx context.Context, term string) ([]model.Order, error) {
	needle := strings.ToLower(term)
	return s.filter(ctx, func(o model.Order) bool {
		return strings.Contains(strings.ToLower(o.CustomerName), needle)
	})
}

func (s *OrderFileStore) FindByIDSubstring(ctx context.Context, term string) ([]model.Order, error) {
	needle := strings.ToLower(term)
	return s.filter(ctx, func(o model.Order) bool {
		return strings.Contains(strings.ToLower(o.ID), needle)
	})
}

func (s *OrderFileStore) FindByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	return s.filter(ctx, func(o model.Order) bool {
		return o.Status == status
	})
}

func (s *OrderFileStore) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	return s.mutate(ctx, func(orders []model.Order) ([]model.Order, error) {
		i := indexOf(orders, id)
		if i < 0 {
			return nil, repo.ErrNotFound
		}
		//statusだけ変える（totalなどは触らない）
		orders[i].Status = status
		return orders, nil
	})
}

func (s *OrderFileStore) Delete(ctx context.Context, id string) error {
	return s.mutate(ctx, func(orders []model.Order) ([]model.Order, error) {
		i := indexOf(orders, id)
		if i < 0 {
			return nil, repo.ErrNotFound
		}
		return append(orders[:i], orders[i+1:]...), nil
	})
}

// mutate は1回の読み込み→変更→書き込みをロック内で行う。fnがエラーなら何も書かない。
func (s *OrderFileStore) mutate(ctx context.Context, fn func([]model.Order) ([]model.Order, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	orders, err := s.load()
	if err != nil {
		return err
	}
	next, err := fn(orders)
	if err != nil {
		return err
	}
	return s.save(next)
}

func (s *OrderFileStore) filter(ctx context.Context, keep func(model.Order) bool) ([]model.Order, error) {
	orders, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]model.Order, 0, len(orders))
	for _, o := range orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *OrderFileStore) load() ([]model.Order, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		//初回はファイルが無いので空扱い
		return []model.Order{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read orders file %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []model.Order{}, nil
	}

	var orders []model.Order
	if err := json.Unmarshal(data, &orders); err != nil {
		return nil, fmt.Errorf("decode orders file %s: %w", s.path, err)
	}
	if orders == nil {
		orders = []model.Order{}
	}
	return orders, nil
}

func (s *OrderFileStore) save(orders []model.Order) error {
	if orders == nil {
		orders = []model.Order{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(orders); err != nil {
		return fmt.Errorf("encode orders: %w", err)
	}

	// 一時ファイルに書いて rename。既存ファイルのパーミッションは引き継ぐ
	if err := renameio.WriteFile(s.path, buf.Bytes(), 0o644,
		renameio.WithTempDir(filepath.Dir(s.path)),
		renameio.WithExistingPermissions(),
	); err != nil {
		return fmt.Errorf("save orders file: %w", err)
	}
	return nil
}

func indexOf(orders []model.Order, id string) int {
	for i, o := range orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

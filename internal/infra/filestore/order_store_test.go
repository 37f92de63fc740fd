package filestore

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"orderdesk/internal/domain/model"
	repo "orderdesk/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrderStore(t *testing.T) *OrderFileStore {
	t.Helper()
	return NewOrderFileStore(filepath.Join(t.TempDir(), "orders.json"))
}

func sampleOrder(id, name string, status model.OrderStatus) model.Order {
	var cart model.Cart
	cart.Add(model.LineItem{ID: id + "-1", ProductLink: "https://shop.example/p/1", Color: "black", Size: model.SizeM, UnitPrice: 9.99, Quantity: 1})
	cart.Add(model.LineItem{ID: id + "-2", ProductLink: "https://shop.example/p/2", Color: "white", Size: model.SizeS, UnitPrice: 9.99, Quantity: 1})

	o := model.NewOrder(id, time.Date(2026, 5, 4, 12, 30, 0, 0, time.UTC), model.NewOrderParams{
		CustomerName:    name,
		Phone:           "0612345678",
		DeliveryMode:    model.DeliveryModeWithDelivery,
		DeliveryAddress: "12 rue des Lilas",
		Comment:         "ring twice",
	}, cart)
	o.Status = status
	return o
}

func readFile(t *testing.T, path string) []byte {
	t.Helper()
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	return b
}

func TestOrderFileStore_LoadAll_MissingFileIsEmpty(t *testing.T) {
	s := newTestOrderStore(t)

	orders, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)

	//読むだけではファイルを作らない
	_, err = os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestOrderFileStore_LoadAll_EmptyFileIsEmpty(t *testing.T) {
	s := newTestOrderStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("  \n"), 0o644))

	orders, err := s.LoadAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderFileStore_LoadAll_CorruptFile(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	_, err := s.LoadAll(ctx)
	assert.Error(t, err)

	//壊れたファイルを上書きしない
	err = s.Append(ctx, sampleOrder("a", "Amina", model.OrderStatusPreparing))
	assert.Error(t, err)
	assert.Equal(t, "{not json", string(readFile(t, s.Path())))
}

func TestOrderFileStore_AppendThenLoad(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderStore(t)

	a := sampleOrder("a-1", "Amina", model.OrderStatusPreparing)
	require.Equal(t, 19.98, a.Total)
	require.NoError(t, s.Append(ctx, a))

	orders, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, a, orders[0])
	assert.Equal(t, 19.98, orders[0].Total)
	assert.Len(t, orders[0].Items, 2)
}

func TestOrderFileStore_AppendKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderStore(t)

	for _, id := range []string{"c", "a", "b"} {
		require.NoError(t, s.Append(ctx, sampleOrder(id, "x", model.OrderStatusPreparing)))
	}

	orders, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "c", orders[0].ID)
	assert.Equal(t, "a", orders[1].ID)
	assert.Equal(t, "b", orders[2].ID)
}

func TestOrderFileStore_SaveAllLoadAllRoundTripIsByteIdentical(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderStore(t)

	require.NoError(t, s.Append(ctx, sampleOrder("a", "Amina", model.OrderStatusPreparing)))
	require.NoError(t, s.Append(ctx, sampleOrder("b", "Bilal", model.OrderStatusShipped)))
	before := readFile(t, s.Path())

	orders, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.NoError(t, s.SaveAll(ctx, orders))

	assert.Equal(t, string(before), string(readFile(t, s.Path())))
}

func TestOrderFileStore_SaveAllReplacesContents(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderStore(t)

	require.NoError(t, s.Append(ctx, sampleOrder("a", "Amina", model.OrderStatusPreparing)))
	require.NoError(t, s.SaveAll(ctx, []model.Order{sampleOrder("z", "Zineb", model.OrderStatusCancelled)}))

	orders, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "z", orders[0].ID)

	require.NoError(t, s.SaveAll(ctx, nil))
	assert.Equal(t, "[]\n", string(readFile(t, s.Path())))
}

func TestOrderFileStore_FileFormat(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderStore(t)

	o := sampleOrder("a", "أمينة <VIP>", model.OrderStatusPreparing)
	require.NoError(t, s.Append(ctx, o))

	data := string(readFile(t, s.Path()))
	assert.True(t, strings.HasPrefix(data, "[\n    {\n        \"id\": \"a\","), data)
	assert.Contains(t, data, "أمينة <VIP>")
	assert.Contains(t, data, `"status": "PREPARING"`)
	assert.Contains(t, data, `"delivery_mode": "WITH_DELIVERY"`)
	assert.Contains(t, data, `"total": 19.98`)
	assert.True(t, strings.HasSuffix(data, "]\n"))
}

func TestOrderFileStore_FindByNameSubstring(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderStore(t)

	require.NoError(t, s.Append(ctx, sampleOrder("a", "Amina Benali", model.OrderStatusPreparing)))
	require.NoError(t, s.Append(ctx, sampleOrder("b", "Bilal", model.OrderStatusShipped)))
	require.NoError(t, s.Append(ctx, sampleOrder("c", "Samira", model.OrderStatusDelivered)))

	//空文字はすべての文字列の部分文字列なので全件
	all, err := s.FindByNameSubstring(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	got, err := s.FindByNameSubstring(ctx, "AMI")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "c", got[1].ID)

	none, err := s.FindByNameSubstring(ctx, "zzz")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestOrderFileStore_FindByIDSubstring(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderStore(t)

	require.NoError(t, s.Append(ctx, sampleOrder("7f3a-AAAA", "Amina", model.OrderStatusPreparing)))
	require.NoError(t, s.Append(ctx, sampleOrder("91bc-bbbb", "Bilal", model.OrderStatusPreparing)))

	got, err := s.FindByIDSubstring(ctx, "aaa")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "7f3a-AAAA", got[0].ID)

	all, err := s.FindByIDSubstring(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestOrderFileStore_FindByStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderStore(t)

	a := sampleOrder("a", "Amina", model.OrderStatusPreparing)
	b := sampleOrder("b", "Bilal", model.OrderStatusShipped)
	require.NoError(t, s.Append(ctx, a))
	require.NoError(t, s.Append(ctx, b))

	got, err := s.FindByStatus(ctx, model.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, []model.Order{b}, got)
}

func TestOrderFileStore_UpdateStatusChangesOnlyStatus(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderStore(t)

	a := sampleOrder("a", "Amina", model.OrderStatusPreparing)
	b := sampleOrder("b", "Bilal", model.OrderStatusShipped)
	require.NoError(t, s.Append(ctx, a))
	require.NoError(t, s.Append(ctx, b))

	require.NoError(t, s.UpdateStatus(ctx, "a", model.OrderStatusDelivered))

	orders, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	want := a
	want.Status = model.OrderStatusDelivered
	assert.Equal(t, want, orders[0])
	assert.Equal(t, b, orders[1])
}

func TestOrderFileStore_UpdateStatusNotFound(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderStore(t)

	require.NoError(t, s.Append(ctx, sampleOrder("a", "Amina", model.OrderStatusPreparing)))
	before := readFile(t, s.Path())

	err := s.UpdateStatus(ctx, "missing", model.OrderStatusShipped)
	assert.ErrorIs(t, err, repo.ErrNotFound)
	assert.Equal(t, before, readFile(t, s.Path()))
}

func TestOrderFileStore_DeleteKeepsRelativeOrder(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderStore(t)

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Append(ctx, sampleOrder(id, "x", model.OrderStatusPreparing)))
	}

	require.NoError(t, s.Delete(ctx, "b"))

	orders, err := s.LoadAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "a", orders[0].ID)
	assert.Equal(t, "c", orders[1].ID)

	assert.ErrorIs(t, s.Delete(ctx, "b"), repo.ErrNotFound)
}

func TestOrderFileStore_DeleteOnMissingFile(t *testing.T) {
	s := newTestOrderStore(t)

	assert.ErrorIs(t, s.Delete(context.Background(), "a"), repo.ErrNotFound)
	_, err := os.Stat(s.Path())
	assert.True(t, os.IsNotExist(err))
}

func TestOrderFileStore_SaveAllFailureLeavesNoTempFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	//保存先がディレクトリなので rename が失敗する
	target := filepath.Join(dir, "orders.json")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "keep"), 0o755))

	s := NewOrderFileStore(target)
	err := s.SaveAll(ctx, []model.Order{sampleOrder("a", "Amina", model.OrderStatusPreparing)})
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "orders.json", entries[0].Name())
	assert.True(t, entries[0].IsDir())
}

func TestOrderFileStore_SaveAllMissingDirectory(t *testing.T) {
	s := NewOrderFileStore(filepath.Join(t.TempDir(), "nope", "orders.json"))

	err := s.SaveAll(context.Background(), []model.Order{})
	assert.Error(t, err)
}

func TestOrderFileStore_SaveAllFailureKeepsPreviousFile(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderStore(t)

	require.NoError(t, s.Append(ctx, sampleOrder("a", "Amina", model.OrderStatusPreparing)))
	before, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	//NaN は JSON にできないので保存に失敗する
	bad := sampleOrder("b", "Bora", model.OrderStatusPreparing)
	bad.Total = math.NaN()
	require.Error(t, s.SaveAll(ctx, []model.Order{bad}))

	after, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, before, after)

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestOrderFileStore_RewriteKeepsFileMode(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderStore(t)

	require.NoError(t, s.Append(ctx, sampleOrder("a", "Amina", model.OrderStatusPreparing)))
	require.NoError(t, os.Chmod(s.Path(), 0o600))

	require.NoError(t, s.Append(ctx, sampleOrder("b", "Bora", model.OrderStatusPreparing)))
	require.NoError(t, s.UpdateStatus(ctx, "a", model.OrderStatusShipped))

	info, err := os.Stat(s.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestOrderFileStore_ConcurrentAppendsInProcess(t *testing.T) {
	ctx := context.Background()
	s := newTestOrderStore(t)

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- s.Append(ctx, sampleOrder(fmt.Sprintf("o-%02d", i), "x", model.OrderStatusPreparing))
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	orders, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Len(t, orders, n)
}

func TestOrderFileStore_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestOrderStore(t)
	_, err := s.LoadAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Append(ctx, sampleOrder("a", "x", model.OrderStatusPreparing)), context.Canceled)
}

package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"orderdesk/internal/domain/model"
	repo "orderdesk/internal/repository"

	"gorm.io/gorm"
)

// orderRecord は orders テーブルの1行。明細は jsonb にまとめて持つ。
type orderRecord struct {
	Seq             int64            `gorm:"column:seq;primaryKey;autoIncrement"`
	OrderID         string           `gorm:"column:order_id;uniqueIndex;not null"`
	CustomerName    string           `gorm:"column:customer_name"`
	Phone           string           `gorm:"column:phone"`
	CreatedAt       time.Time        `gorm:"column:created_at;autoCreateTime:false"`
	Items           []model.LineItem `gorm:"column:items;type:jsonb;serializer:json"`
	Total           float64          `gorm:"column:total"`
	DeliveryMode    string           `gorm:"column:delivery_mode"`
	DeliveryAddress string           `gorm:"column:delivery_address"`
	Comment         string           `gorm:"column:comment"`
	Status          string           `gorm:"column:status;index"`
}

func (orderRecord) TableName() string { return "orders" }

func toRecord(o model.Order) orderRecord {
	items := o.Items
	if items == nil {
		items = []model.LineItem{}
	}
	return orderRecord{
		OrderID:         o.ID,
		CustomerName:    o.CustomerName,
		Phone:           o.Phone,
		CreatedAt:       o.CreatedAt,
		Items:           items,
		Total:           o.Total,
		DeliveryMode:    string(o.DeliveryMode),
		DeliveryAddress: o.DeliveryAddress,
		Comment:         o.Comment,
		Status:          string(o.Status),
	}
}

func (r orderRecord) toModel() model.Order {
	items := r.Items
	if items == nil {
		items = []model.LineItem{}
	}
	return model.Order{
		ID:              r.OrderID,
		CustomerName:    r.CustomerName,
		Phone:           r.Phone,
		CreatedAt:       r.CreatedAt.UTC(),
		Items:           items,
		Total:           r.Total,
		DeliveryMode:    model.DeliveryMode(r.DeliveryMode),
		DeliveryAddress: r.DeliveryAddress,
		Comment:         r.Comment,
		Status:          model.OrderStatus(r.Status),
	}
}

func toModels(recs []orderRecord) []model.Order {
	out := make([]model.Order, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.toModel())
	}
	return out
}

// LIKE のワイルドカードをエスケープ（ESCAPE '\'）
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func containsPattern(term string) string {
	return "%" + escapeLike(strings.ToLower(term)) + "%"
}

// OrderGormRepository は OrderRepository の PostgreSQL 実装。
type OrderGormRepository struct {
	db *gorm.DB
}

func NewOrderGormRepository(db *gorm.DB) *OrderGormRepository {
	return &OrderGormRepository{db: db}
}

func (r *OrderGormRepository) Migrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&orderRecord{})
}

func (r *OrderGormRepository) LoadAll(ctx context.Context) ([]model.Order, error) {
	return r.find(ctx, r.db.WithContext(ctx))
}

// 全件入れ替え（1トランザクション）
func (r *OrderGormRepository) SaveAll(ctx context.Context, orders []model.Order) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&orderRecord{}).Error; err != nil {
			return fmt.Errorf("clear orders: %w", err)
		}
		if len(orders) == 0 {
			return nil
		}

		recs := make([]orderRecord, 0, len(orders))
		for _, o := range orders {
			recs = append(recs, toRecord(o))
		}
		if err := tx.Create(&recs).Error; err != nil {
			return fmt.Errorf("insert orders: %w", err)
		}
		return nil
	})
}

func (r *OrderGormRepository) Append(ctx context.Context, order model.Order) error {
	rec := toRecord(order)
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderGormRepository) FindByNameSubstring(ctx context.Context, term string) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Where(`LOWER(customer_name) LIKE ? ESCAPE '\'`, containsPattern(term))
	return r.find(ctx, q)
}

func (r *OrderGormRepository) FindByIDSubstring(ctx context.Context, term string) ([]model.Order, error) {
	q := r.db.WithContext(ctx).Where(`LOWER(order_id) LIKE ? ESCAPE '\'`, containsPattern(term))
	return r.find(ctx, q)
}

func (r *OrderGormRepository) FindByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("status = ?", string(status)))
}

func (r *OrderGormRepository) UpdateStatus(ctx context.Context, id string, status model.OrderStatus) error {
	res := r.db.WithContext(ctx).Model(&orderRecord{}).
		Where("order_id = ?", id).
		Update("status", string(status))

	if res.Error != nil {
		return fmt.Errorf("update status: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderGormRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("order_id = ?", id).Delete(&orderRecord{})
	if res.Error != nil {
		return fmt.Errorf("delete order: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 挿入順（seq）で返す
func (r *OrderGormRepository) find(ctx context.Context, q *gorm.DB) ([]model.Order, error) {
	var recs []orderRecord
	if err := q.Order("seq asc").Find(&recs).Error; err != nil {
		return []model.Order{}, fmt.Errorf("query orders: %w", err)
	}
	return toModels(recs), nil
}

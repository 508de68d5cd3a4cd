package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/goshop/orderflow/internal/domains/orders/domain"
	"github.com/goshop/orderflow/internal/domains/orders/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists orders in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&orderRecord{})
	}
	return repo
}

// orderRecord maps the order aggregate to a relational table. Lines are
// stored as an opaque JSON blob next to the structured columns.
type orderRecord struct {
	ID          int64     `gorm:"primaryKey;column:id;autoIncrement"`
	UserID      int64     `gorm:"column:user_id;index"`
	TotalAmount float64   `gorm:"column:total_amount"`
	Status      string    `gorm:"column:status;type:varchar(32);index"`
	LinesJSON   string    `gorm:"column:lines_json;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
}

func (orderRecord) TableName() string { return "orders" }

type lineRecord struct {
	ProductID int64   `json:"productId"`
	Quantity  int32   `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

// Save inserts a new order and returns it with the assigned identifier.
// Orders are write-once, so there is no conflict handling.
func (r *Repository) Save(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.New("order is nil")
	}
	record, err := toRecord(order)
	if err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).Create(&record).Error; err != nil {
		return nil, err
	}
	return record.toDomain()
}

// GetByID fetches an order by identifier.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record orderRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain()
}

// List returns all orders ordered by identifier.
func (r *Repository) List(ctx context.Context) ([]*domain.Order, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []orderRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for i := range records {
		order, err := records[i].toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres order repository not configured")
	}
	return nil
}

func toRecord(order *domain.Order) (orderRecord, error) {
	lines := make([]lineRecord, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, lineRecord{ProductID: line.ProductID, Quantity: line.Quantity, UnitPrice: line.UnitPrice})
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return orderRecord{}, err
	}
	return orderRecord{
		ID:          order.ID,
		UserID:      order.UserID,
		TotalAmount: order.TotalAmount,
		Status:      string(order.Status),
		LinesJSON:   string(payload),
		CreatedAt:   order.CreatedAt,
	}, nil
}

func (r orderRecord) toDomain() (*domain.Order, error) {
	var lines []lineRecord
	if r.LinesJSON != "" {
		if err := json.Unmarshal([]byte(r.LinesJSON), &lines); err != nil {
			return nil, err
		}
	}
	orderLines := make([]domain.OrderLine, 0, len(lines))
	for _, line := range lines {
		orderLines = append(orderLines, domain.OrderLine{ProductID: line.ProductID, Quantity: line.Quantity, UnitPrice: line.UnitPrice})
	}
	return &domain.Order{
		ID:          r.ID,
		UserID:      r.UserID,
		Lines:       orderLines,
		TotalAmount: r.TotalAmount,
		Status:      domain.Status(r.Status),
		CreatedAt:   r.CreatedAt,
	}, nil
}

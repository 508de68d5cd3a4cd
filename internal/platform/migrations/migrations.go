package migrations

import (
	"time"

	"gorm.io/gorm"
)

// Run applies the schema for the orders bounded context. Intended to replace
// adapter-level automigrate in deployments that manage schema centrally.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(&orderRecord{})
}

// Order schema mirrors the orders Postgres adapter. Line data lives in a JSON
// text column rather than a separate relational structure.
type orderRecord struct {
	ID          int64     `gorm:"primaryKey;column:id;autoIncrement"`
	UserID      int64     `gorm:"column:user_id;index"`
	TotalAmount float64   `gorm:"column:total_amount"`
	Status      string    `gorm:"column:status;type:varchar(32);index"`
	LinesJSON   string    `gorm:"column:lines_json;type:text"`
	CreatedAt   time.Time `gorm:"column:created_at;index"`
}

func (orderRecord) TableName() string { return "orders" }

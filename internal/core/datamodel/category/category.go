package category

import (
	"time"
)

// Category is a global spending bucket. Rows are seeded once and treated as
// read-only by the ledger; nothing in the engine creates or mutates them.
type Category struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Color     string    `json:"color" gorm:"not null"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (Category) TableName() string {
	return "categories"
}

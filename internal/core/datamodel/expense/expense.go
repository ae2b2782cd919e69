package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is one cash outlay by one user. Amount is a fixed-point decimal
// with two fractional digits; it is never stored as a binary float so that
// split sums stay cent-exact.
type Expense struct {
	ID          int64           `json:"id" gorm:"primaryKey"`
	UserID      int64           `json:"user_id" gorm:"column:user_id;not null;index"`
	Title       string          `json:"title" gorm:"not null"`
	Amount      decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	CategoryID  int64           `json:"category_id" gorm:"column:category_id;not null"`
	Notes       *string         `json:"notes,omitempty"`
	IsSplit     bool            `json:"is_split" gorm:"column:is_split;default:false"`
	GroupID     *int64          `json:"group_id,omitempty" gorm:"column:group_id;index"`
	ExpenseDate time.Time       `json:"expense_date" gorm:"column:expense_date;type:date;not null"`
	CreatedAt   time.Time       `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time       `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (Expense) TableName() string {
	return "expenses"
}

// ExpenseSplit is one participant's share of a shared expense. Splits are
// created together with their expense and cascade-deleted with it; the sum of
// a shared expense's split amounts always equals the expense amount.
type ExpenseSplit struct {
	ID        int64           `json:"id" gorm:"primaryKey"`
	ExpenseID int64           `json:"expense_id" gorm:"column:expense_id;not null;index"`
	UserID    int64           `json:"user_id" gorm:"column:user_id;not null;index"`
	Amount    decimal.Decimal `json:"amount" gorm:"type:numeric(12,2);not null"`
	Paid      bool            `json:"paid" gorm:"default:false"`
	CreatedAt time.Time       `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (ExpenseSplit) TableName() string {
	return "expense_splits"
}

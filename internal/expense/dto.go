package expense

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// CreateExpenseDTO is the request payload for creating an expense. When
// GroupID is set the expense is shared: member splits are computed and
// persisted together with it.
type CreateExpenseDTO struct {
	Title       string          `json:"title" validate:"required,min=1,max=200"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	CategoryID  int64           `json:"category_id" validate:"required,min=1"`
	ExpenseDate time.Time       `json:"expense_date" validate:"required"`
	Notes       *string         `json:"notes,omitempty"`
	GroupID     *int64          `json:"group_id,omitempty"`
}

// Validate checks the payload. Amounts must be strictly positive with at
// most two fractional digits; anything finer cannot be represented in cents.
func (dto CreateExpenseDTO) Validate() error {
	if strings.TrimSpace(dto.Title) == "" {
		return errors.New("title is required")
	}
	if len(dto.Title) > 200 {
		return errors.New("title must be at most 200 characters")
	}
	if !dto.Amount.IsPositive() {
		return errors.New("amount must be greater than 0")
	}
	if !dto.Amount.Equal(dto.Amount.Round(2)) {
		return errors.New("amount must have at most 2 fractional digits")
	}
	if dto.CategoryID <= 0 {
		return errors.New("category_id is required")
	}
	if dto.ExpenseDate.IsZero() {
		return errors.New("expense date is required")
	}
	if dto.ExpenseDate.After(time.Now()) {
		return errors.New("expense date cannot be in the future")
	}
	if dto.GroupID != nil && *dto.GroupID <= 0 {
		return errors.New("group_id must be a positive id")
	}
	return nil
}

// MarkSplitPaidDTO toggles the paid flag on one split.
type MarkSplitPaidDTO struct {
	Paid bool `json:"paid"`
}

var (
	errInvalidDate   = errors.New("dates must use the YYYY-MM-DD format")
	errInvalidPeriod = errors.New("period must be one of day, week, month")
)

// ListQuery narrows an expense listing to a time window. Period presets
// (day, week, month) expand to a [From, To) range at query time; custom
// ranges pass From/To directly.
type ListQuery struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

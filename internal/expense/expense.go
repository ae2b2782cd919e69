package expense

import (
	"time"

	"github.com/shopspring/decimal"

	expenseDatamodel "github.com/wisnuadi/splitledger/internal/core/datamodel/expense"
)

type Expense struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	Title       string          `json:"title"`
	Amount      decimal.Decimal `json:"amount"`
	CategoryID  int64           `json:"category_id"`
	Notes       *string         `json:"notes,omitempty"`
	IsSplit     bool            `json:"is_split"`
	GroupID     *int64          `json:"group_id,omitempty"`
	ExpenseDate time.Time       `json:"expense_date"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
	Splits      []*Split        `json:"splits,omitempty"`
}

type Split struct {
	ID        int64           `json:"id"`
	ExpenseID int64           `json:"expense_id"`
	UserID    int64           `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	Paid      bool            `json:"paid"`
}

func (e *Expense) IsOwnedBy(userID int64) bool {
	return e.UserID == userID
}

func ToDataModel(e *Expense) *expenseDatamodel.Expense {
	return &expenseDatamodel.Expense{
		ID:          e.ID,
		UserID:      e.UserID,
		Title:       e.Title,
		Amount:      e.Amount,
		CategoryID:  e.CategoryID,
		Notes:       e.Notes,
		IsSplit:     e.IsSplit,
		GroupID:     e.GroupID,
		ExpenseDate: e.ExpenseDate,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func FromDataModel(e *expenseDatamodel.Expense) *Expense {
	return &Expense{
		ID:          e.ID,
		UserID:      e.UserID,
		Title:       e.Title,
		Amount:      e.Amount,
		CategoryID:  e.CategoryID,
		Notes:       e.Notes,
		IsSplit:     e.IsSplit,
		GroupID:     e.GroupID,
		ExpenseDate: e.ExpenseDate,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

func FromDataModelSlice(expenses []*expenseDatamodel.Expense) []*Expense {
	result := make([]*Expense, len(expenses))
	for i, e := range expenses {
		result[i] = FromDataModel(e)
	}
	return result
}

func SplitFromDataModel(s *expenseDatamodel.ExpenseSplit) *Split {
	return &Split{
		ID:        s.ID,
		ExpenseID: s.ExpenseID,
		UserID:    s.UserID,
		Amount:    s.Amount,
		Paid:      s.Paid,
	}
}

func SplitsFromDataModel(splits []*expenseDatamodel.ExpenseSplit) []*Split {
	result := make([]*Split, len(splits))
	for i, s := range splits {
		result[i] = SplitFromDataModel(s)
	}
	return result
}

package postgres

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/wisnuadi/splitledger/internal/balance"
	expenseDatamodel "github.com/wisnuadi/splitledger/internal/core/datamodel/expense"
)

// BalanceRepository implements the balance.Repository reads with GORM.
type BalanceRepository struct {
	db *gorm.DB
}

func NewBalanceRepository(db *gorm.DB) balance.Repository {
	return &BalanceRepository{db: db}
}

func (r *BalanceRepository) ExpensesByOwner(ctx context.Context, userID int64) ([]*expenseDatamodel.Expense, error) {
	var expenses []*expenseDatamodel.Expense
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&expenses).Error
	return expenses, err
}

// obligationRow is the scan target for the split+expense join.
type obligationRow struct {
	SplitID   int64           `gorm:"column:split_id"`
	ExpenseID int64           `gorm:"column:expense_id"`
	UserID    int64           `gorm:"column:user_id"`
	OwnerID   int64           `gorm:"column:owner_id"`
	GroupID   *int64          `gorm:"column:group_id"`
	Amount    decimal.Decimal `gorm:"column:amount"`
	Paid      bool            `gorm:"column:paid"`
}

const obligationSelect = `
	SELECT s.id AS split_id,
	       s.expense_id AS expense_id,
	       s.user_id AS user_id,
	       e.user_id AS owner_id,
	       e.group_id AS group_id,
	       s.amount AS amount,
	       s.paid AS paid
	FROM expense_splits s
	JOIN expenses e ON e.id = s.expense_id`

func (r *BalanceRepository) SplitsForParticipant(ctx context.Context, userID int64) ([]balance.Obligation, error) {
	return r.queryObligations(ctx, obligationSelect+` WHERE s.user_id = ?`, userID)
}

func (r *BalanceRepository) SplitsOnOwnedExpenses(ctx context.Context, userID int64) ([]balance.Obligation, error) {
	return r.queryObligations(ctx, obligationSelect+` WHERE e.user_id = ?`, userID)
}

func (r *BalanceRepository) queryObligations(ctx context.Context, query string, userID int64) ([]balance.Obligation, error) {
	var rows []obligationRow
	if err := r.db.WithContext(ctx).Raw(query, userID).Scan(&rows).Error; err != nil {
		return nil, err
	}

	obligations := make([]balance.Obligation, len(rows))
	for i, row := range rows {
		obligations[i] = balance.Obligation{
			SplitID:   row.SplitID,
			ExpenseID: row.ExpenseID,
			UserID:    row.UserID,
			OwnerID:   row.OwnerID,
			GroupID:   row.GroupID,
			Amount:    row.Amount,
			Paid:      row.Paid,
		}
	}
	return obligations, nil
}

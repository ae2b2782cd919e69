package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/wisnuadi/splitledger/internal"
	expenseDatamodel "github.com/wisnuadi/splitledger/internal/core/datamodel/expense"
	"github.com/wisnuadi/splitledger/internal/expense"
)

// ExpenseRepository implements the expense.Repository interface using GORM
type ExpenseRepository struct {
	db *gorm.DB
}

func NewExpenseRepository(db *gorm.DB) expense.Repository {
	return &ExpenseRepository{db: db}
}

// CreateWithSplits persists the expense and all its split rows in one
// transaction. A failure while writing splits rolls back the expense too, so
// no shared expense is ever committed with a partial split set.
func (r *ExpenseRepository) CreateWithSplits(ctx context.Context, e *expenseDatamodel.Expense, splits []*expenseDatamodel.ExpenseSplit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(e).Error; err != nil {
			return err
		}
		for _, sp := range splits {
			sp.ExpenseID = e.ID
			if err := tx.Create(sp).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ExpenseRepository) GetByID(ctx context.Context, id int64) (*expenseDatamodel.Expense, error) {
	var e expenseDatamodel.Expense
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&e).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrExpenseNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *ExpenseRepository) SplitsForExpense(ctx context.Context, expenseID int64) ([]*expenseDatamodel.ExpenseSplit, error) {
	var splits []*expenseDatamodel.ExpenseSplit
	err := r.db.WithContext(ctx).
		Where("expense_id = ?", expenseID).
		Order("user_id ASC").
		Find(&splits).Error
	return splits, err
}

func (r *ExpenseRepository) GetSplit(ctx context.Context, splitID int64) (*expenseDatamodel.ExpenseSplit, error) {
	var sp expenseDatamodel.ExpenseSplit
	err := r.db.WithContext(ctx).Where("id = ?", splitID).First(&sp).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrSplitNotFound
		}
		return nil, err
	}
	return &sp, nil
}

func (r *ExpenseRepository) ListByOwner(ctx context.Context, userID int64, q expense.ListQuery) ([]*expenseDatamodel.Expense, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if q.From != nil {
		query = query.Where("expense_date >= ?", *q.From)
	}
	if q.To != nil {
		query = query.Where("expense_date < ?", *q.To)
	}

	var expenses []*expenseDatamodel.Expense
	err := query.
		Order("expense_date DESC, id DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&expenses).Error
	return expenses, err
}

// DeleteWithSplits removes the expense and its splits atomically; no orphan
// split survives a delete.
func (r *ExpenseRepository) DeleteWithSplits(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("expense_id = ?", id).Delete(&expenseDatamodel.ExpenseSplit{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&expenseDatamodel.Expense{}).Error
	})
}

func (r *ExpenseRepository) UpdateSplitPaid(ctx context.Context, splitID int64, paid bool) error {
	result := r.db.WithContext(ctx).
		Model(&expenseDatamodel.ExpenseSplit{}).
		Where("id = ?", splitID).
		Update("paid", paid)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrSplitNotFound
	}
	return nil
}

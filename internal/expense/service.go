package expense

import (
	"context"
	"log/slog"
	"time"

	"github.com/wisnuadi/splitledger/internal"
	expenseDatamodel "github.com/wisnuadi/splitledger/internal/core/datamodel/expense"
	"github.com/wisnuadi/splitledger/internal/split"
)

// Repository defines the data access methods for expenses and their splits.
// CreateWithSplits and DeleteWithSplits are transactional: either the expense
// and every split row land together, or nothing is committed.
type Repository interface {
	CreateWithSplits(ctx context.Context, e *expenseDatamodel.Expense, splits []*expenseDatamodel.ExpenseSplit) error
	GetByID(ctx context.Context, id int64) (*expenseDatamodel.Expense, error)
	SplitsForExpense(ctx context.Context, expenseID int64) ([]*expenseDatamodel.ExpenseSplit, error)
	GetSplit(ctx context.Context, splitID int64) (*expenseDatamodel.ExpenseSplit, error)
	ListByOwner(ctx context.Context, userID int64, q ListQuery) ([]*expenseDatamodel.Expense, error)
	DeleteWithSplits(ctx context.Context, id int64) error
	UpdateSplitPaid(ctx context.Context, splitID int64, paid bool) error
}

// MembershipResolver answers which users belong to a group, in ascending
// user id order. The expense service fetches the member list once per
// creation flow and reuses that snapshot for both the owner check and the
// allocation.
type MembershipResolver interface {
	Members(ctx context.Context, groupID int64) ([]int64, error)
}

// CategoryResolver checks that a referenced category exists.
type CategoryResolver interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

// Service handles expense business logic
type Service struct {
	repo       Repository
	membership MembershipResolver
	categories CategoryResolver
	logger     *slog.Logger
}

func NewService(repo Repository, membership MembershipResolver, categories CategoryResolver, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		membership: membership,
		categories: categories,
		logger:     logger,
	}
}

// CreateExpense creates an expense, and for group expenses allocates and
// persists the member splits in the same transaction. The split sum is
// re-checked against the expense amount before anything is written.
func (s *Service) CreateExpense(ctx context.Context, dto CreateExpenseDTO, ownerID int64) (*Expense, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("expense validation failed", "error", err, "user_id", ownerID)
		return nil, internal.NewValidationError(err.Error(), internal.ErrCodeValidationFailed)
	}

	exists, err := s.categories.Exists(ctx, dto.CategoryID)
	if err != nil {
		return nil, internal.NewRepositoryError("could not look up category", err)
	}
	if !exists {
		return nil, internal.ErrCategoryNotFound
	}

	now := time.Now()
	e := &expenseDatamodel.Expense{
		UserID:      ownerID,
		Title:       dto.Title,
		Amount:      dto.Amount,
		CategoryID:  dto.CategoryID,
		Notes:       dto.Notes,
		ExpenseDate: dto.ExpenseDate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	var splitRows []*expenseDatamodel.ExpenseSplit
	if dto.GroupID != nil {
		splitRows, err = s.allocateGroupSplits(ctx, dto, ownerID)
		if err != nil {
			return nil, err
		}
		e.IsSplit = true
		e.GroupID = dto.GroupID
	}

	if err := s.repo.CreateWithSplits(ctx, e, splitRows); err != nil {
		s.logger.Error("failed to create expense", "error", err, "user_id", ownerID)
		return nil, internal.NewRepositoryError("could not create expense", err)
	}

	s.logger.Info("expense created",
		"expense_id", e.ID,
		"user_id", ownerID,
		"amount", dto.Amount,
		"is_split", e.IsSplit,
		"splits", len(splitRows))

	result := FromDataModel(e)
	result.Splits = SplitsFromDataModel(splitRows)
	return result, nil
}

// allocateGroupSplits resolves the group's members once and turns the member
// snapshot into split rows, one per member including the owner.
func (s *Service) allocateGroupSplits(ctx context.Context, dto CreateExpenseDTO, ownerID int64) ([]*expenseDatamodel.ExpenseSplit, error) {
	members, err := s.membership.Members(ctx, *dto.GroupID)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		return nil, internal.NewRepositoryError("could not resolve group members", err)
	}

	ownerIsMember := false
	for _, id := range members {
		if id == ownerID {
			ownerIsMember = true
			break
		}
	}
	if !ownerIsMember {
		s.logger.Warn("group expense denied: owner not in group",
			"group_id", *dto.GroupID, "user_id", ownerID)
		return nil, internal.ErrNotGroupMember
	}

	shares, err := split.Allocate(dto.Amount, members)
	if err != nil {
		return nil, err
	}
	if !split.Sum(shares).Equal(dto.Amount) {
		// Allocation guarantees this; treat a mismatch as a bug, never persist it.
		s.logger.Error("split sum does not match expense amount",
			"amount", dto.Amount, "sum", split.Sum(shares))
		return nil, internal.NewInternalError("split allocation mismatch", nil)
	}

	rows := make([]*expenseDatamodel.ExpenseSplit, len(shares))
	for i, share := range shares {
		rows[i] = &expenseDatamodel.ExpenseSplit{
			UserID: share.UserID,
			Amount: share.Amount,
		}
	}
	return rows, nil
}

// GetExpense returns one expense with its splits. The owner and any split
// participant may view it.
func (s *Service) GetExpense(ctx context.Context, id, requesterID int64) (*Expense, error) {
	e, err := s.getExpense(ctx, id)
	if err != nil {
		return nil, err
	}

	splits, err := s.repo.SplitsForExpense(ctx, id)
	if err != nil {
		return nil, internal.NewRepositoryError("could not load splits", err)
	}

	if !e.IsOwnedBy(requesterID) && !participates(splits, requesterID) {
		s.logger.Warn("unauthorized access to expense",
			"expense_id", id, "user_id", requesterID, "owner_id", e.UserID)
		return nil, internal.ErrNotExpenseOwner
	}

	e.Splits = SplitsFromDataModel(splits)
	return e, nil
}

// ListExpenses returns the requester's own expenses, newest first,
// optionally narrowed to a date window.
func (s *Service) ListExpenses(ctx context.Context, userID int64, q ListQuery) ([]*Expense, error) {
	if q.Limit <= 0 || q.Limit > 100 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	expenses, err := s.repo.ListByOwner(ctx, userID, q)
	if err != nil {
		s.logger.Error("failed to list expenses", "error", err, "user_id", userID)
		return nil, internal.NewRepositoryError("could not list expenses", err)
	}
	return FromDataModelSlice(expenses), nil
}

// DeleteExpense removes the expense and all its splits atomically. Only the
// owner may delete.
func (s *Service) DeleteExpense(ctx context.Context, id, requesterID int64) error {
	e, err := s.getExpense(ctx, id)
	if err != nil {
		return err
	}

	if !e.IsOwnedBy(requesterID) {
		s.logger.Warn("delete denied: requester is not the owner",
			"expense_id", id, "user_id", requesterID, "owner_id", e.UserID)
		return internal.ErrNotExpenseOwner
	}

	if err := s.repo.DeleteWithSplits(ctx, id); err != nil {
		s.logger.Error("failed to delete expense", "error", err, "expense_id", id)
		return internal.NewRepositoryError("could not delete expense", err)
	}

	s.logger.Info("expense deleted", "expense_id", id, "user_id", requesterID)
	return nil
}

// MarkSplitPaid sets the paid flag on one split. The expense owner (who is
// owed) and the split's participant (who owes) may both toggle it.
func (s *Service) MarkSplitPaid(ctx context.Context, expenseID, splitID, requesterID int64, paid bool) (*Split, error) {
	e, err := s.getExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	sp, err := s.repo.GetSplit(ctx, splitID)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		return nil, internal.NewRepositoryError("could not load split", err)
	}
	if sp.ExpenseID != expenseID {
		return nil, internal.ErrSplitNotFound
	}

	if !e.IsOwnedBy(requesterID) && sp.UserID != requesterID {
		s.logger.Warn("mark paid denied",
			"expense_id", expenseID, "split_id", splitID, "user_id", requesterID)
		return nil, internal.ErrNotExpenseOwner
	}

	if err := s.repo.UpdateSplitPaid(ctx, splitID, paid); err != nil {
		s.logger.Error("failed to update split", "error", err, "split_id", splitID)
		return nil, internal.NewRepositoryError("could not update split", err)
	}

	sp.Paid = paid
	s.logger.Info("split paid flag updated",
		"expense_id", expenseID, "split_id", splitID, "paid", paid)
	return SplitFromDataModel(sp), nil
}

func (s *Service) getExpense(ctx context.Context, id int64) (*Expense, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok {
			return nil, appErr
		}
		s.logger.Error("failed to get expense", "error", err, "expense_id", id)
		return nil, internal.NewRepositoryError("could not load expense", err)
	}
	return FromDataModel(e), nil
}

func participates(splits []*expenseDatamodel.ExpenseSplit, userID int64) bool {
	for _, sp := range splits {
		if sp.UserID == userID {
			return true
		}
	}
	return false
}

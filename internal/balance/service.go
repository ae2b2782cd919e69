package balance

import (
	"context"
	"log/slog"

	"github.com/wisnuadi/splitledger/internal"
	expenseDatamodel "github.com/wisnuadi/splitledger/internal/core/datamodel/expense"
)

// Repository defines the reads the engine needs. The three queries are not
// wrapped in one snapshot; a split created mid-computation may or may not be
// reflected. Balances are advisory, so this weak consistency is accepted.
type Repository interface {
	ExpensesByOwner(ctx context.Context, userID int64) ([]*expenseDatamodel.Expense, error)
	SplitsForParticipant(ctx context.Context, userID int64) ([]Obligation, error)
	SplitsOnOwnedExpenses(ctx context.Context, userID int64) ([]Obligation, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// Balances computes the full report for one user. A user with no expenses
// and no splits gets an all-zero report, not an error. Any repository failure
// fails the whole report; a partial balance is worse than no balance.
func (s *Service) Balances(ctx context.Context, userID int64) (*Report, error) {
	owned, err := s.repo.ExpensesByOwner(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load owned expenses", "error", err, "user_id", userID)
		return nil, internal.NewRepositoryError("could not load expenses", err)
	}

	forUser, err := s.repo.SplitsForParticipant(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load participant splits", "error", err, "user_id", userID)
		return nil, internal.NewRepositoryError("could not load splits", err)
	}

	onOwned, err := s.repo.SplitsOnOwnedExpenses(ctx, userID)
	if err != nil {
		s.logger.Error("failed to load splits on owned expenses", "error", err, "user_id", userID)
		return nil, internal.NewRepositoryError("could not load splits", err)
	}

	report := Compute(userID, owned, forUser, onOwned)

	s.logger.Info("balances computed",
		"user_id", userID,
		"total_spent", report.TotalSpent,
		"you_owe", report.YouOwe.Total,
		"you_are_owed", report.YouAreOwed.Total)

	return &report, nil
}

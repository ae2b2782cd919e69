package balance_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/wisnuadi/splitledger/internal"
	"github.com/wisnuadi/splitledger/internal/balance"
	expenseDatamodel "github.com/wisnuadi/splitledger/internal/core/datamodel/expense"
)

// Mock repository for testing
type mockBalanceRepository struct {
	owned    []*expenseDatamodel.Expense
	forUser  []balance.Obligation
	onOwned  []balance.Obligation
	getError error
}

func (m *mockBalanceRepository) ExpensesByOwner(_ context.Context, _ int64) ([]*expenseDatamodel.Expense, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.owned, nil
}

func (m *mockBalanceRepository) SplitsForParticipant(_ context.Context, _ int64) ([]balance.Obligation, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.forUser, nil
}

func (m *mockBalanceRepository) SplitsOnOwnedExpenses(_ context.Context, _ int64) ([]balance.Obligation, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	return m.onOwned, nil
}

var _ = Describe("BalanceService", func() {
	var (
		repo    *mockBalanceRepository
		service *balance.Service
	)

	BeforeEach(func() {
		repo = &mockBalanceRepository{}
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = balance.NewService(repo, logger)
	})

	Describe("Balances", func() {
		Context("when the repository has records for the user", func() {
			It("should return the computed report", func() {
				gid := int64(1)
				repo.owned = []*expenseDatamodel.Expense{
					{ID: 1, UserID: 1, Amount: money("4.50"), CategoryID: 10},
					{ID: 2, UserID: 1, Amount: money("31.00"), CategoryID: 10, IsSplit: true, GroupID: &gid},
				}
				repo.onOwned = []balance.Obligation{
					{SplitID: 1, ExpenseID: 2, UserID: 1, OwnerID: 1, GroupID: &gid, Amount: money("15.50")},
					{SplitID: 2, ExpenseID: 2, UserID: 2, OwnerID: 1, GroupID: &gid, Amount: money("15.50")},
				}

				report, err := service.Balances(context.Background(), 1)
				Expect(err).NotTo(HaveOccurred())
				Expect(report.TotalSpent.Equal(money("35.50"))).To(BeTrue())
				Expect(report.TotalByCategory[10].Equal(money("35.50"))).To(BeTrue())
				Expect(report.YouAreOwed.Total.Equal(money("15.50"))).To(BeTrue())
				Expect(report.YouAreOwed.Count).To(Equal(1))
				Expect(report.YouAreOwed.Groups).To(Equal(1))
				Expect(report.YouOwe.Total.IsZero()).To(BeTrue())
			})
		})

		Context("when the user has no records", func() {
			It("should return an all-zero report, not an error", func() {
				report, err := service.Balances(context.Background(), 2)
				Expect(err).NotTo(HaveOccurred())
				Expect(report.TotalSpent.IsZero()).To(BeTrue())
				Expect(report.TotalByCategory).To(BeEmpty())
			})
		})

		Context("when the repository fails", func() {
			It("should fail the whole report rather than returning partial data", func() {
				repo.getError = errors.New("connection refused")

				report, err := service.Balances(context.Background(), 1)
				Expect(report).To(BeNil())

				appErr, ok := internal.IsAppError(err)
				Expect(ok).To(BeTrue())
				Expect(appErr.Code).To(Equal(internal.ErrCodeRepositoryUnavailable))
			})
		})
	})
})

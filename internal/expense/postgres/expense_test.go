package postgres

import (
	"context"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/wisnuadi/splitledger/internal"
	expenseDatamodel "github.com/wisnuadi/splitledger/internal/core/datamodel/expense"
	"github.com/wisnuadi/splitledger/internal/expense"
)

func TestExpenseRepository(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "ExpenseRepository Suite")
}

var _ = Describe("ExpenseRepository", func() {
	var (
		db   *gorm.DB
		repo expense.Repository
		ctx  context.Context
	)

	money := func(s string) decimal.Decimal {
		return decimal.RequireFromString(s)
	}

	newExpense := func(userID int64, title, amount string, date time.Time) *expenseDatamodel.Expense {
		return &expenseDatamodel.Expense{
			UserID:      userID,
			Title:       title,
			Amount:      money(amount),
			CategoryID:  1,
			ExpenseDate: date,
		}
	}

	BeforeEach(func() {
		var err error

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&expenseDatamodel.Expense{}, &expenseDatamodel.ExpenseSplit{})
		Expect(err).NotTo(HaveOccurred())

		repo = NewExpenseRepository(db)
		ctx = context.Background()
	})

	AfterEach(func() {
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		err = sqlDB.Close()
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("CreateWithSplits", func() {
		It("should persist the expense and its splits in one go", func() {
			gid := int64(1)
			e := newExpense(1, "Dinner", "31.00", time.Now())
			e.IsSplit = true
			e.GroupID = &gid

			splits := []*expenseDatamodel.ExpenseSplit{
				{UserID: 1, Amount: money("15.50")},
				{UserID: 2, Amount: money("15.50")},
			}

			err := repo.CreateWithSplits(ctx, e, splits)
			Expect(err).NotTo(HaveOccurred())
			Expect(e.ID).To(BeNumerically(">", 0))
			Expect(e.CreatedAt).NotTo(BeZero())

			stored, err := repo.SplitsForExpense(ctx, e.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(HaveLen(2))
			for _, sp := range stored {
				Expect(sp.ExpenseID).To(Equal(e.ID))
				Expect(sp.Paid).To(BeFalse())
			}
		})

		It("should persist an unsplit expense without split rows", func() {
			e := newExpense(1, "Coffee", "4.50", time.Now())

			Expect(repo.CreateWithSplits(ctx, e, nil)).To(Succeed())

			stored, err := repo.SplitsForExpense(ctx, e.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(BeEmpty())
		})
	})

	Describe("GetByID", func() {
		It("should return a typed not found error for a missing expense", func() {
			_, err := repo.GetByID(ctx, 999)
			Expect(err).To(Equal(internal.ErrExpenseNotFound))
		})

		It("should round trip the stored amount", func() {
			e := newExpense(1, "Coffee", "4.50", time.Now())
			Expect(repo.CreateWithSplits(ctx, e, nil)).To(Succeed())

			got, err := repo.GetByID(ctx, e.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Amount.Equal(money("4.50"))).To(BeTrue())
			Expect(got.Title).To(Equal("Coffee"))
		})
	})

	Describe("SplitsForExpense", func() {
		It("should return splits in ascending user id order", func() {
			e := newExpense(1, "Trip", "30.00", time.Now())
			e.IsSplit = true
			splits := []*expenseDatamodel.ExpenseSplit{
				{UserID: 3, Amount: money("10.00")},
				{UserID: 1, Amount: money("10.00")},
				{UserID: 2, Amount: money("10.00")},
			}
			Expect(repo.CreateWithSplits(ctx, e, splits)).To(Succeed())

			stored, err := repo.SplitsForExpense(ctx, e.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(HaveLen(3))
			Expect(stored[0].UserID).To(Equal(int64(1)))
			Expect(stored[1].UserID).To(Equal(int64(2)))
			Expect(stored[2].UserID).To(Equal(int64(3)))
		})
	})

	Describe("ListByOwner", func() {
		var now time.Time

		BeforeEach(func() {
			now = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
			Expect(repo.CreateWithSplits(ctx, newExpense(1, "Old", "1.00", now.AddDate(0, -2, 0)), nil)).To(Succeed())
			Expect(repo.CreateWithSplits(ctx, newExpense(1, "Recent", "2.00", now.AddDate(0, 0, -1)), nil)).To(Succeed())
			Expect(repo.CreateWithSplits(ctx, newExpense(2, "Other", "3.00", now), nil)).To(Succeed())
		})

		It("should only return the owner's expenses, newest first", func() {
			list, err := repo.ListByOwner(ctx, 1, expense.ListQuery{Limit: 50})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(2))
			Expect(list[0].Title).To(Equal("Recent"))
			Expect(list[1].Title).To(Equal("Old"))
		})

		It("should apply the half open date window", func() {
			from := now.AddDate(0, 0, -7)
			to := now
			list, err := repo.ListByOwner(ctx, 1, expense.ListQuery{From: &from, To: &to, Limit: 50})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].Title).To(Equal("Recent"))
		})

		It("should honor limit and offset", func() {
			list, err := repo.ListByOwner(ctx, 1, expense.ListQuery{Limit: 1, Offset: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(list).To(HaveLen(1))
			Expect(list[0].Title).To(Equal("Old"))
		})
	})

	Describe("DeleteWithSplits", func() {
		It("should remove the expense together with its splits", func() {
			e := newExpense(1, "Dinner", "31.00", time.Now())
			e.IsSplit = true
			splits := []*expenseDatamodel.ExpenseSplit{
				{UserID: 1, Amount: money("15.50")},
				{UserID: 2, Amount: money("15.50")},
			}
			Expect(repo.CreateWithSplits(ctx, e, splits)).To(Succeed())

			Expect(repo.DeleteWithSplits(ctx, e.ID)).To(Succeed())

			_, err := repo.GetByID(ctx, e.ID)
			Expect(err).To(Equal(internal.ErrExpenseNotFound))

			var count int64
			Expect(db.Model(&expenseDatamodel.ExpenseSplit{}).Where("expense_id = ?", e.ID).Count(&count).Error).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})

	Describe("UpdateSplitPaid", func() {
		It("should flip the paid flag", func() {
			e := newExpense(1, "Dinner", "20.00", time.Now())
			e.IsSplit = true
			splits := []*expenseDatamodel.ExpenseSplit{
				{UserID: 1, Amount: money("10.00")},
				{UserID: 2, Amount: money("10.00")},
			}
			Expect(repo.CreateWithSplits(ctx, e, splits)).To(Succeed())

			Expect(repo.UpdateSplitPaid(ctx, splits[1].ID, true)).To(Succeed())

			sp, err := repo.GetSplit(ctx, splits[1].ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(sp.Paid).To(BeTrue())
		})

		It("should return a typed not found error for a missing split", func() {
			err := repo.UpdateSplitPaid(ctx, 999, true)
			Expect(err).To(Equal(internal.ErrSplitNotFound))
		})
	})
})

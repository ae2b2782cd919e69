package balance_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/wisnuadi/splitledger/internal/auth"
	"github.com/wisnuadi/splitledger/internal/balance"
	expenseDatamodel "github.com/wisnuadi/splitledger/internal/core/datamodel/expense"
	"github.com/wisnuadi/splitledger/internal/transport"
)

var _ = Describe("Balance Handler Integration", func() {
	var (
		repo    *mockBalanceRepository
		service *balance.Service
		handler *balance.Handler
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		gid := int64(5)
		repo = &mockBalanceRepository{
			owned: []*expenseDatamodel.Expense{
				{ID: 1, UserID: 7, CategoryID: 2, Amount: decimal.RequireFromString("31.00")},
			},
			onOwned: []balance.Obligation{
				{SplitID: 1, ExpenseID: 1, UserID: 9, OwnerID: 7, GroupID: &gid, Amount: decimal.RequireFromString("15.50")},
			},
		}
		service = balance.NewService(repo, slogger)
		baseHandler := &transport.BaseHandler{Logger: slogger}
		handler = balance.NewHandler(baseHandler, service)
	})

	It("should return the authenticated user's report", func() {
		req := httptest.NewRequest(http.MethodGet, "/balances", nil)
		ctx := context.WithValue(req.Context(), auth.ContextUserKey, &auth.User{ID: 7, Email: "alice@mail.com"})
		w := httptest.NewRecorder()

		handler.GetBalances(w, req.WithContext(ctx))

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Header().Get("Content-Type")).To(ContainSubstring("application/json"))

		var report balance.Report
		Expect(json.NewDecoder(w.Body).Decode(&report)).To(Succeed())
		Expect(report.TotalSpent.Equal(decimal.RequireFromString("31.00"))).To(BeTrue())
		Expect(report.YouAreOwed.Total.Equal(decimal.RequireFromString("15.50"))).To(BeTrue())
		Expect(report.YouAreOwed.Count).To(Equal(1))
	})

	It("should reject a request without an authenticated user", func() {
		req := httptest.NewRequest(http.MethodGet, "/balances", nil)
		w := httptest.NewRecorder()

		handler.GetBalances(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})
})

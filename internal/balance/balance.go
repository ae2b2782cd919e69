// Package balance turns stored expenses and splits into per-user debt and
// spending summaries. Reports are always recomputed from source records;
// nothing here is cached or persisted.
package balance

import (
	"github.com/shopspring/decimal"

	expenseDatamodel "github.com/wisnuadi/splitledger/internal/core/datamodel/expense"
)

// Obligation pairs a split row with the facts about its owning expense that
// the engine needs: who created the expense and which group it belongs to.
type Obligation struct {
	SplitID   int64
	ExpenseID int64
	UserID    int64 // the split's participant
	OwnerID   int64 // the owning expense's creator
	GroupID   *int64
	Amount    decimal.Decimal
	Paid      bool
}

// DebtSummary aggregates one direction of a user's debt relationships.
// Count is the number of open obligation rows, not distinct counterparties;
// Groups is the number of distinct groups those obligations came from.
type DebtSummary struct {
	Total  decimal.Decimal `json:"total"`
	Count  int             `json:"count"`
	Groups int             `json:"groups"`
}

// Report is the computed balances view for one user. TotalByCategory is
// sparse: categories with zero spend are absent, and absence means zero.
type Report struct {
	TotalSpent      decimal.Decimal           `json:"total_spent"`
	YouOwe          DebtSummary               `json:"you_owe"`
	YouAreOwed      DebtSummary               `json:"you_are_owed"`
	TotalByCategory map[int64]decimal.Decimal `json:"total_by_category"`
}

// Compute aggregates a user's balances from already-fetched collections:
// owned is every expense the user created, forUser is every split naming the
// user, and onOwned is every split attached to the user's own expenses.
//
// TotalSpent counts the user's full outlay regardless of split status. The
// debt directions only count unpaid splits, and self-splits (the owner's own
// share of a shared expense) count in neither direction.
func Compute(userID int64, owned []*expenseDatamodel.Expense, forUser, onOwned []Obligation) Report {
	report := Report{
		TotalSpent:      decimal.Zero,
		YouOwe:          DebtSummary{Total: decimal.Zero},
		YouAreOwed:      DebtSummary{Total: decimal.Zero},
		TotalByCategory: make(map[int64]decimal.Decimal),
	}

	for _, e := range owned {
		report.TotalSpent = report.TotalSpent.Add(e.Amount)
		if current, ok := report.TotalByCategory[e.CategoryID]; ok {
			report.TotalByCategory[e.CategoryID] = current.Add(e.Amount)
		} else {
			report.TotalByCategory[e.CategoryID] = e.Amount
		}
	}

	oweGroups := make(map[int64]struct{})
	for _, o := range forUser {
		if o.Paid || o.OwnerID == userID {
			continue
		}
		report.YouOwe.Total = report.YouOwe.Total.Add(o.Amount)
		report.YouOwe.Count++
		if o.GroupID != nil {
			oweGroups[*o.GroupID] = struct{}{}
		}
	}
	report.YouOwe.Groups = len(oweGroups)

	owedGroups := make(map[int64]struct{})
	for _, o := range onOwned {
		if o.Paid || o.UserID == userID {
			continue
		}
		report.YouAreOwed.Total = report.YouAreOwed.Total.Add(o.Amount)
		report.YouAreOwed.Count++
		if o.GroupID != nil {
			owedGroups[*o.GroupID] = struct{}{}
		}
	}
	report.YouAreOwed.Groups = len(owedGroups)

	return report
}

// Package split divides an expense amount into per-participant shares that
// sum exactly to the total, working in minor units (cents) so no remainder
// is ever lost to rounding.
package split

import (
	"github.com/shopspring/decimal"

	"github.com/wisnuadi/splitledger/internal"
)

// Share is one participant's allocated portion of an expense.
type Share struct {
	UserID int64           `json:"user_id"`
	Amount decimal.Decimal `json:"amount"`
}

var hundred = decimal.NewFromInt(100)

// Allocate splits total equally across participants. Each participant gets
// floor(total/n) cents; the remainder is handed out one cent at a time to the
// first participants in input order. Callers must pass participants in a
// stable order (ascending user id from membership enumeration) so repeated
// calls produce identical shares.
func Allocate(total decimal.Decimal, participants []int64) ([]Share, error) {
	if len(participants) == 0 {
		return nil, internal.ErrInvalidAllocation
	}
	if !total.IsPositive() {
		return nil, internal.ErrInvalidAllocation
	}
	if !total.Equal(total.Round(2)) {
		return nil, internal.ErrInvalidAllocation
	}

	n := int64(len(participants))
	cents := total.Mul(hundred).IntPart()
	base := cents / n
	remainder := cents % n

	shares := make([]Share, len(participants))
	for i, userID := range participants {
		c := base
		if int64(i) < remainder {
			c++
		}
		shares[i] = Share{
			UserID: userID,
			Amount: decimal.New(c, -2),
		}
	}

	return shares, nil
}

// Sum returns the total of the given shares. Used at the write boundary to
// re-check the sum invariant before splits are persisted.
func Sum(shares []Share) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s.Amount)
	}
	return total
}

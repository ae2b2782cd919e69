package split_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/wisnuadi/splitledger/internal/split"
)

func TestSplitAllocator(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "SplitAllocator Suite")
}

func participants(n int) []int64 {
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	return ids
}

var _ = Describe("Allocate", func() {
	Describe("equal splits", func() {
		It("should divide an amount with no remainder evenly", func() {
			shares, err := split.Allocate(decimal.RequireFromString("10.00"), participants(4))
			Expect(err).NotTo(HaveOccurred())
			Expect(shares).To(HaveLen(4))
			for _, s := range shares {
				Expect(s.Amount.String()).To(Equal("2.5"))
			}
		})

		It("should give the leftover cents to the first participants in order", func() {
			shares, err := split.Allocate(decimal.RequireFromString("10.00"), participants(3))
			Expect(err).NotTo(HaveOccurred())
			Expect(shares[0].Amount.String()).To(Equal("3.34"))
			Expect(shares[1].Amount.String()).To(Equal("3.33"))
			Expect(shares[2].Amount.String()).To(Equal("3.33"))
		})

		It("should assign the whole amount to a single participant", func() {
			shares, err := split.Allocate(decimal.RequireFromString("31.00"), []int64{7})
			Expect(err).NotTo(HaveOccurred())
			Expect(shares).To(HaveLen(1))
			Expect(shares[0].UserID).To(Equal(int64(7)))
			Expect(shares[0].Amount.Equal(decimal.RequireFromString("31.00"))).To(BeTrue())
		})

		It("should preserve the participant order in the result", func() {
			ids := []int64{42, 3, 17}
			shares, err := split.Allocate(decimal.RequireFromString("5.00"), ids)
			Expect(err).NotTo(HaveOccurred())
			for i, s := range shares {
				Expect(s.UserID).To(Equal(ids[i]))
			}
		})
	})

	Describe("sum invariant", func() {
		It("should sum exactly to the total for every group size up to 50", func() {
			totals := []string{"0.01", "0.99", "1.00", "10.00", "31.00", "99.97", "1234.56"}
			for _, t := range totals {
				total := decimal.RequireFromString(t)
				for n := 1; n <= 50; n++ {
					shares, err := split.Allocate(total, participants(n))
					Expect(err).NotTo(HaveOccurred())
					Expect(split.Sum(shares).Equal(total)).To(BeTrue(),
						"total %s over %d participants", t, n)
				}
			}
		})

		It("should never spread shares more than one cent apart", func() {
			shares, err := split.Allocate(decimal.RequireFromString("100.01"), participants(7))
			Expect(err).NotTo(HaveOccurred())
			min, max := shares[0].Amount, shares[0].Amount
			for _, s := range shares[1:] {
				if s.Amount.LessThan(min) {
					min = s.Amount
				}
				if s.Amount.GreaterThan(max) {
					max = s.Amount
				}
			}
			Expect(max.Sub(min).LessThanOrEqual(decimal.RequireFromString("0.01"))).To(BeTrue())
		})
	})

	Describe("determinism", func() {
		It("should yield identical output for identical ordered input", func() {
			total := decimal.RequireFromString("77.77")
			first, err := split.Allocate(total, participants(6))
			Expect(err).NotTo(HaveOccurred())
			second, err := split.Allocate(total, participants(6))
			Expect(err).NotTo(HaveOccurred())
			Expect(second).To(Equal(first))
		})
	})

	Describe("invalid input", func() {
		It("should reject an empty participant list", func() {
			_, err := split.Allocate(decimal.RequireFromString("10.00"), nil)
			Expect(err).To(MatchError("cannot allocate: need a positive total and at least one participant"))
		})

		It("should reject a zero total", func() {
			_, err := split.Allocate(decimal.Zero, participants(2))
			Expect(err).To(HaveOccurred())
		})

		It("should reject a negative total", func() {
			_, err := split.Allocate(decimal.RequireFromString("-1.00"), participants(2))
			Expect(err).To(HaveOccurred())
		})

		It("should reject totals with sub-cent precision", func() {
			_, err := split.Allocate(decimal.RequireFromString("10.001"), participants(2))
			Expect(err).To(HaveOccurred())
		})
	})
})

package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDays(t *testing.T) {
	t.Run("Same day is one day", func(t *testing.T) {
		start := date(2024, 1, 1)
		assert.Equal(t, int64(1), Days(start, start))
	})

	t.Run("Partial day rounds up", func(t *testing.T) {
		start := date(2024, 1, 1)
		assert.Equal(t, int64(2), Days(start, start.Add(25*time.Hour)))
	})

	t.Run("Exact days", func(t *testing.T) {
		assert.Equal(t, int64(3), Days(date(2024, 1, 1), date(2024, 1, 4)))
	})

	t.Run("Inverted range clamps to one", func(t *testing.T) {
		assert.Equal(t, int64(1), Days(date(2024, 1, 4), date(2024, 1, 1)))
	})
}

func TestCompute(t *testing.T) {
	t.Run("Rate times days", func(t *testing.T) {
		// rate=100/day, Jan 1 to Jan 4 -> 3 days, subtotal 300.
		b := Compute(10000, date(2024, 1, 1), date(2024, 1, 4), Fees{}, 0, 0)
		assert.Equal(t, int64(3), b.Days)
		assert.Equal(t, int64(30000), b.SubtotalCents)
		assert.Equal(t, int64(30000), b.TotalCents)
		assert.Equal(t, int64(30000), b.BalanceDueCents)
	})

	t.Run("Fees and discount", func(t *testing.T) {
		fees := Fees{DriverCents: 5000, DeliveryCents: 2000, FuelCents: 1000, MileageCents: 500}
		b := Compute(10000, date(2024, 1, 1), date(2024, 1, 3), fees, 1500, 10000)
		assert.Equal(t, int64(2), b.Days)
		assert.Equal(t, int64(20000), b.SubtotalCents)
		assert.Equal(t, int64(20000+8500-1500), b.TotalCents)
		assert.Equal(t, b.TotalCents-10000, b.BalanceDueCents)
	})

	t.Run("Deterministic", func(t *testing.T) {
		fees := Fees{DriverCents: 1234}
		a := Compute(9999, date(2024, 2, 10), date(2024, 3, 2), fees, 777, 5000)
		b := Compute(9999, date(2024, 2, 10), date(2024, 3, 2), fees, 777, 5000)
		assert.Equal(t, a, b)
	})
}

func TestDeposit(t *testing.T) {
	t.Run("Ten percent of 300", func(t *testing.T) {
		assert.Equal(t, int64(3000), Deposit(30000, 10))
	})

	t.Run("Zero percentage yields zero", func(t *testing.T) {
		assert.Equal(t, int64(0), Deposit(30000, 0))
	})

	t.Run("Rounds half up", func(t *testing.T) {
		// 10% of 10.05 = 1.005 -> 1.01
		assert.Equal(t, int64(101), Deposit(1005, 10))
	})

	t.Run("Conversion deposit is exactly thirty percent", func(t *testing.T) {
		assert.Equal(t, int64(9000), Deposit(30000, QuoteConversionDepositPct))
		assert.Equal(t, int64(3015), Deposit(10050, QuoteConversionDepositPct))
	})
}

// Package pricing derives day counts, totals and deposits for reservations,
// quotes and contracts. All arithmetic is integer cents so two-fractional-
// digit money never touches binary floating point.
package pricing

import "time"

const hoursPerDay = 24

// Fees are the optional surcharges added on top of the daily rate.
// Absent fees are zero.
type Fees struct {
	DriverCents   int64
	DeliveryCents int64
	FuelCents     int64
	MileageCents  int64
}

func (f Fees) SumCents() int64 {
	return f.DriverCents + f.DeliveryCents + f.FuelCents + f.MileageCents
}

// Breakdown is the computed pricing snapshot stored on reservations and
// quotes.
type Breakdown struct {
	Days            int64
	SubtotalCents   int64
	TotalCents      int64
	BalanceDueCents int64
}

// Days counts billable days over [start, end): partial days round up and
// the count floors at 1, so a same-day rental is one day and a 25-hour one
// is two. Inverted ranges also clamp to 1; rejecting them is the caller's
// decision, not this function's.
func Days(start, end time.Time) int64 {
	d := end.Sub(start)
	days := int64(d / (hoursPerDay * time.Hour))
	if d%(hoursPerDay*time.Hour) > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// Compute derives the full pricing snapshot from a daily rate, a date
// range, surcharges, a discount and the down payment already collected.
func Compute(dailyRateCents int64, start, end time.Time, fees Fees, discountCents, downPaymentCents int64) Breakdown {
	days := Days(start, end)
	subtotal := dailyRateCents * days
	total := subtotal + fees.SumCents() - discountCents
	return Breakdown{
		Days:            days,
		SubtotalCents:   subtotal,
		TotalCents:      total,
		BalanceDueCents: total - downPaymentCents,
	}
}

// Deposit applies a whole-number percentage to a total, rounding half up.
// A zero percentage yields a zero deposit; the settings layer decides what
// a missing configuration value means.
func Deposit(totalCents int64, percentage int64) int64 {
	if percentage <= 0 {
		return 0
	}
	return (totalCents*percentage + 50) / 100
}

// QuoteConversionDepositPct is the fixed deposit percentage applied when a
// quote becomes a contract. Deliberately independent of the configurable
// caution_percentage used for reservations.
const QuoteConversionDepositPct = 30

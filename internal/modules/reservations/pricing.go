package reservations

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const hoursPerDay = 24

// Quote is the priced outcome of a date range against a daily rate.
type Quote struct {
	Days  int
	Total decimal.Decimal
}

// RentalDays bills every started day: the duration is rounded up, and a
// same-day booking still counts as one day.
func RentalDays(start, end time.Time) int {
	days := int(math.Ceil(end.Sub(start).Hours() / hoursPerDay))
	if days < 1 {
		days = 1
	}
	return days
}

// ComputePrice derives days and total from the rate, an optional discount
// and extra fees. The total clamps at zero: a discount can never make the
// rental pay the client.
func ComputePrice(dailyRate decimal.Decimal, start, end time.Time, discount decimal.Decimal, extraFees ...decimal.Decimal) Quote {
	days := RentalDays(start, end)

	total := dailyRate.Mul(decimal.NewFromInt(int64(days))).Sub(discount)
	for _, fee := range extraFees {
		total = total.Add(fee)
	}
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Quote{Days: days, Total: total}
}

// Package summary totals an amortization schedule with exact decimal
// arithmetic and measures what lump sums saved against the same loan
// without them.
package summary

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iwvelando/amortizer/pkg/constants"
	"github.com/iwvelando/amortizer/pkg/datetime"
	"github.com/iwvelando/amortizer/pkg/loans"
)

// Summary holds the totals of one schedule. Monetary totals are sums of
// the rounded per-month values shown to the user.
type Summary struct {
	MonthlyPayment    decimal.Decimal
	Months            int
	FinalDate         time.Time // month of the last row
	TotalInterest     decimal.Decimal
	TotalPrincipal    decimal.Decimal
	TotalLumpSums     decimal.Decimal // only what was applied; see appliedLumpSum
	TotalPaid         decimal.Decimal
	PayoffDate        *time.Time
	EquityReachedDate *time.Time
}

// Savings compares a schedule with lump sums against its baseline.
type Savings struct {
	MonthsSaved   int
	InterestSaved decimal.Decimal
}

// Summarize totals schedule. Only lump sums that fall inside the schedule
// count toward TotalLumpSums.
func Summarize(schedule *loans.Schedule, lumpSums loans.LumpSums) Summary {
	s := Summary{
		MonthlyPayment:    decimal.NewFromFloat(schedule.MonthlyPayment).Round(constants.DecimalPlaces),
		Months:            schedule.Len(),
		TotalInterest:     decimal.Zero,
		TotalPrincipal:    decimal.Zero,
		TotalLumpSums:     decimal.Zero,
		EquityReachedDate: schedule.EquityReachedDate,
	}

	for _, entry := range schedule.Entries {
		s.TotalInterest = s.TotalInterest.Add(decimal.NewFromFloat(entry.Interest))
		s.TotalPrincipal = s.TotalPrincipal.Add(decimal.NewFromFloat(entry.Principal))
	}
	for month, amount := range lumpSums {
		if month >= 1 && month <= schedule.Len() {
			s.TotalLumpSums = s.TotalLumpSums.Add(appliedLumpSum(schedule, s.MonthlyPayment, month, amount))
		}
	}
	s.TotalLumpSums = s.TotalLumpSums.Round(constants.DecimalPlaces)
	s.TotalPaid = s.TotalInterest.Add(s.TotalPrincipal)

	if schedule.Len() > 0 {
		s.FinalDate = schedule.Entries[schedule.Len()-1].Date
	}
	if payoff, ok := schedule.PayoffDate(); ok {
		s.PayoffDate = &payoff
	}
	return s
}

// appliedLumpSum returns the part of amount that reduced the balance. Only
// the paid-off final row can cut a lump sum short: its principal is the
// balance that was owed, so the lump sum covers what the regular payment
// did not.
func appliedLumpSum(schedule *loans.Schedule, payment decimal.Decimal, month int, amount float64) decimal.Decimal {
	applied := decimal.NewFromFloat(amount)
	if month != schedule.Len() || !applied.IsPositive() {
		return applied
	}
	if _, paidOff := schedule.PayoffDate(); !paidOff {
		return applied
	}

	final := schedule.Entries[month-1]
	regular := payment.Sub(decimal.NewFromFloat(final.Interest))
	owed := decimal.NewFromFloat(final.Principal).Sub(regular)
	if owed.LessThan(applied) {
		applied = decimal.Max(owed, decimal.Zero)
	}
	return applied
}

// Compare reports how many months and how much interest actual saves
// relative to baseline. Negative values mean actual costs more.
func Compare(baseline, actual Summary) Savings {
	monthsSaved := baseline.Months - actual.Months
	if !baseline.FinalDate.IsZero() && !actual.FinalDate.IsZero() {
		monthsSaved = datetime.MonthsBetween(actual.FinalDate, baseline.FinalDate)
	}
	return Savings{
		MonthsSaved:   monthsSaved,
		InterestSaved: baseline.TotalInterest.Sub(actual.TotalInterest),
	}
}

// Package report runs the amortization engine for one loan and gathers the
// schedule, its totals and per-month notes for presentation.
package report

import (
	"fmt"

	"github.com/iwvelando/amortizer/pkg/datetime"
	"github.com/iwvelando/amortizer/pkg/loans"
	"github.com/iwvelando/amortizer/pkg/summary"
	"go.uber.org/zap"
)

// Report holds everything a presentation sink needs for one loan.
type Report struct {
	Parameters loans.Parameters
	LumpSums   loans.LumpSums
	Schedule   *loans.Schedule
	Summary    summary.Summary
	// Savings is nil when no lump sum landed inside the schedule.
	Savings *summary.Savings
	// Notes are keyed by YYYY-MM.
	Notes map[string][]string
}

// GetReport computes the schedule for params and lumpSums. When lump sums
// are applied it also computes the plain schedule to report the savings.
func GetReport(logger *zap.Logger, params loans.Parameters, lumpSums loans.LumpSums) (*Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if lumpSums == nil {
		lumpSums = make(loans.LumpSums)
	}

	generator := loans.NewScheduleGenerator(logger)
	schedule, err := generator.GenerateSchedule(params, lumpSums)
	if err != nil {
		return nil, fmt.Errorf("failed to compute schedule: %w", err)
	}
	if !schedule.Amortizes() {
		logger.Warn("monthly payment does not cover the first month's interest; the loan will not amortize",
			zap.String("op", "report.GetReport"),
			zap.Float64("monthly_payment", schedule.MonthlyPayment),
		)
	}

	result := &Report{
		Parameters: params,
		LumpSums:   lumpSums,
		Schedule:   schedule,
		Summary:    summary.Summarize(schedule, lumpSums),
		Notes:      make(map[string][]string),
	}

	if !result.Summary.TotalLumpSums.IsZero() {
		baseline, err := loans.ComputeSchedule(params, nil)
		if err != nil {
			return nil, fmt.Errorf("failed to compute baseline schedule: %w", err)
		}
		savings := summary.Compare(summary.Summarize(baseline, nil), result.Summary)
		result.Savings = &savings
		logger.Debug(fmt.Sprintf("lump sums save %d months and %s in interest",
			savings.MonthsSaved, savings.InterestSaved.StringFixed(2)),
			zap.String("op", "report.GetReport"),
		)
	}

	result.addNotes()
	return result, nil
}

func (r *Report) addNotes() {
	for i, entry := range r.Schedule.Entries {
		date := datetime.Format(entry.Date)
		if amount, ok := r.LumpSums[i+1]; ok {
			r.Notes[date] = append(r.Notes[date], fmt.Sprintf("lump sum %.2f", amount))
		}
	}
	if r.Schedule.EquityReachedDate != nil {
		date := datetime.Format(*r.Schedule.EquityReachedDate)
		r.Notes[date] = append(r.Notes[date], EquityNote(r.Parameters.EquityPercentage))
	}
	if payoff, ok := r.Schedule.PayoffDate(); ok {
		date := datetime.Format(payoff)
		r.Notes[date] = append(r.Notes[date], "loan paid off")
	}
}

// EquityNote is the annotation used for the month the equity threshold is
// reached, e.g. "20% equity reached".
func EquityNote(equityPercentage float64) string {
	return fmt.Sprintf("%g%% equity reached", equityPercentage)
}

// Package loans provides the loan amortization engine.
package loans

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/iwvelando/amortizer/pkg/constants"
	"github.com/iwvelando/amortizer/pkg/datetime"
	"github.com/iwvelando/amortizer/pkg/mathutil"
	"go.uber.org/zap"
)

// ErrInvalidInput is returned when loan parameters cannot produce a schedule.
var ErrInvalidInput = errors.New("invalid input")

// Parameters holds the inputs for one amortization run.
type Parameters struct {
	Principal         float64
	AnnualRatePercent float64 // 5 means 5%
	TermYears         int
	StartDate         time.Time
	HomeValue         float64
	EquityPercentage  float64 // share of HomeValue that must be paid off
}

// LumpSums maps a 1-based month index to an extra principal payment made
// in that month.
type LumpSums map[int]float64

// Entry holds the values for one month of the schedule, rounded to cents.
type Entry struct {
	Date      time.Time
	Interest  float64
	Principal float64
	Balance   float64
}

// Schedule is the result of an amortization run.
type Schedule struct {
	Parameters      Parameters
	Entries         []Entry
	MonthlyPayment  float64
	EquityThreshold float64
	// EquityReachedDate is the first month whose balance fell to or below
	// EquityThreshold, or nil if that never happened.
	EquityReachedDate *time.Time
}

// Months returns the number of monthly periods in the loan term.
func (p Parameters) Months() int {
	return p.TermYears * constants.MonthsPerYear
}

// EquityThreshold returns the balance at or below which the configured
// equity percentage of the home value has been paid off.
func (p Parameters) EquityThreshold() float64 {
	return p.HomeValue * (1 - p.EquityPercentage/constants.PercentageMultiplier)
}

// Validate checks that the parameters describe a loan the engine can
// amortize. Errors wrap ErrInvalidInput.
func (p Parameters) Validate() error {
	if p.TermYears < 1 {
		return fmt.Errorf("%w: term must be at least 1 year, got %d", ErrInvalidInput, p.TermYears)
	}
	if p.TermYears > constants.MaxTermYears || p.Months() < 1 {
		return fmt.Errorf("%w: term must be at most %d years, got %d", ErrInvalidInput, constants.MaxTermYears, p.TermYears)
	}
	if !mathutil.IsFinite(p.Principal) || p.Principal <= 0 {
		return fmt.Errorf("%w: principal must be positive, got %v", ErrInvalidInput, p.Principal)
	}
	if !mathutil.IsFinite(p.HomeValue) || p.HomeValue <= 0 {
		return fmt.Errorf("%w: home value must be positive, got %v", ErrInvalidInput, p.HomeValue)
	}
	if !mathutil.IsFinite(p.AnnualRatePercent) || p.AnnualRatePercent < 0 {
		return fmt.Errorf("%w: interest rate must not be negative, got %v", ErrInvalidInput, p.AnnualRatePercent)
	}
	if !mathutil.IsFinite(p.EquityPercentage) {
		return fmt.Errorf("%w: equity percentage must be a number, got %v", ErrInvalidInput, p.EquityPercentage)
	}
	if p.StartDate.IsZero() {
		return fmt.Errorf("%w: start month is required", ErrInvalidInput)
	}
	return nil
}

// MonthlyRate converts an annual percentage rate into a periodic monthly rate.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / constants.PercentageMultiplier / constants.MonthsPerYear
}

// CalculateMonthlyPayment calculates the fixed monthly payment for a loan
// using the standard amortization formula.
func CalculateMonthlyPayment(principal, annualRatePercent float64, termMonths int) float64 {
	if annualRatePercent == 0 {
		// The general formula has a removable singularity at a zero rate.
		return principal / float64(termMonths)
	}

	monthlyRate := MonthlyRate(annualRatePercent)
	return principal * monthlyRate / (1 - math.Pow(1+monthlyRate, -float64(termMonths)))
}

// CalculateInterestPayment calculates the interest accrued on a balance
// over one month.
func CalculateInterestPayment(balance, annualRatePercent float64) float64 {
	return balance * MonthlyRate(annualRatePercent)
}

// ScheduleGenerator produces amortization schedules, logging notable
// events at debug level.
type ScheduleGenerator struct {
	logger *zap.Logger
}

// NewScheduleGenerator creates a new generator instance
func NewScheduleGenerator(logger *zap.Logger) *ScheduleGenerator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleGenerator{logger: logger}
}

// ComputeSchedule builds the amortization schedule for params without
// logging.
func ComputeSchedule(params Parameters, lumpSums LumpSums) (*Schedule, error) {
	return NewScheduleGenerator(nil).GenerateSchedule(params, lumpSums)
}

// GenerateSchedule builds the month-by-month schedule. The monthly payment
// is fixed for the life of the loan; lump sums shorten the schedule rather
// than lowering the payment.
func (g *ScheduleGenerator) GenerateSchedule(params Parameters, lumpSums LumpSums) (*Schedule, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	months := params.Months()
	monthlyPayment := CalculateMonthlyPayment(params.Principal, params.AnnualRatePercent, months)
	threshold := params.EquityThreshold()

	schedule := &Schedule{
		Parameters:      params,
		Entries:         make([]Entry, 0, months),
		MonthlyPayment:  monthlyPayment,
		EquityThreshold: threshold,
	}

	balance := params.Principal
	date := datetime.FirstOfMonth(params.StartDate)

	for month := 1; month <= months; month++ {
		interest := CalculateInterestPayment(balance, params.AnnualRatePercent)
		principal := monthlyPayment - interest
		balance -= principal

		if extra, ok := lumpSums[month]; ok {
			g.logger.Debug(fmt.Sprintf("%s: applying lump sum payment %.2f", datetime.Format(date), extra),
				zap.String("op", "loans.GenerateSchedule"),
				zap.Int("month", month),
			)
			balance -= extra
			principal += extra
		}

		// Checked before the clamp so an overshooting final payment still
		// counts toward the threshold.
		if schedule.EquityReachedDate == nil && balance <= threshold {
			reached := date
			schedule.EquityReachedDate = &reached
			g.logger.Debug(fmt.Sprintf("%s: equity threshold %.2f reached", datetime.Format(date), threshold),
				zap.String("op", "loans.GenerateSchedule"),
				zap.Int("month", month),
			)
		}

		if balance < 0 {
			principal += balance
			balance = 0
		}

		schedule.Entries = append(schedule.Entries, Entry{
			Date:      date,
			Interest:  mathutil.Round(interest),
			Principal: mathutil.Round(principal),
			Balance:   mathutil.Round(balance),
		})

		if balance <= 0 {
			if month < months {
				g.logger.Debug(fmt.Sprintf("%s: loan paid off %d months early", datetime.Format(date), months-month),
					zap.String("op", "loans.GenerateSchedule"),
				)
			}
			break
		}

		date = datetime.NextMonth(date)
	}

	return schedule, nil
}

// Len returns the number of months in the schedule.
func (s *Schedule) Len() int {
	return len(s.Entries)
}

// PayoffDate returns the month in which the balance reached zero. The
// second return value is false when the schedule ends with a balance
// still owed.
func (s *Schedule) PayoffDate() (time.Time, bool) {
	if len(s.Entries) == 0 {
		return time.Time{}, false
	}
	last := s.Entries[len(s.Entries)-1]
	if !mathutil.IsZero(last.Balance) {
		return time.Time{}, false
	}
	return last.Date, true
}

// Amortizes reports whether the monthly payment covers more than the first
// month's interest. When it does not, the balance never goes down and the
// schedule runs the full term without paying the loan off.
func (s *Schedule) Amortizes() bool {
	if len(s.Entries) == 0 {
		return false
	}
	return s.MonthlyPayment > CalculateInterestPayment(s.Parameters.Principal, s.Parameters.AnnualRatePercent)
}

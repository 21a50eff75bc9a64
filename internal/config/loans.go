package config

import (
	"fmt"
	"sort"

	"github.com/iwvelando/amortizer/pkg/constants"
	"github.com/iwvelando/amortizer/pkg/datetime"
	"github.com/iwvelando/amortizer/pkg/loans"
	"github.com/iwvelando/amortizer/pkg/lumpsum"
)

// Loan holds the loan parameters as entered by the user.
type Loan struct {
	Principal        float64        `yaml:"principal"`
	InterestRate     float64        `yaml:"interestRate"` // annual, percent
	TermYears        int            `yaml:"termYears"`
	StartMonth       string         `yaml:"startMonth"` // MM/YYYY or YYYY-MM
	HomeValue        float64        `yaml:"homeValue"`
	EquityPercentage float64        `yaml:"equityPercentage"`
	LumpSums         string         `yaml:"lumpSums,omitempty"` // e.g. 12:1000,24:500
	ExtraPayments    []ExtraPayment `yaml:"extraPayments,omitempty"`
}

// ExtraPayment is a one-time extra principal payment in the given 1-based
// month of the loan.
type ExtraPayment struct {
	Month  int     `yaml:"month"`
	Amount float64 `yaml:"amount"`
}

// DefaultLoan returns the loan the web form starts with.
func DefaultLoan() Loan {
	return Loan{
		Principal:        300000,
		InterestRate:     5,
		TermYears:        30,
		StartMonth:       "04/2024",
		HomeValue:        375000,
		EquityPercentage: 20,
	}
}

// Parameters converts the loan into validated engine inputs. Lump sums
// from the text form and the extraPayments list are merged, summing any
// month named more than once. Malformed lump sums are skipped and returned
// as warnings.
func (l Loan) Parameters() (loans.Parameters, loans.LumpSums, []string, error) {
	startDate, err := datetime.ParseMonth(l.StartMonth)
	if err != nil {
		return loans.Parameters{}, nil, nil, err
	}

	params := loans.Parameters{
		Principal:         l.Principal,
		AnnualRatePercent: l.InterestRate,
		TermYears:         l.TermYears,
		StartDate:         startDate,
		HomeValue:         l.HomeValue,
		EquityPercentage:  l.EquityPercentage,
	}
	if err := params.Validate(); err != nil {
		return loans.Parameters{}, nil, nil, err
	}

	lumpSums, warnings := l.lumpSums()
	return params, lumpSums, warnings, nil
}

func (l Loan) lumpSums() (loans.LumpSums, []string) {
	lumpSums, skipped := lumpsum.Parse(l.LumpSums)

	var warnings []string
	for _, s := range skipped {
		warnings = append(warnings, s.String())
	}
	for _, extra := range l.ExtraPayments {
		if extra.Month < 1 {
			warnings = append(warnings, fmt.Sprintf("ignoring extra payment of %.2f: month must be at least 1, got %d",
				extra.Amount, extra.Month))
			continue
		}
		lumpsum.Add(lumpSums, extra.Month, extra.Amount)
	}
	return lumpSums, warnings
}

// Warnings reports loan settings that are accepted but probably not what
// the user meant.
func (l Loan) Warnings() []string {
	var warnings []string

	if l.EquityPercentage < 0 || l.EquityPercentage > constants.PercentageMultiplier {
		warnings = append(warnings, fmt.Sprintf("equity percentage %g is outside 0-100", l.EquityPercentage))
	}

	lumpSums, _ := l.lumpSums()
	lumpMonths := make([]int, 0, len(lumpSums))
	for month := range lumpSums {
		lumpMonths = append(lumpMonths, month)
	}
	sort.Ints(lumpMonths)

	months := l.TermYears * constants.MonthsPerYear
	for _, month := range lumpMonths {
		amount := lumpSums[month]
		if month > months {
			warnings = append(warnings, fmt.Sprintf("lump sum in month %d is after the last month (%d) and will not be applied",
				month, months))
		}
		if amount < 0 {
			warnings = append(warnings, fmt.Sprintf("lump sum in month %d is negative (%.2f) and will increase the balance",
				month, amount))
		}
	}

	if l.Principal > 0 && l.TermYears > 0 && l.InterestRate > 0 {
		payment := loans.CalculateMonthlyPayment(l.Principal, l.InterestRate, months)
		if payment <= loans.CalculateInterestPayment(l.Principal, l.InterestRate) {
			warnings = append(warnings, "monthly payment does not cover the first month's interest; the loan will not amortize")
		}
	}

	return warnings
}

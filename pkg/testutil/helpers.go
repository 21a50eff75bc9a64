// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/iwvelando/amortizer/pkg/datetime"
	"github.com/iwvelando/amortizer/pkg/loans"
)

// ReferenceParameters returns the default loan from the web form: 300000
// at 5% over 30 years from April 2024 on a 375000 home, flagging 20% equity.
func ReferenceParameters() loans.Parameters {
	return loans.Parameters{
		Principal:         300000,
		AnnualRatePercent: 5,
		TermYears:         30,
		StartDate:         datetime.MustParseTime(datetime.DateTimeLayout, "2024-04"),
		HomeValue:         375000,
		EquityPercentage:  20,
	}
}

// ReferenceSchedule computes the schedule for ReferenceParameters with the
// given lump sums and panics on error.
func ReferenceSchedule(lumpSums loans.LumpSums) *loans.Schedule {
	schedule, err := loans.ComputeSchedule(ReferenceParameters(), lumpSums)
	if err != nil {
		panic(err)
	}
	return schedule
}

// Package datetime provides month-granular date utility functions.
package datetime

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iwvelando/amortizer/pkg/constants"
)

const (
	// DateTimeLayout is the canonical YYYY-MM format used in output.
	DateTimeLayout = constants.DateTimeLayout

	// FormMonthLayout is the MM/YYYY format accepted from the loan form.
	FormMonthLayout = constants.FormMonthLayout

	// FormMonthParseLayout parses M/YYYY as well as MM/YYYY.
	FormMonthParseLayout = constants.FormMonthParseLayout
)

// ErrInvalidMonth is returned when a month string cannot be parsed.
var ErrInvalidMonth = errors.New("invalid month")

// MustParseTime parses a date string using the given layout and panics on error.
// This is intended for use in tests where the date string is known to be valid.
func MustParseTime(layout, dateStr string) time.Time {
	t, err := time.Parse(layout, dateStr)
	if err != nil {
		panic(err)
	}
	return t
}

// ParseMonth parses a month given either as MM/YYYY (the leading zero is
// optional) or YYYY-MM and returns the first day of that month in UTC.
func ParseMonth(value string) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrInvalidMonth)
	}

	layout := DateTimeLayout
	if strings.Contains(trimmed, "/") {
		layout = FormMonthParseLayout
	}

	t, err := time.Parse(layout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q: expected MM/YYYY or YYYY-MM", ErrInvalidMonth, value)
	}
	return FirstOfMonth(t), nil
}

// FirstOfMonth truncates t to the first day of its month in UTC.
func FirstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// NextMonth returns the first day of the calendar month after t. December
// rolls over to January of the following year.
func NextMonth(t time.Time) time.Time {
	return AddMonths(t, 1)
}

// AddMonths offsets t by the given number of calendar months, keeping the
// day pinned to the 1st so no month is ever skipped.
func AddMonths(t time.Time, months int) time.Time {
	return FirstOfMonth(t).AddDate(0, months, 0)
}

// Format renders t in the canonical YYYY-MM layout.
func Format(t time.Time) string {
	return t.Format(DateTimeLayout)
}

// Label renders t as a short month label such as "Apr 2024".
func Label(t time.Time) string {
	return t.Format(constants.MonthLabelLayout)
}

// MonthsBetween returns the number of whole calendar months from first to
// second; the result is negative when second is before first.
func MonthsBetween(first, second time.Time) int {
	return (second.Year()-first.Year())*constants.MonthsPerYear + int(second.Month()) - int(first.Month())
}

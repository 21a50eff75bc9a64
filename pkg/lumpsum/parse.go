// Package lumpsum parses the month:amount text used to describe one-time
// extra principal payments, e.g. "12:1000,24:500".
package lumpsum

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/iwvelando/amortizer/pkg/loans"
	"github.com/iwvelando/amortizer/pkg/mathutil"
)

const (
	entrySeparator = ","
	pairSeparator  = ":"
)

// Skipped describes an entry that was ignored while parsing.
type Skipped struct {
	Entry  string
	Reason string
}

func (s Skipped) String() string {
	return fmt.Sprintf("ignoring lump sum %q: %s", s.Entry, s.Reason)
}

// Parse reads comma-separated month:amount pairs. Malformed pairs are
// skipped and reported; they never abort parsing. Amounts given more than
// once for the same month are summed.
func Parse(text string) (loans.LumpSums, []Skipped) {
	lumpSums := make(loans.LumpSums)
	var skipped []Skipped

	for _, raw := range strings.Split(text, entrySeparator) {
		entry := strings.TrimSpace(raw)
		if entry == "" {
			continue
		}

		month, amount, err := parseEntry(entry)
		if err != nil {
			skipped = append(skipped, Skipped{Entry: entry, Reason: err.Error()})
			continue
		}
		Add(lumpSums, month, amount)
	}

	return lumpSums, skipped
}

func parseEntry(entry string) (int, float64, error) {
	parts := strings.Split(entry, pairSeparator)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected month%samount", pairSeparator)
	}

	month, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("month %q is not a whole number", strings.TrimSpace(parts[0]))
	}
	if month < 1 {
		return 0, 0, fmt.Errorf("month must be at least 1, got %d", month)
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil || !mathutil.IsFinite(amount) {
		return 0, 0, fmt.Errorf("amount %q is not a number", strings.TrimSpace(parts[1]))
	}

	return month, amount, nil
}

// Add records amount against month, summing with any amount already there.
func Add(lumpSums loans.LumpSums, month int, amount float64) {
	lumpSums[month] += amount
}

// Format renders lump sums back into month:amount text ordered by month.
func Format(lumpSums loans.LumpSums) string {
	months := make([]int, 0, len(lumpSums))
	for month := range lumpSums {
		months = append(months, month)
	}
	sort.Ints(months)

	entries := make([]string, 0, len(months))
	for _, month := range months {
		entries = append(entries, strconv.Itoa(month)+pairSeparator+
			strconv.FormatFloat(lumpSums[month], 'f', -1, 64))
	}
	return strings.Join(entries, entrySeparator)
}

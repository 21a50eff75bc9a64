// Package output provides utilities for formatting and displaying
// amortization reports.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/amortizer/internal/report"
	"github.com/iwvelando/amortizer/pkg/constants"
	"github.com/iwvelando/amortizer/pkg/datetime"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CsvHeader is the header row written by CsvFormat.
var CsvHeader = []string{"date", "label", "interest", "principal", "balance", "notes"}

// Write renders r to w in the named format.
func Write(w io.Writer, format string, r *report.Report) error {
	switch format {
	case "", constants.OutputFormatPretty:
		return PrettyFormat(w, r)
	case constants.OutputFormatCSV:
		return CsvFormat(w, r)
	case constants.OutputFormatJSON:
		return JSONFormat(w, r)
	default:
		return fmt.Errorf("unsupported output format %q", format)
	}
}

// tableWriter keeps the first write error so the table code stays linear.
type tableWriter struct {
	w   io.Writer
	p   *message.Printer
	err error
}

func (t *tableWriter) printf(format string, args ...interface{}) {
	if t.err != nil {
		return
	}
	_, t.err = t.p.Fprintf(t.w, format, args...)
}

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, r *report.Report) error {
	t := &tableWriter{w: w, p: message.NewPrinter(language.English)}
	params := r.Parameters

	t.printf("--- Amortization schedule ---\n")
	t.printf("Loan: %.2f at %g%% over %d years from %s\n",
		params.Principal, params.AnnualRatePercent, params.TermYears, datetime.Label(params.StartDate))
	t.printf("Monthly payment: %.2f\n", r.Schedule.MonthlyPayment)
	t.printf("Equity threshold: %.2f (%g%% of %.2f)\n",
		r.Schedule.EquityThreshold, params.EquityPercentage, params.HomeValue)
	t.printf("\n")
	t.printf("Date     | Interest | Principal | Balance | Notes\n")
	t.printf("____     | ________ | _________ | _______ | _____\n")
	for _, entry := range r.Schedule.Entries {
		t.printf("%s | %.2f | %.2f | %.2f | %s\n",
			datetime.Label(entry.Date), entry.Interest, entry.Principal, entry.Balance,
			strings.Join(r.Notes[datetime.Format(entry.Date)], ","))
	}

	s := r.Summary
	t.printf("\n--- Summary ---\n")
	t.printf("Payments: %d\n", s.Months)
	t.printf("Total interest: %.2f\n", s.TotalInterest.InexactFloat64())
	t.printf("Total principal: %.2f\n", s.TotalPrincipal.InexactFloat64())
	if !s.TotalLumpSums.IsZero() {
		t.printf("Total lump sums: %.2f\n", s.TotalLumpSums.InexactFloat64())
	}
	t.printf("Total paid: %.2f\n", s.TotalPaid.InexactFloat64())
	if s.EquityReachedDate != nil {
		t.printf("Equity reached: %s\n", datetime.Label(*s.EquityReachedDate))
	} else {
		t.printf("Equity reached: never\n")
	}
	if s.PayoffDate != nil {
		t.printf("Paid off: %s\n", datetime.Label(*s.PayoffDate))
	} else {
		t.printf("Paid off: balance remaining after the final payment\n")
	}
	if r.Savings != nil {
		t.printf("Months saved: %d\n", r.Savings.MonthsSaved)
		t.printf("Interest saved: %.2f\n", r.Savings.InterestSaved.InexactFloat64())
	}

	return t.err
}

// CsvFormat outputs in comma-separated value format, one row per month.
func CsvFormat(w io.Writer, r *report.Report) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(CsvHeader); err != nil {
		return err
	}
	for _, entry := range r.Schedule.Entries {
		date := datetime.Format(entry.Date)
		record := []string{
			date,
			datetime.Label(entry.Date),
			fmt.Sprintf("%.2f", entry.Interest),
			fmt.Sprintf("%.2f", entry.Principal),
			fmt.Sprintf("%.2f", entry.Balance),
			strings.Join(r.Notes[date], ","),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// CsvString returns the CSV rendering of r.
func CsvString(r *report.Report) (string, error) {
	var buf bytes.Buffer
	if err := CsvFormat(&buf, r); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// JSONFormat outputs the report document as indented JSON.
func JSONFormat(w io.Writer, r *report.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewDocument(r))
}

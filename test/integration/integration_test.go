package integration

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/iwvelando/amortizer/internal/config"
	"github.com/iwvelando/amortizer/internal/report"
	"github.com/iwvelando/amortizer/pkg/output"
	"go.uber.org/zap"
)

func loadReport(t *testing.T) *report.Report {
	t.Helper()

	// Load and process the test configuration exactly as the schedule command does
	conf, err := config.LoadConfiguration("../test_config.yaml")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if warnings := conf.ValidateConfiguration(); len(warnings) != 0 {
		t.Fatalf("ValidateConfiguration() warnings = %v", warnings)
	}

	params, lumpSums, skipped, err := conf.Loan.Parameters()
	if err != nil {
		t.Fatalf("Parameters() error = %v", err)
	}
	if len(skipped) != 0 {
		t.Fatalf("Parameters() skipped = %v", skipped)
	}

	result, err := report.GetReport(zap.NewNop(), params, lumpSums)
	if err != nil {
		t.Fatalf("GetReport() error = %v", err)
	}
	return result
}

// TestMainIntegrationBaseline checks the CSV the schedule command prints for
// the test configuration against known rows.
func TestMainIntegrationBaseline(t *testing.T) {
	result := loadReport(t)

	var buf bytes.Buffer
	if err := output.CsvFormat(&buf, result); err != nil {
		t.Fatalf("CsvFormat() error = %v", err)
	}

	var lines []string
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("failed to scan output: %v", err)
	}

	if len(lines) != 256 {
		t.Fatalf("Expected 256 lines (header plus 255 months), got %d", len(lines))
	}

	expected := map[int]string{
		0:   "date,label,interest,principal,balance,notes",
		1:   "2024-04,Apr 2024,1250.00,360.46,299639.54,20% equity reached",
		12:  "2025-03,Mar 2025,1233.13,50377.33,245573.90,lump sum 50000.00",
		13:  "2025-04,Apr 2025,1023.22,587.24,244986.66,",
		254: "2045-05,May 2045,10.86,1599.61,1005.80,",
		255: "2045-06,Jun 2045,4.19,1005.80,0.00,loan paid off",
	}
	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("line %d = %q, expected %q", i, lines[i], want)
		}
	}
}

func TestIntegrationSummary(t *testing.T) {
	result := loadReport(t)

	if got := result.Summary.TotalInterest.StringFixed(2); got != "160068.06" {
		t.Errorf("total interest = %s, expected 160068.06", got)
	}
	if got := result.Summary.TotalLumpSums.StringFixed(2); got != "50000.00" {
		t.Errorf("total lump sums = %s, expected 50000.00", got)
	}
	if result.Savings == nil || result.Savings.MonthsSaved != 105 {
		t.Fatalf("savings = %+v, expected 105 months saved", result.Savings)
	}
	if !result.Savings.InterestSaved.IsPositive() {
		t.Errorf("interest saved = %s, expected positive", result.Savings.InterestSaved)
	}

	var buf bytes.Buffer
	if err := output.PrettyFormat(&buf, result); err != nil {
		t.Fatalf("PrettyFormat() error = %v", err)
	}
	if !strings.Contains(buf.String(), "Total interest: 160,068.06") {
		t.Errorf("pretty output missing total interest")
	}
	if !strings.Contains(buf.String(), "Paid off: Jun 2045") {
		t.Errorf("pretty output missing payoff date")
	}
}

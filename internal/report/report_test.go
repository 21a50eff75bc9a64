package report

import (
	"errors"
	"testing"

	"github.com/iwvelando/amortizer/pkg/loans"
	"github.com/iwvelando/amortizer/pkg/testutil"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestGetReportWithoutLumpSums(t *testing.T) {
	result, err := GetReport(zap.NewNop(), testutil.ReferenceParameters(), nil)
	if err != nil {
		t.Fatalf("GetReport() error = %v", err)
	}

	if result.Schedule.Len() != 360 {
		t.Errorf("schedule length = %d, expected 360", result.Schedule.Len())
	}
	if result.Savings != nil {
		t.Errorf("expected no savings without lump sums, got %+v", result.Savings)
	}
	if result.Summary.Months != 360 {
		t.Errorf("summary months = %d, expected 360", result.Summary.Months)
	}

	notes := result.Notes["2024-04"]
	if len(notes) != 1 || notes[0] != "20% equity reached" {
		t.Errorf("notes for 2024-04 = %v, expected equity note", notes)
	}
	notes = result.Notes["2054-03"]
	if len(notes) != 1 || notes[0] != "loan paid off" {
		t.Errorf("notes for 2054-03 = %v, expected payoff note", notes)
	}
}

func TestGetReportWithLumpSums(t *testing.T) {
	result, err := GetReport(nil, testutil.ReferenceParameters(), loans.LumpSums{12: 50000, 1000: 5})
	if err != nil {
		t.Fatalf("GetReport() error = %v", err)
	}

	if result.Savings == nil {
		t.Fatal("expected savings with lump sums")
	}
	if result.Savings.MonthsSaved != 105 {
		t.Errorf("months saved = %d, expected 105", result.Savings.MonthsSaved)
	}
	if !result.Savings.InterestSaved.IsPositive() {
		t.Errorf("interest saved = %s, expected positive", result.Savings.InterestSaved)
	}

	notes := result.Notes["2025-03"]
	if len(notes) != 1 || notes[0] != "lump sum 50000.00" {
		t.Errorf("notes for 2025-03 = %v, expected lump sum note", notes)
	}
}

func TestGetReportOnlyUnreachedLumpSums(t *testing.T) {
	result, err := GetReport(nil, testutil.ReferenceParameters(), loans.LumpSums{400: 5})
	if err != nil {
		t.Fatalf("GetReport() error = %v", err)
	}
	if result.Savings != nil {
		t.Errorf("expected no savings when no lump sum is reached, got %+v", result.Savings)
	}
}

func TestGetReportInvalidInput(t *testing.T) {
	params := testutil.ReferenceParameters()
	params.TermYears = 0

	_, err := GetReport(nil, params, nil)
	if !errors.Is(err, loans.ErrInvalidInput) {
		t.Fatalf("GetReport() error = %v, expected ErrInvalidInput", err)
	}
}

func TestGetReportWarnsWhenLoanDoesNotAmortize(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	params := testutil.ReferenceParameters()
	params.TermYears = 1
	// At this rate the payment rounds to exactly the first month's interest.
	params.AnnualRatePercent = 1e7

	result, err := GetReport(zap.New(core), params, nil)
	if err != nil {
		t.Fatalf("GetReport() error = %v", err)
	}
	if result.Schedule.Amortizes() {
		t.Fatal("Amortizes() = true, expected false")
	}
	if logs.FilterMessageSnippet("will not amortize").Len() != 1 {
		t.Errorf("expected one non-amortizing warning, got %v", logs.All())
	}

	quiet, quietLogs := observer.New(zapcore.WarnLevel)
	if _, err := GetReport(zap.New(quiet), testutil.ReferenceParameters(), nil); err != nil {
		t.Fatalf("GetReport() error = %v", err)
	}
	if quietLogs.Len() != 0 {
		t.Errorf("expected no warnings for the reference loan, got %v", quietLogs.All())
	}
}

func TestEquityNote(t *testing.T) {
	tests := map[float64]string{
		20:   "20% equity reached",
		22.5: "22.5% equity reached",
		0:    "0% equity reached",
	}
	for pct, expected := range tests {
		if got := EquityNote(pct); got != expected {
			t.Errorf("EquityNote(%v) = %q, expected %q", pct, got, expected)
		}
	}
}

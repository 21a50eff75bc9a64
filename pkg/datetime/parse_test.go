package datetime

import (
	"errors"
	"testing"
	"time"
)

func TestMustParseTime(t *testing.T) {
	tests := []struct {
		name     string
		layout   string
		dateStr  string
		expected string
	}{
		{
			name:     "Valid date",
			layout:   DateTimeLayout,
			dateStr:  "2025-01",
			expected: "2025-01",
		},
		{
			name:     "Form layout",
			layout:   FormMonthLayout,
			dateStr:  "12/2030",
			expected: "2030-12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := MustParseTime(tt.layout, tt.dateStr)
			if result.Format(DateTimeLayout) != tt.expected {
				t.Errorf("MustParseTime() = %s, expected %s", result.Format(DateTimeLayout), tt.expected)
			}
		})
	}
}

func TestMustParseTimePanic(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Errorf("Expected MustParseTime to panic with invalid date")
		}
	}()

	MustParseTime(DateTimeLayout, "invalid-date")
}

func TestParseMonth(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
		wantErr  bool
	}{
		{name: "Form layout", value: "04/2024", expected: "2024-04"},
		{name: "Single-digit month", value: "4/2024", expected: "2024-04"},
		{name: "Two-digit month without padding", value: "12/2024", expected: "2024-12"},
		{name: "Canonical layout", value: "2024-04", expected: "2024-04"},
		{name: "Surrounding whitespace", value: "  11/1999 ", expected: "1999-11"},
		{name: "Empty", value: "", wantErr: true},
		{name: "Month out of range", value: "13/2024", wantErr: true},
		{name: "Zero month", value: "0/2024", wantErr: true},
		{name: "Garbage", value: "April 2024", wantErr: true},
		{name: "Missing year", value: "04/", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseMonth(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseMonth(%q) expected error but got none", tt.value)
				}
				if !errors.Is(err, ErrInvalidMonth) {
					t.Errorf("ParseMonth(%q) error = %v, expected ErrInvalidMonth", tt.value, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMonth(%q) error = %v", tt.value, err)
			}
			if got := Format(result); got != tt.expected {
				t.Errorf("ParseMonth(%q) = %s, expected %s", tt.value, got, tt.expected)
			}
			if result.Day() != 1 || result.Location() != time.UTC {
				t.Errorf("ParseMonth(%q) = %v, expected first of month in UTC", tt.value, result)
			}
		})
	}
}

func TestNextMonth(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected string
	}{
		{"Mid year", time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), "2024-05"},
		{"December rolls over", time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), "2025-01"},
		{"Day is pinned", time.Date(2024, time.January, 31, 0, 0, 0, 0, time.UTC), "2024-02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NextMonth(tt.date)
			if Format(result) != tt.expected {
				t.Errorf("NextMonth() = %s, expected %s", Format(result), tt.expected)
			}
			if result.Day() != 1 {
				t.Errorf("NextMonth() day = %d, expected 1", result.Day())
			}
		})
	}
}

func TestAddMonths(t *testing.T) {
	base := MustParseTime(DateTimeLayout, "2025-06")
	tests := []struct {
		name     string
		months   int
		expected string
	}{
		{"Add multiple years", 24, "2027-06"},
		{"Subtract multiple years", -24, "2023-06"},
		{"Cross year boundary forward", 8, "2026-02"},
		{"Cross year boundary backward", -8, "2024-10"},
		{"Zero months", 0, "2025-06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Format(AddMonths(base, tt.months)); got != tt.expected {
				t.Errorf("AddMonths() = %s, expected %s", got, tt.expected)
			}
		})
	}
}

func TestLabel(t *testing.T) {
	date := MustParseTime(DateTimeLayout, "2024-04")
	if got := Label(date); got != "Apr 2024" {
		t.Errorf("Label() = %s, expected Apr 2024", got)
	}
}

func TestMonthsBetween(t *testing.T) {
	first := MustParseTime(DateTimeLayout, "2024-04")
	tests := []struct {
		second   string
		expected int
	}{
		{"2024-04", 0},
		{"2024-05", 1},
		{"2025-03", 11},
		{"2054-03", 359},
		{"2023-04", -12},
	}

	for _, tt := range tests {
		t.Run(tt.second, func(t *testing.T) {
			second := MustParseTime(DateTimeLayout, tt.second)
			if got := MonthsBetween(first, second); got != tt.expected {
				t.Errorf("MonthsBetween() = %d, expected %d", got, tt.expected)
			}
		})
	}
}

func TestTimeOperations(t *testing.T) {
	base := MustParseTime(DateTimeLayout, "2025-01")

	future := AddMonths(base, 6)
	past := AddMonths(future, -6)

	if !past.Equal(base) {
		t.Errorf("Round trip date operation failed: started with %s, ended with %s", Format(base), Format(past))
	}
}

package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/iwvelando/amortizer/internal/config"
)

// errInvalidField marks a query parameter that is present but not a number.
var errInvalidField = errors.New("invalid field")

// scheduleRequest is the loan form as posted by the web UI. Fields left out
// of the body keep the form defaults.
type scheduleRequest struct {
	Principal        float64               `json:"principal"`
	InterestRate     float64               `json:"interestRate"`
	TermYears        int                   `json:"termYears"`
	StartMonth       string                `json:"startMonth"`
	HomeValue        float64               `json:"homeValue"`
	EquityPercentage float64               `json:"equityPercentage"`
	LumpSums         string                `json:"lumpSums"`
	ExtraPayments    []config.ExtraPayment `json:"extraPayments,omitempty"`
}

func newScheduleRequest() scheduleRequest {
	defaults := config.DefaultLoan()
	return scheduleRequest{
		Principal:        defaults.Principal,
		InterestRate:     defaults.InterestRate,
		TermYears:        defaults.TermYears,
		StartMonth:       defaults.StartMonth,
		HomeValue:        defaults.HomeValue,
		EquityPercentage: defaults.EquityPercentage,
		LumpSums:         defaults.LumpSums,
	}
}

func (r scheduleRequest) loan() config.Loan {
	return config.Loan{
		Principal:        r.Principal,
		InterestRate:     r.InterestRate,
		TermYears:        r.TermYears,
		StartMonth:       strings.TrimSpace(r.StartMonth),
		HomeValue:        r.HomeValue,
		EquityPercentage: r.EquityPercentage,
		LumpSums:         r.LumpSums,
		ExtraPayments:    r.ExtraPayments,
	}
}

// loanFromQuery reads the loan form from URL query parameters, e.g.
// /api/schedule?principal=250000&lumpSums=12:1000.
func loanFromQuery(r *http.Request) (config.Loan, error) {
	req := newScheduleRequest()
	query := r.URL.Query()

	floats := []struct {
		key   string
		value *float64
	}{
		{"principal", &req.Principal},
		{"interestRate", &req.InterestRate},
		{"homeValue", &req.HomeValue},
		{"equityPercentage", &req.EquityPercentage},
	}
	for _, field := range floats {
		raw := strings.TrimSpace(query.Get(field.key))
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return config.Loan{}, fmt.Errorf("%w: %s %q is not a number", errInvalidField, field.key, raw)
		}
		*field.value = value
	}

	if raw := strings.TrimSpace(query.Get("termYears")); raw != "" {
		termYears, err := strconv.Atoi(raw)
		if err != nil {
			return config.Loan{}, fmt.Errorf("%w: termYears %q is not a whole number", errInvalidField, raw)
		}
		req.TermYears = termYears
	}
	if query.Has("startMonth") {
		req.StartMonth = query.Get("startMonth")
	}
	if query.Has("lumpSums") {
		req.LumpSums = query.Get("lumpSums")
	}

	return req.loan(), nil
}

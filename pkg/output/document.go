package output

import (
	"github.com/iwvelando/amortizer/internal/report"
	"github.com/iwvelando/amortizer/pkg/constants"
	"github.com/iwvelando/amortizer/pkg/datetime"
	"github.com/iwvelando/amortizer/pkg/mathutil"
)

// Row is one month of the schedule as presented to users.
type Row struct {
	Date      string   `json:"date"`
	Label     string   `json:"label"`
	Interest  float64  `json:"interest"`
	Principal float64  `json:"principal"`
	Balance   float64  `json:"balance"`
	Notes     []string `json:"notes,omitempty"`
}

// SummaryDocument carries the schedule totals. Money is rendered as fixed
// two-place strings so no precision is lost in transit.
type SummaryDocument struct {
	MonthlyPayment string `json:"monthlyPayment"`
	Months         int    `json:"months"`
	TotalInterest  string `json:"totalInterest"`
	TotalPrincipal string `json:"totalPrincipal"`
	TotalLumpSums  string `json:"totalLumpSums"`
	TotalPaid      string `json:"totalPaid"`
	MonthsSaved    *int   `json:"monthsSaved,omitempty"`
	InterestSaved  string `json:"interestSaved,omitempty"`
}

// Document is the JSON shape shared by the CLI and the web API.
type Document struct {
	MonthlyPayment    float64         `json:"monthlyPayment"`
	EquityThreshold   float64         `json:"equityThreshold"`
	EquityReachedDate *string         `json:"equityReachedDate"`
	PayoffDate        *string         `json:"payoffDate"`
	Rows              []Row           `json:"rows"`
	Summary           SummaryDocument `json:"summary"`
}

// NewDocument converts a report into its JSON document.
func NewDocument(r *report.Report) Document {
	doc := Document{
		MonthlyPayment:  mathutil.Round(r.Schedule.MonthlyPayment),
		EquityThreshold: mathutil.Round(r.Schedule.EquityThreshold),
		Rows:            make([]Row, 0, r.Schedule.Len()),
	}

	if r.Schedule.EquityReachedDate != nil {
		date := datetime.Format(*r.Schedule.EquityReachedDate)
		doc.EquityReachedDate = &date
	}
	if payoff, ok := r.Schedule.PayoffDate(); ok {
		date := datetime.Format(payoff)
		doc.PayoffDate = &date
	}

	for _, entry := range r.Schedule.Entries {
		date := datetime.Format(entry.Date)
		doc.Rows = append(doc.Rows, Row{
			Date:      date,
			Label:     datetime.Label(entry.Date),
			Interest:  entry.Interest,
			Principal: entry.Principal,
			Balance:   entry.Balance,
			Notes:     r.Notes[date],
		})
	}

	s := r.Summary
	doc.Summary = SummaryDocument{
		MonthlyPayment: s.MonthlyPayment.StringFixed(constants.DecimalPlaces),
		Months:         s.Months,
		TotalInterest:  s.TotalInterest.StringFixed(constants.DecimalPlaces),
		TotalPrincipal: s.TotalPrincipal.StringFixed(constants.DecimalPlaces),
		TotalLumpSums:  s.TotalLumpSums.StringFixed(constants.DecimalPlaces),
		TotalPaid:      s.TotalPaid.StringFixed(constants.DecimalPlaces),
	}
	if r.Savings != nil {
		monthsSaved := r.Savings.MonthsSaved
		doc.Summary.MonthsSaved = &monthsSaved
		doc.Summary.InterestSaved = r.Savings.InterestSaved.StringFixed(constants.DecimalPlaces)
	}

	return doc
}

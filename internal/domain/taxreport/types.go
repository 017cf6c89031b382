package taxreport

import (
	"time"

	"github.com/shopspring/decimal"

	"printstock/internal/core/id"
)

// SaleRecord is one qualifying sale within a tax year.
type SaleRecord struct {
	EditionID   id.ID  `json:"editionId"`
	DisplayName string `json:"displayName"`
	PrintName   string `json:"printName"`

	// DistributorID is nil for direct (unassigned) sales.
	DistributorID   *id.ID `json:"distributorId,omitempty"`
	DistributorName string `json:"distributorName"`

	DateSold time.Time `json:"dateSold"`

	RetailPrice      decimal.Decimal `json:"retailPrice"`
	CommissionPct    decimal.Decimal `json:"commissionPct"`
	CommissionAmount decimal.Decimal `json:"commissionAmount"`
	NetAmount        decimal.Decimal `json:"netAmount"`

	IsSettled bool `json:"isSettled"`
}

// Summary holds the running totals for the year.
type Summary struct {
	TotalSalesCount int             `json:"totalSalesCount"`
	GrossRevenue    decimal.Decimal `json:"grossRevenue"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
	NetRevenue      decimal.Decimal `json:"netRevenue"`
	SettledAmount   decimal.Decimal `json:"settledAmount"`
	UnsettledAmount decimal.Decimal `json:"unsettledAmount"`
	UnsettledCount  int             `json:"unsettledCount"`
}

// ChannelBreakdown aggregates sales per distributor; the nil-id entry
// collects direct sales.
type ChannelBreakdown struct {
	DistributorID   *id.ID          `json:"distributorId,omitempty"`
	DistributorName string          `json:"distributorName"`
	SalesCount      int             `json:"salesCount"`
	GrossRevenue    decimal.Decimal `json:"grossRevenue"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
	NetRevenue      decimal.Decimal `json:"netRevenue"`
	SettledAmount   decimal.Decimal `json:"settledAmount"`
	UnsettledAmount decimal.Decimal `json:"unsettledAmount"`
	UnsettledCount  int             `json:"unsettledCount"`
}

// MonthBreakdown aggregates sales per calendar year-month.
type MonthBreakdown struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`

	// Label is the human form, e.g. "May 2024".
	Label string `json:"label"`

	// TaxYearMonth renumbers months April=1 ... March=12.
	TaxYearMonth int `json:"taxYearMonth"`

	SalesCount      int             `json:"salesCount"`
	GrossRevenue    decimal.Decimal `json:"grossRevenue"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
	NetRevenue      decimal.Decimal `json:"netRevenue"`
}

// QuarterBreakdown aggregates sales per tax-year quarter. All four quarters
// are always present to keep the report layout stable.
type QuarterBreakdown struct {
	Quarter         int             `json:"quarter"`
	Label           string          `json:"label"`
	SalesCount      int             `json:"salesCount"`
	GrossRevenue    decimal.Decimal `json:"grossRevenue"`
	TotalCommission decimal.Decimal `json:"totalCommission"`
	NetRevenue      decimal.Decimal `json:"netRevenue"`
}

// PreviousYearSummary is the condensed prior-year comparison.
type PreviousYearSummary struct {
	Label           string          `json:"label"`
	TotalSalesCount int             `json:"totalSalesCount"`
	GrossRevenue    decimal.Decimal `json:"grossRevenue"`
	NetRevenue      decimal.Decimal `json:"netRevenue"`
}

// Report is the full tax-year report.
type Report struct {
	TaxYear TaxYear `json:"taxYear"`
	Summary Summary `json:"summary"`

	ByChannel []ChannelBreakdown `json:"byChannel"`
	ByMonth   []MonthBreakdown   `json:"byMonth"`
	ByQuarter []QuarterBreakdown `json:"byQuarter"`

	// Sales is the full register, sorted ascending by sale date.
	Sales []SaleRecord `json:"sales"`

	PreviousYear *PreviousYearSummary `json:"previousYear,omitempty"`
}

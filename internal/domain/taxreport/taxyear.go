// Package taxreport computes UK tax-year financial reports from edition and
// distributor snapshots. The engine is pure: no I/O, no external failure modes.
package taxreport

import (
	"fmt"
	"time"
)

// TaxYear is a UK tax year: April 6 of the start year through April 5 of the
// following year, inclusive.
type TaxYear struct {
	StartYear int       `json:"startYear"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
}

// NewTaxYear builds the tax year starting April 6 of startYear.
func NewTaxYear(startYear int) TaxYear {
	return TaxYear{
		StartYear: startYear,
		Start:     time.Date(startYear, time.April, 6, 0, 0, 0, 0, time.UTC),
		End:       time.Date(startYear+1, time.April, 5, 0, 0, 0, 0, time.UTC),
	}
}

// ForDate returns the tax year containing t.
func ForDate(t time.Time) TaxYear {
	year := t.Year()
	cutoff := time.Date(year, time.April, 6, 0, 0, 0, 0, time.UTC)
	if dateOnly(t).Before(cutoff) {
		year--
	}
	return NewTaxYear(year)
}

// Label returns the conventional "2024-25" form.
func (y TaxYear) Label() string {
	return fmt.Sprintf("%d-%02d", y.StartYear, (y.StartYear+1)%100)
}

// Previous returns the preceding tax year.
func (y TaxYear) Previous() TaxYear {
	return NewTaxYear(y.StartYear - 1)
}

// Contains reports whether t falls within the tax year (date precision,
// inclusive of both boundaries).
func (y TaxYear) Contains(t time.Time) bool {
	d := dateOnly(t)
	return !d.Before(y.Start) && !d.After(y.End)
}

// MonthIndex renumbers calendar months so April=1 ... March=12.
func MonthIndex(m time.Month) int {
	idx := int(m) - int(time.March)
	if idx <= 0 {
		idx += 12
	}
	return idx
}

// QuarterOf returns the tax-year quarter (1-4) for a calendar month:
// Q1=Apr-Jun, Q2=Jul-Sep, Q3=Oct-Dec, Q4=Jan-Mar.
func QuarterOf(m time.Month) int {
	return (MonthIndex(m)-1)/3 + 1
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

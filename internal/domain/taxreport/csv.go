package taxreport

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const csvDateLayout = "02/01/2006"

// WriteCSV renders the report as a multi-section CSV document. Text cells
// are always double-quoted so spreadsheet imports keep names and dates as
// text; money cells are plain numbers with two decimal places.
func WriteCSV(w io.Writer, r *Report) error {
	cw := &csvWriter{w: bufio.NewWriter(w)}

	cw.row(text("TAX YEAR REPORT"), text(r.TaxYear.Label()))
	cw.row(text("PERIOD"), text(r.TaxYear.Start.Format(csvDateLayout)), text(r.TaxYear.End.Format(csvDateLayout)))
	cw.blank()

	cw.row(text("SUMMARY"))
	cw.row(text("TOTAL SALES"), count(r.Summary.TotalSalesCount))
	cw.row(text("GROSS REVENUE"), money(r.Summary.GrossRevenue))
	cw.row(text("TOTAL COMMISSION"), money(r.Summary.TotalCommission))
	cw.row(text("NET REVENUE"), money(r.Summary.NetRevenue))
	cw.row(text("SETTLED AMOUNT"), money(r.Summary.SettledAmount))
	cw.row(text("UNSETTLED AMOUNT"), money(r.Summary.UnsettledAmount))
	cw.row(text("UNSETTLED SALES"), count(r.Summary.UnsettledCount))
	if r.PreviousYear != nil {
		cw.blank()
		cw.row(text("PREVIOUS YEAR"), text(r.PreviousYear.Label))
		cw.row(text("PREVIOUS TOTAL SALES"), count(r.PreviousYear.TotalSalesCount))
		cw.row(text("PREVIOUS GROSS REVENUE"), money(r.PreviousYear.GrossRevenue))
		cw.row(text("PREVIOUS NET REVENUE"), money(r.PreviousYear.NetRevenue))
	}
	cw.blank()

	cw.row(text("SALES BY CHANNEL"))
	cw.row(text("CHANNEL"), text("SALES"), text("GROSS"), text("COMMISSION"), text("NET"), text("SETTLED"), text("UNSETTLED"))
	for _, c := range r.ByChannel {
		cw.row(
			text(c.DistributorName),
			count(c.SalesCount),
			money(c.GrossRevenue),
			money(c.TotalCommission),
			money(c.NetRevenue),
			money(c.SettledAmount),
			money(c.UnsettledAmount),
		)
	}
	cw.blank()

	cw.row(text("SALES BY QUARTER"))
	cw.row(text("QUARTER"), text("SALES"), text("GROSS"), text("COMMISSION"), text("NET"))
	for _, q := range r.ByQuarter {
		cw.row(
			text(q.Label),
			count(q.SalesCount),
			money(q.GrossRevenue),
			money(q.TotalCommission),
			money(q.NetRevenue),
		)
	}
	cw.blank()

	cw.row(text("SALES BY MONTH"))
	cw.row(text("MONTH"), text("SALES"), text("GROSS"), text("COMMISSION"), text("NET"))
	for _, m := range r.ByMonth {
		cw.row(
			text(m.Label),
			count(m.SalesCount),
			money(m.GrossRevenue),
			money(m.TotalCommission),
			money(m.NetRevenue),
		)
	}
	cw.blank()

	cw.row(text("SALES REGISTER"))
	cw.row(
		text("DATE"), text("EDITION"), text("PRINT"), text("CHANNEL"),
		text("PRICE"), text("COMMISSION %"), text("COMMISSION"), text("NET"), text("SETTLED"),
	)
	for _, s := range r.Sales {
		settled := "No"
		if s.IsSettled {
			settled = "Yes"
		}
		cw.row(
			text(s.DateSold.Format(csvDateLayout)),
			text(s.DisplayName),
			text(s.PrintName),
			text(s.DistributorName),
			money(s.RetailPrice),
			money(s.CommissionPct),
			money(s.CommissionAmount),
			money(s.NetAmount),
			text(settled),
		)
	}

	return cw.flush()
}

type csvWriter struct {
	w   *bufio.Writer
	err error
}

func (c *csvWriter) row(cells ...string) {
	if c.err != nil {
		return
	}
	_, c.err = c.w.WriteString(strings.Join(cells, ",") + "\n")
}

func (c *csvWriter) blank() {
	c.row()
}

func (c *csvWriter) flush() error {
	if c.err != nil {
		return c.err
	}
	return c.w.Flush()
}

// text quotes a value for CSV output, doubling embedded quotes.
func text(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

func count(n int) string {
	return strconv.Itoa(n)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

package taxreport

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"printstock/internal/core/id"
	"printstock/internal/core/types"
	"printstock/internal/domain/catalogs/artprint"
	"printstock/internal/domain/catalogs/distributor"
	"printstock/internal/domain/edition"
)

// DirectChannelName labels sales with no distributor.
const DirectChannelName = "Direct"

var quarterLabels = [4]string{
	"Q1 (Apr-Jun)",
	"Q2 (Jul-Sep)",
	"Q3 (Oct-Dec)",
	"Q4 (Jan-Mar)",
}

// Calculate computes the report for one tax year from snapshots of the
// edition and distributor collections. Missing numeric fields are treated
// as zero; the function never fails.
func Calculate(
	editions []edition.Edition,
	prints map[id.ID]artprint.Print,
	distributors []distributor.Distributor,
	year TaxYear,
	includePrevious bool,
) *Report {
	distByID := make(map[id.ID]distributor.Distributor, len(distributors))
	for _, d := range distributors {
		distByID[d.ID] = d
	}

	sales := collectSales(editions, prints, distByID, year)

	report := &Report{
		TaxYear:   year,
		Sales:     sales,
		ByChannel: channelBreakdowns(sales),
		ByMonth:   monthBreakdowns(sales),
		ByQuarter: quarterBreakdowns(sales),
	}
	report.Summary = summarize(sales)

	if includePrevious {
		prev := year.Previous()
		prevSales := collectSales(editions, prints, distByID, prev)
		prevSummary := summarize(prevSales)
		report.PreviousYear = &PreviousYearSummary{
			Label:           prev.Label(),
			TotalSalesCount: prevSummary.TotalSalesCount,
			GrossRevenue:    prevSummary.GrossRevenue,
			NetRevenue:      prevSummary.NetRevenue,
		}
	}

	return report
}

// collectSales filters sold editions to the tax year and computes the
// per-sale money amounts, sorted ascending by sale date.
func collectSales(
	editions []edition.Edition,
	prints map[id.ID]artprint.Print,
	distByID map[id.ID]distributor.Distributor,
	year TaxYear,
) []SaleRecord {
	sales := make([]SaleRecord, 0)
	for _, e := range editions {
		if !e.IsSold || e.DateSold == nil || !year.Contains(*e.DateSold) {
			continue
		}

		price := e.Price()
		pct := commissionFor(e, distByID)
		commission := types.Percent(price, pct)

		record := SaleRecord{
			EditionID:        e.ID,
			DisplayName:      e.DisplayName,
			DistributorName:  DirectChannelName,
			DateSold:         *e.DateSold,
			RetailPrice:      price,
			CommissionPct:    pct,
			CommissionAmount: commission,
			NetAmount:        price.Sub(commission),
			IsSettled:        e.IsSettled,
		}
		if p, ok := prints[e.PrintID]; ok {
			record.PrintName = p.Name
		}
		if e.DistributorID != nil {
			distID := *e.DistributorID
			record.DistributorID = &distID
			if d, ok := distByID[distID]; ok {
				record.DistributorName = d.Name
			}
		}

		sales = append(sales, record)
	}

	sort.SliceStable(sales, func(i, j int) bool {
		return sales[i].DateSold.Before(sales[j].DateSold)
	})
	return sales
}

// commissionFor resolves the effective commission percentage: the edition's
// own override wins, then the distributor's default, then zero.
func commissionFor(e edition.Edition, distByID map[id.ID]distributor.Distributor) decimal.Decimal {
	if e.CommissionPercentage != nil {
		return *e.CommissionPercentage
	}
	if e.DistributorID != nil {
		if d, ok := distByID[*e.DistributorID]; ok {
			return d.Commission()
		}
	}
	return decimal.Zero
}

func summarize(sales []SaleRecord) Summary {
	s := Summary{
		GrossRevenue:    decimal.Zero,
		TotalCommission: decimal.Zero,
		NetRevenue:      decimal.Zero,
		SettledAmount:   decimal.Zero,
		UnsettledAmount: decimal.Zero,
	}
	for _, sale := range sales {
		s.TotalSalesCount++
		s.GrossRevenue = s.GrossRevenue.Add(sale.RetailPrice)
		s.TotalCommission = s.TotalCommission.Add(sale.CommissionAmount)
		s.NetRevenue = s.NetRevenue.Add(sale.NetAmount)
		if sale.IsSettled {
			s.SettledAmount = s.SettledAmount.Add(sale.NetAmount)
		} else {
			s.UnsettledAmount = s.UnsettledAmount.Add(sale.NetAmount)
			s.UnsettledCount++
		}
	}
	return s
}

func channelBreakdowns(sales []SaleRecord) []ChannelBreakdown {
	byKey := make(map[id.ID]*ChannelBreakdown)
	order := make([]id.ID, 0)

	for _, sale := range sales {
		// The nil distributor bucket keys off the zero UUID.
		key := id.Nil()
		if sale.DistributorID != nil {
			key = *sale.DistributorID
		}

		cb, ok := byKey[key]
		if !ok {
			cb = &ChannelBreakdown{
				DistributorID:   sale.DistributorID,
				DistributorName: sale.DistributorName,
				GrossRevenue:    decimal.Zero,
				TotalCommission: decimal.Zero,
				NetRevenue:      decimal.Zero,
				SettledAmount:   decimal.Zero,
				UnsettledAmount: decimal.Zero,
			}
			byKey[key] = cb
			order = append(order, key)
		}

		cb.SalesCount++
		cb.GrossRevenue = cb.GrossRevenue.Add(sale.RetailPrice)
		cb.TotalCommission = cb.TotalCommission.Add(sale.CommissionAmount)
		cb.NetRevenue = cb.NetRevenue.Add(sale.NetAmount)
		if sale.IsSettled {
			cb.SettledAmount = cb.SettledAmount.Add(sale.NetAmount)
		} else {
			cb.UnsettledAmount = cb.UnsettledAmount.Add(sale.NetAmount)
			cb.UnsettledCount++
		}
	}

	out := make([]ChannelBreakdown, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].NetRevenue.GreaterThan(out[j].NetRevenue)
	})
	return out
}

func monthBreakdowns(sales []SaleRecord) []MonthBreakdown {
	type ym struct {
		year  int
		month time.Month
	}
	byKey := make(map[ym]*MonthBreakdown)
	order := make([]ym, 0)

	for _, sale := range sales {
		key := ym{sale.DateSold.Year(), sale.DateSold.Month()}
		mb, ok := byKey[key]
		if !ok {
			mb = &MonthBreakdown{
				Year:            key.year,
				Month:           key.month,
				Label:           fmt.Sprintf("%s %d", key.month.String(), key.year),
				TaxYearMonth:    MonthIndex(key.month),
				GrossRevenue:    decimal.Zero,
				TotalCommission: decimal.Zero,
				NetRevenue:      decimal.Zero,
			}
			byKey[key] = mb
			order = append(order, key)
		}

		mb.SalesCount++
		mb.GrossRevenue = mb.GrossRevenue.Add(sale.RetailPrice)
		mb.TotalCommission = mb.TotalCommission.Add(sale.CommissionAmount)
		mb.NetRevenue = mb.NetRevenue.Add(sale.NetAmount)
	}

	out := make([]MonthBreakdown, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TaxYearMonth < out[j].TaxYearMonth
	})
	return out
}

// quarterBreakdowns always returns all four quarters, zero-filled where no
// sales landed.
func quarterBreakdowns(sales []SaleRecord) []QuarterBreakdown {
	out := make([]QuarterBreakdown, 4)
	for i := range out {
		out[i] = QuarterBreakdown{
			Quarter:         i + 1,
			Label:           quarterLabels[i],
			GrossRevenue:    decimal.Zero,
			TotalCommission: decimal.Zero,
			NetRevenue:      decimal.Zero,
		}
	}

	for _, sale := range sales {
		q := &out[QuarterOf(sale.DateSold.Month())-1]
		q.SalesCount++
		q.GrossRevenue = q.GrossRevenue.Add(sale.RetailPrice)
		q.TotalCommission = q.TotalCommission.Add(sale.CommissionAmount)
		q.NetRevenue = q.NetRevenue.Add(sale.NetAmount)
	}
	return out
}

package taxreport

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printstock/internal/core/id"
	"printstock/internal/domain/catalogs/artprint"
	"printstock/internal/domain/catalogs/distributor"
	"printstock/internal/domain/edition"
)

type fixture struct {
	prints       map[id.ID]artprint.Print
	distributors []distributor.Distributor
	gallery      *distributor.Distributor
	print        *artprint.Print
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	p := artprint.NewPrint("Harbour Lights", 50)

	gallery := distributor.NewDistributor("Bay Gallery")
	pct := decimal.NewFromInt(40)
	gallery.CommissionPercentage = &pct

	return &fixture{
		prints:       map[id.ID]artprint.Print{p.ID: *p},
		distributors: []distributor.Distributor{*gallery},
		gallery:      gallery,
		print:        p,
	}
}

func (f *fixture) sold(t *testing.T, number int, price int64, soldOn time.Time) *edition.Edition {
	t.Helper()
	e := edition.NewEdition(f.print.ID, number, "Harbour Lights - 1", edition.SizeSmall)
	retail := decimal.NewFromInt(price)
	e.RetailPrice = &retail
	e.IsSold = true
	e.DateSold = &soldOn
	return e
}

func TestCalculate_EndToEnd(t *testing.T) {
	f := newFixture(t)
	year := NewTaxYear(2024)

	e := f.sold(t, 1, 1000, date(2024, time.May, 1))
	pct := decimal.NewFromInt(20)
	e.CommissionPercentage = &pct

	report := Calculate([]edition.Edition{*e}, f.prints, f.distributors, year, false)

	require.Len(t, report.Sales, 1)
	sale := report.Sales[0]
	assert.True(t, sale.RetailPrice.Equal(decimal.NewFromInt(1000)))
	assert.True(t, sale.CommissionAmount.Equal(decimal.NewFromInt(200)))
	assert.True(t, sale.NetAmount.Equal(decimal.NewFromInt(800)))
	assert.Equal(t, "Harbour Lights", sale.PrintName)
	assert.Equal(t, DirectChannelName, sale.DistributorName)

	assert.Equal(t, 1, report.Summary.TotalSalesCount)
	assert.True(t, report.Summary.GrossRevenue.Equal(decimal.NewFromInt(1000)))
	assert.True(t, report.Summary.TotalCommission.Equal(decimal.NewFromInt(200)))
	assert.True(t, report.Summary.NetRevenue.Equal(decimal.NewFromInt(800)))
	assert.True(t, report.Summary.UnsettledAmount.Equal(decimal.NewFromInt(800)))
	assert.True(t, report.Summary.SettledAmount.IsZero())
	assert.Equal(t, 1, report.Summary.UnsettledCount)

	require.Len(t, report.ByMonth, 1)
	assert.Equal(t, "May 2024", report.ByMonth[0].Label)
	assert.Equal(t, 2, report.ByMonth[0].TaxYearMonth)
}

func TestCalculate_CommissionResolution(t *testing.T) {
	f := newFixture(t)
	year := NewTaxYear(2024)

	override := f.sold(t, 1, 100, date(2024, time.June, 1))
	override.DistributorID = &f.gallery.ID
	pct := decimal.NewFromInt(10)
	override.CommissionPercentage = &pct

	fromDistributor := f.sold(t, 2, 100, date(2024, time.June, 2))
	fromDistributor.DistributorID = &f.gallery.ID

	direct := f.sold(t, 3, 100, date(2024, time.June, 3))

	report := Calculate(
		[]edition.Edition{*override, *fromDistributor, *direct},
		f.prints, f.distributors, year, false,
	)

	require.Len(t, report.Sales, 3)
	assert.True(t, report.Sales[0].CommissionAmount.Equal(decimal.NewFromInt(10)), "edition override wins")
	assert.True(t, report.Sales[1].CommissionAmount.Equal(decimal.NewFromInt(40)), "distributor default applies")
	assert.True(t, report.Sales[2].CommissionAmount.IsZero(), "no distributor means no commission")
}

func TestCalculate_FiltersToYearAndSoldOnly(t *testing.T) {
	f := newFixture(t)
	year := NewTaxYear(2024)

	inYear := f.sold(t, 1, 100, date(2024, time.April, 6))
	outOfYear := f.sold(t, 2, 100, date(2024, time.April, 5))
	unsold := edition.NewEdition(f.print.ID, 3, "Harbour Lights - 3", edition.SizeSmall)

	report := Calculate(
		[]edition.Edition{*inYear, *outOfYear, *unsold},
		f.prints, f.distributors, year, false,
	)

	require.Len(t, report.Sales, 1)
	assert.Equal(t, inYear.ID, report.Sales[0].EditionID)
}

func TestCalculate_NilPriceTreatedAsZero(t *testing.T) {
	f := newFixture(t)
	year := NewTaxYear(2024)

	e := f.sold(t, 1, 0, date(2024, time.July, 1))
	e.RetailPrice = nil

	report := Calculate([]edition.Edition{*e}, f.prints, f.distributors, year, false)

	require.Len(t, report.Sales, 1)
	assert.True(t, report.Summary.GrossRevenue.IsZero())
	assert.True(t, report.Summary.NetRevenue.IsZero())
}

func TestCalculate_SalesSortedByDate(t *testing.T) {
	f := newFixture(t)
	year := NewTaxYear(2024)

	late := f.sold(t, 1, 100, date(2025, time.February, 1))
	early := f.sold(t, 2, 100, date(2024, time.May, 1))
	mid := f.sold(t, 3, 100, date(2024, time.September, 15))

	report := Calculate([]edition.Edition{*late, *early, *mid}, f.prints, f.distributors, year, false)

	require.Len(t, report.Sales, 3)
	assert.Equal(t, early.ID, report.Sales[0].EditionID)
	assert.Equal(t, mid.ID, report.Sales[1].EditionID)
	assert.Equal(t, late.ID, report.Sales[2].EditionID)
}

func TestCalculate_FourQuartersAlways(t *testing.T) {
	f := newFixture(t)
	year := NewTaxYear(2024)

	report := Calculate(nil, f.prints, f.distributors, year, false)

	require.Len(t, report.ByQuarter, 4)
	for i, q := range report.ByQuarter {
		assert.Equal(t, i+1, q.Quarter)
		assert.Zero(t, q.SalesCount)
		assert.True(t, q.GrossRevenue.IsZero())
	}

	e := f.sold(t, 1, 100, date(2025, time.January, 10))
	report = Calculate([]edition.Edition{*e}, f.prints, f.distributors, year, false)
	require.Len(t, report.ByQuarter, 4)
	assert.Equal(t, 1, report.ByQuarter[3].SalesCount)
	assert.Zero(t, report.ByQuarter[0].SalesCount)
}

func TestCalculate_ChannelsSortedByNetDesc(t *testing.T) {
	f := newFixture(t)
	year := NewTaxYear(2024)

	viaGallery := f.sold(t, 1, 1000, date(2024, time.May, 1))
	viaGallery.DistributorID = &f.gallery.ID

	direct := f.sold(t, 2, 900, date(2024, time.May, 2))

	report := Calculate([]edition.Edition{*viaGallery, *direct}, f.prints, f.distributors, year, false)

	require.Len(t, report.ByChannel, 2)
	// Gallery nets 600 after 40% commission; direct nets 900.
	assert.Equal(t, DirectChannelName, report.ByChannel[0].DistributorName)
	assert.Equal(t, "Bay Gallery", report.ByChannel[1].DistributorName)
	assert.True(t, report.ByChannel[1].NetRevenue.Equal(decimal.NewFromInt(600)))
}

func TestCalculate_GrossMinusCommissionEqualsNet(t *testing.T) {
	f := newFixture(t)
	year := NewTaxYear(2024)

	editions := []edition.Edition{}
	for i, price := range []int64{250, 475, 1200} {
		e := f.sold(t, i+1, price, date(2024, time.August, i+1))
		e.DistributorID = &f.gallery.ID
		editions = append(editions, *e)
	}

	report := Calculate(editions, f.prints, f.distributors, year, false)

	want := report.Summary.GrossRevenue.Sub(report.Summary.TotalCommission)
	assert.True(t, report.Summary.NetRevenue.Equal(want))

	sum := decimal.Zero
	for _, sale := range report.Sales {
		sum = sum.Add(sale.NetAmount)
	}
	assert.True(t, report.Summary.NetRevenue.Equal(sum))
	settledPlusUnsettled := report.Summary.SettledAmount.Add(report.Summary.UnsettledAmount)
	assert.True(t, report.Summary.NetRevenue.Equal(settledPlusUnsettled))
}

func TestCalculate_PreviousYearSummary(t *testing.T) {
	f := newFixture(t)
	year := NewTaxYear(2024)

	current := f.sold(t, 1, 500, date(2024, time.June, 1))
	prior := f.sold(t, 2, 300, date(2023, time.June, 1))

	report := Calculate([]edition.Edition{*current, *prior}, f.prints, f.distributors, year, true)

	require.NotNil(t, report.PreviousYear)
	assert.Equal(t, "2023-24", report.PreviousYear.Label)
	assert.Equal(t, 1, report.PreviousYear.TotalSalesCount)
	assert.True(t, report.PreviousYear.GrossRevenue.Equal(decimal.NewFromInt(300)))

	assert.Equal(t, 1, report.Summary.TotalSalesCount)
}

func TestCalculate_SettledSplit(t *testing.T) {
	f := newFixture(t)
	year := NewTaxYear(2024)

	settled := f.sold(t, 1, 400, date(2024, time.May, 1))
	settled.IsSettled = true
	open := f.sold(t, 2, 600, date(2024, time.May, 2))

	report := Calculate([]edition.Edition{*settled, *open}, f.prints, f.distributors, year, false)

	assert.True(t, report.Summary.SettledAmount.Equal(decimal.NewFromInt(400)))
	assert.True(t, report.Summary.UnsettledAmount.Equal(decimal.NewFromInt(600)))
	assert.Equal(t, 1, report.Summary.UnsettledCount)
}

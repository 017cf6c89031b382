package taxreport

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"printstock/internal/domain/edition"
)

func TestWriteCSV_EmptyReportHasAllSections(t *testing.T) {
	report := Calculate(nil, nil, nil, NewTaxYear(2024), false)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, report); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	out := buf.String()

	for _, section := range []string{
		`"TAX YEAR REPORT","2024-25"`,
		`"SUMMARY"`,
		`"SALES BY CHANNEL"`,
		`"SALES BY QUARTER"`,
		`"SALES BY MONTH"`,
		`"SALES REGISTER"`,
	} {
		if !strings.Contains(out, section+"\n") {
			t.Errorf("missing section line %s", section)
		}
	}

	// Four quarter rows even with no sales.
	if !strings.Contains(out, `"Q1 (Apr-Jun)",0,0.00,0.00,0.00`) {
		t.Error("missing zero-filled Q1 row")
	}
	if !strings.Contains(out, `"Q4 (Jan-Mar)",0,0.00,0.00,0.00`) {
		t.Error("missing zero-filled Q4 row")
	}

	// Register has only its header row.
	idx := strings.Index(out, `"SALES REGISTER"`)
	tail := strings.TrimRight(out[idx:], "\n")
	if got := len(strings.Split(tail, "\n")); got != 2 {
		t.Errorf("register section has %d lines, want header only (2)", got)
	}
}

func TestWriteCSV_RegisterRow(t *testing.T) {
	f := newFixture(t)
	year := NewTaxYear(2024)

	e := f.sold(t, 1, 1000, date(2024, time.May, 1))
	pct := decimal.NewFromInt(20)
	e.CommissionPercentage = &pct
	report := Calculate([]edition.Edition{*e}, f.prints, f.distributors, year, false)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, report); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	out := buf.String()

	want := `"01/05/2024","Harbour Lights - 1","Harbour Lights","Direct",1000.00,20.00,200.00,800.00,"No"`
	if !strings.Contains(out, want+"\n") {
		t.Errorf("register row not found:\nwant %s\nin:\n%s", want, out)
	}
}

func TestWriteCSV_QuotesEscaped(t *testing.T) {
	f := newFixture(t)
	year := NewTaxYear(2024)

	e := f.sold(t, 1, 100, date(2024, time.May, 1))
	e.DisplayName = `The "Storm" - 1`
	report := Calculate([]edition.Edition{*e}, f.prints, f.distributors, year, false)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, report); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}

	if !strings.Contains(buf.String(), `"The ""Storm"" - 1"`) {
		t.Error("embedded quotes should be doubled")
	}
}

func TestWriteCSV_PreviousYearSection(t *testing.T) {
	f := newFixture(t)
	year := NewTaxYear(2024)

	prior := f.sold(t, 1, 300, date(2023, time.June, 1))
	report := Calculate([]edition.Edition{*prior}, f.prints, f.distributors, year, true)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, report); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, `"PREVIOUS YEAR","2023-24"`) {
		t.Error("missing previous-year header")
	}
	if !strings.Contains(out, `"PREVIOUS GROSS REVENUE",300.00`) {
		t.Error("missing previous-year gross line")
	}
}

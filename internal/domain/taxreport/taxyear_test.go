package taxreport

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestForDate_AprilBoundary(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{date(2024, time.April, 5), "2023-24"},
		{date(2024, time.April, 6), "2024-25"},
		{date(2025, time.April, 5), "2024-25"},
		{date(2025, time.April, 6), "2025-26"},
		{date(2024, time.December, 31), "2024-25"},
		{date(2025, time.January, 1), "2024-25"},
	}
	for _, c := range cases {
		if got := ForDate(c.in).Label(); got != c.want {
			t.Errorf("ForDate(%s) = %s, want %s", c.in.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestForDate_TimeOfDayIgnored(t *testing.T) {
	evening := time.Date(2024, time.April, 5, 23, 59, 59, 0, time.UTC)
	if got := ForDate(evening).Label(); got != "2023-24" {
		t.Fatalf("ForDate late on April 5 = %s, want 2023-24", got)
	}
}

func TestContains_Inclusive(t *testing.T) {
	year := NewTaxYear(2024)

	if !year.Contains(date(2024, time.April, 6)) {
		t.Error("start date should be inside the year")
	}
	if !year.Contains(date(2025, time.April, 5)) {
		t.Error("end date should be inside the year")
	}
	if year.Contains(date(2024, time.April, 5)) {
		t.Error("day before start should be outside")
	}
	if year.Contains(date(2025, time.April, 6)) {
		t.Error("day after end should be outside")
	}
}

func TestLabel_CenturyRollover(t *testing.T) {
	if got := NewTaxYear(1999).Label(); got != "1999-00" {
		t.Fatalf("Label() = %s, want 1999-00", got)
	}
}

func TestPrevious(t *testing.T) {
	prev := NewTaxYear(2024).Previous()
	if prev.StartYear != 2023 {
		t.Fatalf("Previous().StartYear = %d, want 2023", prev.StartYear)
	}
	if prev.Label() != "2023-24" {
		t.Fatalf("Previous().Label() = %s, want 2023-24", prev.Label())
	}
}

func TestMonthIndex(t *testing.T) {
	cases := map[time.Month]int{
		time.April:    1,
		time.May:      2,
		time.December: 9,
		time.January:  10,
		time.March:    12,
	}
	for month, want := range cases {
		if got := MonthIndex(month); got != want {
			t.Errorf("MonthIndex(%s) = %d, want %d", month, got, want)
		}
	}
}

func TestQuarterOf(t *testing.T) {
	cases := map[time.Month]int{
		time.April:   1,
		time.June:    1,
		time.July:    2,
		time.October: 3,
		time.January: 4,
		time.March:   4,
	}
	for month, want := range cases {
		if got := QuarterOf(month); got != want {
			t.Errorf("QuarterOf(%s) = %d, want %d", month, got, want)
		}
	}
}

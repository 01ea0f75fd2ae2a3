package utils

import (
	"testing"
	"time"
)

func TestResolvePeriodFromYear(t *testing.T) {
	start, end, err := ResolvePeriod("2025", "", "")
	if err != nil {
		t.Fatalf("ResolvePeriod: %v", err)
	}
	if !start.Equal(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if end.Year() != 2025 || end.Month() != time.December || end.Day() != 31 {
		t.Errorf("end = %v", end)
	}
	// Last instant of the year: anything on Dec 31 is still inside.
	lastSale := time.Date(2025, time.December, 31, 18, 30, 0, 0, time.UTC)
	if lastSale.After(end) {
		t.Errorf("end %v excludes transactions late on Dec 31", end)
	}
}

func TestResolvePeriodFromExplicitDates(t *testing.T) {
	start, end, err := ResolvePeriod("", "2025-03-01", "2025-06-30")
	if err != nil {
		t.Fatalf("ResolvePeriod: %v", err)
	}
	if !start.Equal(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("start = %v", start)
	}
	if end.Before(time.Date(2025, time.June, 30, 23, 0, 0, 0, time.UTC)) {
		t.Errorf("end = %v, want end of June 30", end)
	}
}

func TestResolvePeriodErrors(t *testing.T) {
	tests := []struct {
		name                  string
		year, start, end string
	}{
		{"nothing given", "", "", ""},
		{"bad year", "20x5", "", ""},
		{"missing end", "", "2025-01-01", ""},
		{"bad start format", "", "01-01-2025", "2025-12-31"},
		{"bad end format", "", "2025-01-01", "31-12-2025"},
		{"reversed range", "", "2025-12-31", "2025-01-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ResolvePeriod(tt.year, tt.start, tt.end); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestResolvePeriodYearWinsOverDates(t *testing.T) {
	start, _, err := ResolvePeriod("2024", "2025-01-01", "2025-12-31")
	if err != nil {
		t.Fatalf("ResolvePeriod: %v", err)
	}
	if start.Year() != 2024 {
		t.Errorf("year parameter should take precedence, got start %v", start)
	}
}

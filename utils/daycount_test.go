package utils_test

import (
	"math"
	"testing"
	"time"

	"github.com/meenmo/rateslib/calendar"
	"github.com/meenmo/rateslib/utils"
)

func TestYearFraction_Actual360(t *testing.T) {
	t.Parallel()

	dc := utils.NewDayCounter(utils.Actual360)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	// 181 actual days.
	if got := dc.DayCount(start, end); got != 181 {
		t.Fatalf("DayCount mismatch: got %v", got)
	}
	if got := dc.YearFraction(start, end); math.Abs(got-181.0/360.0) > 1e-12 {
		t.Fatalf("YearFraction mismatch: got %.12f", got)
	}
}

func TestYearFraction_Actual365Fixed(t *testing.T) {
	t.Parallel()

	dc := utils.NewDayCounter(utils.Actual365Fixed)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	// 2024 is a leap year: 366 actual days over a 365 denominator.
	if got := dc.YearFraction(start, end); math.Abs(got-366.0/365.0) > 1e-12 {
		t.Fatalf("YearFraction mismatch: got %.12f", got)
	}
}

func TestYearFraction_Thirty360EndOfMonth(t *testing.T) {
	t.Parallel()

	dc := utils.NewDayCounter(utils.Thirty360)

	cases := []struct {
		name  string
		start time.Time
		end   time.Time
		want  float64
	}{
		{
			name:  "both month ends clip to 30",
			start: time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
			want:  180.0 / 360.0,
		},
		{
			name:  "end on the 31st with start mid-month keeps 31",
			start: time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
			want:  76.0 / 360.0,
		},
		{
			name:  "regular half year",
			start: time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 8, 15, 0, 0, 0, 0, time.UTC),
			want:  180.0 / 360.0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := dc.YearFraction(tc.start, tc.end); math.Abs(got-tc.want) > 1e-12 {
				t.Fatalf("YearFraction mismatch: got %.12f want %.12f", got, tc.want)
			}
		})
	}
}

func TestYearFraction_ActualActualISDA_YearSplit(t *testing.T) {
	t.Parallel()

	dc := utils.NewDayCounter(utils.ActualActual)
	start := time.Date(2023, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)

	// 184 days in 2023 over 365, 182 days in 2024 over 366.
	want := 184.0/365.0 + 182.0/366.0
	if got := dc.YearFraction(start, end); math.Abs(got-want) > 1e-12 {
		t.Fatalf("YearFraction mismatch: got %.12f want %.12f", got, want)
	}
}

func TestYearFraction_EqualDatesIsZero(t *testing.T) {
	t.Parallel()

	d := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	for _, conv := range []utils.DayCountConvention{
		utils.Actual360, utils.Actual365Fixed, utils.Thirty360, utils.ActualActual,
	} {
		if got := utils.NewDayCounter(conv).YearFraction(d, d); got != 0 {
			t.Fatalf("%s: YearFraction(d, d) mismatch: got %v", conv, got)
		}
	}
}

func TestYearFraction_Business252(t *testing.T) {
	t.Parallel()

	dc := utils.NewBusiness252(calendar.WeekendsOnly)
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)  // Monday
	end := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)   // two weeks later

	if got := dc.DayCount(start, end); got != 10 {
		t.Fatalf("DayCount mismatch: got %v", got)
	}
	if got := dc.YearFraction(start, end); math.Abs(got-10.0/252.0) > 1e-12 {
		t.Fatalf("YearFraction mismatch: got %.12f", got)
	}
}

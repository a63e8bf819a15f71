package utils_test

import (
	"testing"
	"time"

	"github.com/meenmo/rateslib/utils"
)

func TestAddMonth_EndOfMonthClipping(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		start  time.Time
		months int
		want   time.Time
	}{
		{
			name:   "jan 31 plus one month clips to feb 28",
			start:  utils.NewDate(2025, time.January, 31),
			months: 1,
			want:   utils.NewDate(2025, time.February, 28),
		},
		{
			name:   "jan 31 plus one month in a leap year clips to feb 29",
			start:  utils.NewDate(2024, time.January, 31),
			months: 1,
			want:   utils.NewDate(2024, time.February, 29),
		},
		{
			name:   "mid month is untouched",
			start:  utils.NewDate(2025, time.March, 15),
			months: 3,
			want:   utils.NewDate(2025, time.June, 15),
		},
		{
			name:   "negative months",
			start:  utils.NewDate(2025, time.March, 31),
			months: -1,
			want:   utils.NewDate(2025, time.February, 28),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := utils.AddMonth(tc.start, tc.months); !got.Equal(tc.want) {
				t.Fatalf("AddMonth mismatch: got %s want %s",
					got.Format("2006-01-02"), tc.want.Format("2006-01-02"))
			}
		})
	}
}

func TestDateParser(t *testing.T) {
	t.Parallel()

	got, err := utils.DateParser("2025-06-30")
	if err != nil {
		t.Fatalf("DateParser error: %v", err)
	}
	if !got.Equal(utils.NewDate(2025, time.June, 30)) {
		t.Fatalf("DateParser mismatch: got %s", got.Format("2006-01-02"))
	}

	if _, err := utils.DateParser("30/06/2025"); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestAdjacentDates(t *testing.T) {
	t.Parallel()

	dates := []time.Time{
		utils.NewDate(2025, time.January, 1),
		utils.NewDate(2025, time.July, 1),
		utils.NewDate(2026, time.January, 1),
	}
	target := utils.NewDate(2025, time.March, 10)

	before, after := utils.AdjacentDates(target, dates)
	if !before.Equal(dates[0]) || !after.Equal(dates[1]) {
		t.Fatalf("AdjacentDates mismatch: got %s / %s",
			before.Format("2006-01-02"), after.Format("2006-01-02"))
	}
}

func TestRoundTo(t *testing.T) {
	t.Parallel()

	if got := utils.RoundTo(0.0415284788, 4); got != 0.0415 {
		t.Fatalf("RoundTo mismatch: got %v", got)
	}
	if got := utils.RoundTo(99.815972, 2); got != 99.82 {
		t.Fatalf("RoundTo mismatch: got %v", got)
	}
	if got := utils.RoundTo(-1.005, 0); got != -1.0 {
		t.Fatalf("RoundTo mismatch: got %v", got)
	}
}

func TestEndOfMonth(t *testing.T) {
	t.Parallel()

	if got := utils.EndOfMonth(utils.NewDate(2024, time.February, 10)); !got.Equal(utils.NewDate(2024, time.February, 29)) {
		t.Fatalf("EndOfMonth mismatch: got %s", got.Format("2006-01-02"))
	}
	if !utils.IsEndOfMonth(utils.NewDate(2025, time.April, 30)) {
		t.Fatalf("expected april 30 to be end of month")
	}
	if utils.IsEndOfMonth(utils.NewDate(2025, time.April, 29)) {
		t.Fatalf("april 29 is not end of month")
	}
}

package billing

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMembershipActive(t *testing.T) {
	now := date(2024, 6, 15)

	tests := []struct {
		name string
		end  time.Time
		want bool
	}{
		{"ends tomorrow", date(2024, 6, 16), true},
		{"ends today", date(2024, 6, 15), true},
		{"ended yesterday", date(2024, 6, 14), false},
		{"ended last month", date(2024, 5, 1), false},
		{"ends far in future", date(2025, 1, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MembershipActive(tt.end, now); got != tt.want {
				t.Errorf("MembershipActive(%v, %v) = %v, want %v", tt.end, now, got, tt.want)
			}
		})
	}
}

func TestDaysUntilExpiration(t *testing.T) {
	now := date(2024, 6, 15)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{"ten days left", date(2024, 6, 25), 10},
		{"one day left", date(2024, 6, 16), 1},
		{"expires today", date(2024, 6, 15), 0},
		{"expired yesterday", date(2024, 6, 14), -1},
		{"expired a week ago", date(2024, 6, 8), -7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntilExpiration(tt.end, now); got != tt.want {
				t.Errorf("DaysUntilExpiration = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDaysUntilExpiration_PartialDayRoundsUp(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 16, 0, 0, 0, 0, time.UTC)

	if got := DaysUntilExpiration(end, now); got != 1 {
		t.Errorf("6 hours remaining should round up to 1 day, got %d", got)
	}
}

func TestDaysLeftClamped(t *testing.T) {
	now := date(2024, 6, 15)

	if got := DaysLeftClamped(date(2024, 6, 10), now); got != 0 {
		t.Errorf("expired membership should clamp to 0, got %d", got)
	}
	if got := DaysLeftClamped(date(2024, 6, 20), now); got != 5 {
		t.Errorf("expected 5 days left, got %d", got)
	}
}

func TestNextBillingDate(t *testing.T) {
	start := date(2024, 1, 1)
	want := date(2024, 1, 31)

	if got := NextBillingDate(start); !got.Equal(want) {
		t.Errorf("NextBillingDate(%v) = %v, want %v", start, got, want)
	}
}

func TestNextBillingDate_NotCalendarMonthAware(t *testing.T) {
	// Fixed 30-day cycle: February start lands in March.
	start := date(2024, 2, 1)
	want := date(2024, 3, 2)

	if got := NextBillingDate(start); !got.Equal(want) {
		t.Errorf("NextBillingDate(%v) = %v, want %v", start, got, want)
	}
}

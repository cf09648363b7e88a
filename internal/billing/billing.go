// Package billing derives membership lifecycle state from dates. All functions
// are pure; callers supply the reference time so read paths and schedulers
// agree on the classification.
package billing

import "time"

// BillingCycleDays is the fixed renewal cycle. Not calendar-month aware.
const BillingCycleDays = 30

// MembershipActive reports whether a membership ending at end is still active
// at instant now. A membership ending today is still active.
func MembershipActive(end, now time.Time) bool {
	return !now.After(end)
}

// DaysUntilExpiration returns the signed number of days until end, rounded up.
// Negative values mean the membership already expired; callers that only
// display remaining days should use DaysLeftClamped instead.
func DaysUntilExpiration(end, now time.Time) int {
	diff := end.Sub(now)
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}

// DaysLeftClamped returns DaysUntilExpiration clamped to zero for display.
func DaysLeftClamped(end, now time.Time) int {
	days := DaysUntilExpiration(end, now)
	if days < 0 {
		return 0
	}
	return days
}

// NextBillingDate returns the next billing date for a membership that started
// at start: a fixed 30-day cycle.
func NextBillingDate(start time.Time) time.Time {
	return start.AddDate(0, 0, BillingCycleDays)
}

package progression

import "time"

// StreakResult is the outcome of a streak update
type StreakResult struct {
	Streak int
	// NewDay is true when today is a later calendar day than the last active day
	NewDay bool
	// ProtectionUsed is true when a missed day was bridged by protection
	ProtectionUsed bool
}

// UpdateStreak computes the streak after activity on today. Dates compare by
// calendar day as seen in each value's own location; callers normalise both
// to the same zone first.
func UpdateStreak(lastActive *time.Time, current int, today time.Time, hasProtection bool) StreakResult {
	if lastActive == nil {
		return StreakResult{Streak: 1, NewDay: true}
	}

	gap := DaysBetween(*lastActive, today)
	switch {
	case gap < 0:
		// Clock skew: an event older than the last active day changes nothing.
		return StreakResult{Streak: current}
	case gap == 0:
		return StreakResult{Streak: current}
	case gap == 1:
		return StreakResult{Streak: current + 1, NewDay: true}
	case gap == protectedGapDays && hasProtection:
		return StreakResult{Streak: current + 1, NewDay: true, ProtectionUsed: true}
	default:
		return StreakResult{Streak: 1, NewDay: true}
	}
}

// CalendarDate truncates t to midnight of its calendar day in loc, stored as UTC.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole number of calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// protectionAvailable reports whether streak protection has recharged by today
func protectionAvailable(usedOn *time.Time, today time.Time) bool {
	if usedOn == nil {
		return true
	}
	return DaysBetween(*usedOn, today) >= StreakProtectionCooldownDays
}

package schedule

import (
	"time"
)

// IsTimePassed reports whether a dose scheduled at clock on date is in the
// past relative to now. A past date is always passed, a future date never is,
// and on now's own date the scheduled clock time is compared against now.
func IsTimePassed(clock, date string, now time.Time) bool {
	today := now.Format(DateLayout)
	if date != today {
		return date < today
	}

	t, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return false
	}

	doseTime := time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location())
	return now.After(doseTime)
}

// Status derives the aggregate compliance state of one date's entries at now.
func Status(date string, entries []Entry, now time.Time) DateStatus {
	if len(entries) == 0 {
		return StatusNone
	}

	allTaken := true
	anyMissed := false
	for _, e := range entries {
		if !e.Taken {
			allTaken = false
			if IsTimePassed(e.Time, date, now) {
				anyMissed = true
			}
		}
	}

	if allTaken {
		return StatusComplete
	}
	if anyMissed {
		return StatusMissed
	}
	return StatusPartial
}

package schedule

// DateLayout is the calendar-date key format used throughout the schedule.
// Keys in this format compare chronologically when compared lexically.
const DateLayout = "2006-01-02"

// ClockLayout is the time-of-day format for scheduled doses.
const ClockLayout = "15:04"

// Entry is a single scheduled medication dose on a specific date
type Entry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Time  string `json:"time"` // HH:MM, no timezone
	Taken bool   `json:"taken"`
	Date  string `json:"date"` // YYYY-MM-DD
}

// DateStatus is the derived compliance state of a single date
type DateStatus string

const (
	StatusNone     DateStatus = "none"     // no entries for the date
	StatusComplete DateStatus = "complete" // every entry taken
	StatusMissed   DateStatus = "missed"   // an untaken entry whose time has passed
	StatusPartial  DateStatus = "partial"  // entries exist, neither complete nor missed
)

// Day is a dated slot in a rendered window
type Day struct {
	Date    string `json:"date"`
	Display string `json:"display"`
	DayName string `json:"day_name"`
}

// InsightPoint is one date's compliance percentage in a trend series
type InsightPoint struct {
	Date       string  `json:"date"`
	Percentage float64 `json:"percentage"`
}

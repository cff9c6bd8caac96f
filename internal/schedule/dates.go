package schedule

import (
	"strconv"
	"time"
)

// WeekWindowDays is the length of the active timeline window.
const WeekWindowDays = 5

// HistoryWindowDays is the length of the trailing insight window.
const HistoryWindowDays = 15

// WeekWindow returns the next five days starting at today, in order.
// Deterministic for a given today; labels match the original web view
// ("Jun 01" plus a short weekday name).
func WeekWindow(today time.Time) []Day {
	days := make([]Day, 0, WeekWindowDays)
	for i := 0; i < WeekWindowDays; i++ {
		d := today.AddDate(0, 0, i)
		days = append(days, Day{
			Date:    d.Format(DateLayout),
			Display: d.Format("Jan 02"),
			DayName: d.Format("Mon"),
		})
	}
	return days
}

// HistoryWindow returns the trailing fifteen days ending at today, oldest
// first. The display label is the bare day-of-month, as the calendar grid
// shows it.
func HistoryWindow(today time.Time) []Day {
	days := make([]Day, 0, HistoryWindowDays)
	for i := HistoryWindowDays - 1; i >= 0; i-- {
		d := today.AddDate(0, 0, -i)
		days = append(days, Day{
			Date:    d.Format(DateLayout),
			Display: strconv.Itoa(d.Day()),
			DayName: d.Format("Mon"),
		})
	}
	return days
}

package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekWindow(t *testing.T) {
	today := time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC)

	days := WeekWindow(today)
	require.Len(t, days, WeekWindowDays)

	assert.Equal(t, "2024-06-01", days[0].Date)
	assert.Equal(t, "2024-06-05", days[4].Date)
	assert.Equal(t, "Jun 01", days[0].Display)
	assert.Equal(t, "Sat", days[0].DayName)

	// Consecutive dates
	for i := 1; i < len(days); i++ {
		prev, _ := time.Parse(DateLayout, days[i-1].Date)
		cur, _ := time.Parse(DateLayout, days[i].Date)
		assert.Equal(t, 24*time.Hour, cur.Sub(prev))
	}
}

func TestWeekWindow_MonthBoundary(t *testing.T) {
	today := time.Date(2024, 6, 29, 0, 0, 0, 0, time.UTC)

	days := WeekWindow(today)
	assert.Equal(t, "2024-06-29", days[0].Date)
	assert.Equal(t, "2024-07-03", days[4].Date)
	assert.Equal(t, "Jul 03", days[4].Display)
}

func TestHistoryWindow(t *testing.T) {
	today := time.Date(2024, 6, 15, 23, 59, 0, 0, time.UTC)

	days := HistoryWindow(today)
	require.Len(t, days, HistoryWindowDays)

	assert.Equal(t, "2024-06-01", days[0].Date)
	assert.Equal(t, "2024-06-15", days[len(days)-1].Date)
	assert.Equal(t, "1", days[0].Display)
	assert.Equal(t, "15", days[len(days)-1].Display)
}

func TestWindowsDeterministic(t *testing.T) {
	today := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, WeekWindow(today), WeekWindow(today))
	assert.Equal(t, HistoryWindow(today), HistoryWindow(today))
}

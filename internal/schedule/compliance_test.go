package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02T15:04", value)
	if err != nil {
		t.Fatalf("bad test time %q: %v", value, err)
	}
	return parsed
}

func TestIsTimePassed_SameDay(t *testing.T) {
	now := mustTime(t, "2024-06-01T09:00")

	assert.True(t, IsTimePassed("08:00", "2024-06-01", now))
	assert.False(t, IsTimePassed("09:00", "2024-06-01", now))
	assert.False(t, IsTimePassed("20:00", "2024-06-01", now))
}

func TestIsTimePassed_OtherDays(t *testing.T) {
	now := mustTime(t, "2024-06-01T09:00")

	// A past day's doses are always passed, whatever their clock time
	assert.True(t, IsTimePassed("23:59", "2024-05-31", now))
	// A future day's never are
	assert.False(t, IsTimePassed("00:01", "2024-06-02", now))
}

func TestIsTimePassed_UnparsableClock(t *testing.T) {
	now := mustTime(t, "2024-06-01T09:00")
	assert.False(t, IsTimePassed("not-a-time", "2024-06-01", now))
}

func TestStatus_Empty(t *testing.T) {
	now := mustTime(t, "2024-06-01T09:00")
	assert.Equal(t, StatusNone, Status("2024-06-01", nil, now))
	assert.Equal(t, StatusNone, Status("2024-06-01", []Entry{}, now))
}

func TestStatus_Complete(t *testing.T) {
	entries := []Entry{
		{ID: "1", Name: "Vitamin D", Time: "08:00", Taken: true, Date: "2024-06-01"},
		{ID: "2", Name: "Calcium", Time: "20:00", Taken: true, Date: "2024-06-01"},
	}

	// Complete regardless of where now sits
	for _, clock := range []string{"2024-06-01T07:00", "2024-06-01T12:00", "2024-06-02T09:00"} {
		assert.Equal(t, StatusComplete, Status("2024-06-01", entries, mustTime(t, clock)), clock)
	}
}

func TestStatus_Missed(t *testing.T) {
	now := mustTime(t, "2024-06-01T09:00")

	entries := []Entry{
		{ID: "1", Name: "Vitamin D", Time: "08:00", Taken: false, Date: "2024-06-01"},
	}
	assert.Equal(t, StatusMissed, Status("2024-06-01", entries, now))

	// An untaken entry on a strictly earlier date is missed unconditionally
	past := []Entry{
		{ID: "2", Name: "Omega-3", Time: "23:00", Taken: false, Date: "2024-05-30"},
	}
	assert.Equal(t, StatusMissed, Status("2024-05-30", past, now))
}

func TestStatus_Partial(t *testing.T) {
	now := mustTime(t, "2024-06-01T09:00")

	entries := []Entry{
		{ID: "1", Name: "Vitamin D", Time: "08:00", Taken: true, Date: "2024-06-01"},
		{ID: "2", Name: "Calcium", Time: "20:00", Taken: false, Date: "2024-06-01"},
	}
	assert.Equal(t, StatusPartial, Status("2024-06-01", entries, now))
}

func TestStatus_MorningDoseAfterNine(t *testing.T) {
	now := mustTime(t, "2024-06-01T09:00")

	entry := Entry{ID: "1", Name: "Vitamin D", Time: "08:00", Taken: false, Date: "2024-06-01"}
	assert.True(t, IsTimePassed(entry.Time, entry.Date, now))
	assert.Equal(t, StatusMissed, Status("2024-06-01", []Entry{entry}, now))

	entry.Taken = true
	assert.Equal(t, StatusComplete, Status("2024-06-01", []Entry{entry}, now))
}

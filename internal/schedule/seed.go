package schedule

import (
	"time"

	"github.com/google/uuid"
)

// SeedDemo populates the store with the demonstration schedule the original
// app ships: three daily supplements across the active week window. The
// morning and midday doses are pre-marked taken once their hour is behind
// now; the evening dose always starts untaken.
func SeedDemo(store *Store, now time.Time) {
	type dose struct {
		name      string
		clock     string
		takenPast bool // marked taken when now is past its hour
		hour      int
	}
	doses := []dose{
		{name: "Vitamin D", clock: "08:00", takenPast: true, hour: 8},
		{name: "Omega-3", clock: "12:00", takenPast: true, hour: 12},
		{name: "Calcium", clock: "20:00", takenPast: false, hour: 20},
	}

	for _, day := range WeekWindow(now) {
		for _, d := range doses {
			store.Insert(Entry{
				ID:    uuid.NewString(),
				Name:  d.name,
				Time:  d.clock,
				Taken: d.takenPast && now.Hour() > d.hour,
				Date:  day.Date,
			})
		}
	}
}

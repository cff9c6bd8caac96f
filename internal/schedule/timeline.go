package schedule

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Mode is the timeline's view state
type Mode string

const (
	ModeTimeline Mode = "timeline" // 5-day view, a date selected
	ModeAdding   Mode = "adding"   // add-entry draft open
	ModeHistory  Mode = "history"  // 15-day grid and insights
)

// Timeline orchestrates user actions against the schedule store and
// re-derives compliance and insight views after every mutation. It is the
// store's only writer for the session.
type Timeline struct {
	mu       sync.RWMutex
	store    *Store
	clock    func() time.Time
	logger   *zap.Logger
	selected string
	mode     Mode
}

// EntryView is an entry annotated with whether its scheduled time has passed
type EntryView struct {
	Entry
	TimePassed bool `json:"time_passed"`
}

// DayView is a window day annotated with its derived status
type DayView struct {
	Day
	Status DateStatus `json:"status"`
}

// WeekView is the active timeline: the five-day window, the selected date,
// and that date's entries.
type WeekView struct {
	Days     []DayView   `json:"days"`
	Selected string      `json:"selected"`
	Entries  []EntryView `json:"entries"`
	Mode     Mode        `json:"mode"`
}

// HistoryView is the 15-day grid plus the compliance trend and its average
type HistoryView struct {
	Days    []DayView      `json:"days"`
	Trend   []InsightPoint `json:"trend"`
	Average float64        `json:"average"`
}

// NewTimeline creates a timeline over store. clock supplies "now" for every
// derivation so tests can pin it; pass time.Now for production use.
func NewTimeline(store *Store, clock func() time.Time, logger *zap.Logger) *Timeline {
	t := &Timeline{
		store:  store,
		clock:  clock,
		logger: logger,
		mode:   ModeTimeline,
	}
	t.selected = WeekWindow(clock())[0].Date
	return t
}

// SelectDate moves the selection to date. Dates outside the current week
// window are ignored so a stale client cannot select into the past.
func (t *Timeline) SelectDate(date string) bool {
	now := t.clock()
	for _, day := range WeekWindow(now) {
		if day.Date == date {
			t.mu.Lock()
			t.selected = date
			t.mu.Unlock()
			return true
		}
	}

	t.logger.Debug("rejected date selection outside week window", zap.String("date", date))
	return false
}

// Selected returns the currently selected date
func (t *Timeline) Selected() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.selected
}

// BeginAdd opens the add-entry draft
func (t *Timeline) BeginAdd() {
	t.mu.Lock()
	t.mode = ModeAdding
	t.mu.Unlock()
}

// CancelAdd discards the draft without touching the store
func (t *Timeline) CancelAdd() {
	t.mu.Lock()
	if t.mode == ModeAdding {
		t.mode = ModeTimeline
	}
	t.mu.Unlock()
}

// SaveEntry commits an add. With allDays the entry replicates across every
// day of the week window, one independent entry per date; otherwise it lands
// on the selected date. Validation failure leaves the store untouched and
// keeps the draft open.
func (t *Timeline) SaveEntry(name, clock string, allDays bool) ([]Entry, error) {
	now := t.clock()

	var replicate []string
	if allDays {
		for _, day := range WeekWindow(now) {
			replicate = append(replicate, day.Date)
		}
	}

	added, err := t.store.AddEntry(t.Selected(), name, clock, replicate)
	if err != nil {
		return nil, err
	}

	t.mu.Lock()
	t.mode = ModeTimeline
	t.mu.Unlock()

	t.logger.Info("added schedule entries",
		zap.String("name", name),
		zap.String("time", clock),
		zap.Int("count", len(added)),
	)
	return added, nil
}

// ToggleTaken flips an entry's taken flag. A miss is reported to the caller
// but is not an error.
func (t *Timeline) ToggleTaken(id string) (Entry, bool) {
	entry, ok := t.store.ToggleTaken(id)
	if !ok {
		t.logger.Debug("toggle on unknown entry id", zap.String("id", id))
		return Entry{}, false
	}

	t.logger.Info("toggled entry",
		zap.String("id", id),
		zap.String("name", entry.Name),
		zap.Bool("taken", entry.Taken),
	)
	return entry, true
}

// ShowHistory switches to the insight view. No store mutation happens on
// this transition, only recomputation.
func (t *Timeline) ShowHistory() {
	t.mu.Lock()
	t.mode = ModeHistory
	t.mu.Unlock()
}

// ShowTimeline switches back to the active five-day view
func (t *Timeline) ShowTimeline() {
	t.mu.Lock()
	t.mode = ModeTimeline
	t.mu.Unlock()
}

// Mode returns the current view state
func (t *Timeline) Mode() Mode {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.mode
}

// Week derives the active timeline view at the current clock
func (t *Timeline) Week() WeekView {
	now := t.clock()
	selected := t.Selected()

	window := WeekWindow(now)
	days := make([]DayView, 0, len(window))
	for _, day := range window {
		days = append(days, DayView{
			Day:    day,
			Status: Status(day.Date, t.store.EntriesFor(day.Date), now),
		})
	}

	entries := t.store.EntriesFor(selected)
	views := make([]EntryView, 0, len(entries))
	for _, e := range entries {
		views = append(views, EntryView{
			Entry:      e,
			TimePassed: IsTimePassed(e.Time, e.Date, now),
		})
	}

	return WeekView{
		Days:     days,
		Selected: selected,
		Entries:  views,
		Mode:     t.Mode(),
	}
}

// History derives the 15-day grid, trend, and rolling average at the
// current clock
func (t *Timeline) History() HistoryView {
	now := t.clock()

	window := HistoryWindow(now)
	days := make([]DayView, 0, len(window))
	for _, day := range window {
		days = append(days, DayView{
			Day:    day,
			Status: Status(day.Date, t.store.EntriesFor(day.Date), now),
		})
	}

	trend := Trend(window, t.store)

	return HistoryView{
		Days:    days,
		Trend:   trend,
		Average: AverageCompliance(trend),
	}
}

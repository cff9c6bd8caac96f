package schedule

import (
	"strings"
	"sync"
	"time"

	"github.com/Murari1104/pharmaAi/internal/errors"
	"github.com/google/uuid"
)

// Store holds the per-date medication schedule for one session. All state is
// in-memory and dies with the process. Handlers read concurrently, so access
// is guarded, but there is a single logical writer (the Timeline).
type Store struct {
	mu      sync.RWMutex
	entries map[string][]Entry
}

// NewStore creates an empty schedule store
func NewStore() *Store {
	return &Store{
		entries: make(map[string][]Entry),
	}
}

// EntriesFor returns the entries scheduled on date, in insertion order.
// An unpopulated date yields an empty slice, never an error.
func (s *Store) EntriesFor(date string) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := s.entries[date]
	out := make([]Entry, len(list))
	copy(out, list)
	return out
}

// AddEntry validates and inserts a new untaken entry on date. When replicate
// is non-empty it is used as the full set of target dates, and each date gets
// an independent entry with its own id. Validation happens before any
// mutation: either every entry is added or none is.
func (s *Store) AddEntry(date, name, clock string, replicate []string) ([]Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.ErrEmptyName
	}
	if _, err := time.Parse(ClockLayout, clock); err != nil {
		return nil, errors.Wrap(err, errors.ErrBadTime.Code, errors.ErrBadTime.Message)
	}

	dates := replicate
	if len(dates) == 0 {
		dates = []string{date}
	}

	added := make([]Entry, 0, len(dates))
	for _, d := range dates {
		if _, err := time.Parse(DateLayout, d); err != nil {
			return nil, errors.Wrap(err, errors.ErrNoDates.Code, errors.ErrNoDates.Message)
		}
		added = append(added, Entry{
			ID:    uuid.NewString(),
			Name:  name,
			Time:  clock,
			Taken: false,
			Date:  d,
		})
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range added {
		s.entries[e.Date] = append(s.entries[e.Date], e)
	}

	return added, nil
}

// ToggleTaken flips the taken flag on the entry with the given id, wherever
// it lives. Ids are unique across dates so at most one entry matches. An
// unknown id is a no-op, not an error: a stale id from a re-rendered client
// should not fail the request.
func (s *Store) ToggleTaken(id string) (Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for date, list := range s.entries {
		for i := range list {
			if list[i].ID == id {
				list[i].Taken = !list[i].Taken
				s.entries[date] = list
				return list[i], true
			}
		}
	}

	return Entry{}, false
}

// Insert places a pre-built entry into the store. Seeding uses it; API
// callers go through AddEntry.
func (s *Store) Insert(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[e.Date] = append(s.entries[e.Date], e)
}

// EntryCount returns the total number of entries across all dates
func (s *Store) EntryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n := 0
	for _, list := range s.entries {
		n += len(list)
	}
	return n
}

// Dates returns every populated date key
func (s *Store) Dates() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.entries))
	for d := range s.entries {
		out = append(out, d)
	}
	return out
}

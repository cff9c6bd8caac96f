package schedule

import (
	"testing"

	apperrors "github.com/Murari1104/pharmaAi/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_EntriesForAbsentDate(t *testing.T) {
	store := NewStore()

	entries := store.EntriesFor("2024-06-01")
	assert.NotNil(t, entries)
	assert.Empty(t, entries)
}

func TestStore_AddEntry(t *testing.T) {
	store := NewStore()

	added, err := store.AddEntry("2024-06-01", "Vitamin D", "08:00", nil)
	require.NoError(t, err)
	require.Len(t, added, 1)

	e := added[0]
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "Vitamin D", e.Name)
	assert.Equal(t, "08:00", e.Time)
	assert.False(t, e.Taken)
	assert.Equal(t, "2024-06-01", e.Date)

	entries := store.EntriesFor("2024-06-01")
	require.Len(t, entries, 1)
	assert.Equal(t, e.ID, entries[0].ID)
}

func TestStore_AddEntryReplicated(t *testing.T) {
	store := NewStore()
	dates := []string{"2024-06-01", "2024-06-02", "2024-06-03"}

	added, err := store.AddEntry("2024-06-01", "Omega-3", "12:00", dates)
	require.NoError(t, err)
	require.Len(t, added, 3)

	seen := make(map[string]bool)
	for i, e := range added {
		assert.Equal(t, dates[i], e.Date)
		assert.False(t, e.Taken)
		assert.False(t, seen[e.ID], "entry ids must be distinct")
		seen[e.ID] = true
	}

	for _, d := range dates {
		assert.Len(t, store.EntriesFor(d), 1)
	}
	// Dates outside the replication set stay untouched
	assert.Empty(t, store.EntriesFor("2024-06-04"))
	assert.Equal(t, 3, store.EntryCount())
}

func TestStore_AddEntryEmptyName(t *testing.T) {
	store := NewStore()
	store.Insert(Entry{ID: "seed", Name: "Calcium", Time: "20:00", Date: "2024-06-01"})

	_, err := store.AddEntry("2024-06-01", "   ", "08:00", nil)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrEmptyName.Code, apperrors.GetCode(err))

	// Store unchanged
	assert.Equal(t, 1, store.EntryCount())
	entries := store.EntriesFor("2024-06-01")
	require.Len(t, entries, 1)
	assert.Equal(t, "seed", entries[0].ID)
}

func TestStore_AddEntryBadTime(t *testing.T) {
	store := NewStore()

	for _, clock := range []string{"", "25:00", "8am", "08:61", "8"} {
		_, err := store.AddEntry("2024-06-01", "Vitamin D", clock, nil)
		require.Error(t, err, "clock %q should be rejected", clock)
		assert.Equal(t, apperrors.ErrBadTime.Code, apperrors.GetCode(err))
	}
	assert.Equal(t, 0, store.EntryCount())
}

func TestStore_AddEntryAtomicReplication(t *testing.T) {
	store := NewStore()

	// One bad date in the replication set: nothing is added
	_, err := store.AddEntry("2024-06-01", "Vitamin D", "08:00",
		[]string{"2024-06-01", "garbage", "2024-06-03"})
	require.Error(t, err)
	assert.Equal(t, 0, store.EntryCount())
}

func TestStore_ToggleTaken(t *testing.T) {
	store := NewStore()
	added, err := store.AddEntry("2024-06-01", "Vitamin D", "08:00", nil)
	require.NoError(t, err)
	id := added[0].ID

	entry, ok := store.ToggleTaken(id)
	require.True(t, ok)
	assert.True(t, entry.Taken)

	// Toggling twice restores the original value
	entry, ok = store.ToggleTaken(id)
	require.True(t, ok)
	assert.False(t, entry.Taken)

	entries := store.EntriesFor("2024-06-01")
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Taken)
}

func TestStore_ToggleTakenUnknownID(t *testing.T) {
	store := NewStore()
	store.Insert(Entry{ID: "a", Name: "Calcium", Time: "20:00", Date: "2024-06-01"})

	_, ok := store.ToggleTaken("no-such-id")
	assert.False(t, ok)

	// No-op: the stored entry is untouched
	entries := store.EntriesFor("2024-06-01")
	require.Len(t, entries, 1)
	assert.False(t, entries[0].Taken)
}

func TestStore_InsertionOrderStable(t *testing.T) {
	store := NewStore()
	names := []string{"Vitamin D", "Omega-3", "Calcium"}
	for _, n := range names {
		_, err := store.AddEntry("2024-06-01", n, "08:00", nil)
		require.NoError(t, err)
	}

	entries := store.EntriesFor("2024-06-01")
	require.Len(t, entries, 3)
	for i, n := range names {
		assert.Equal(t, n, entries[i].Name)
	}
}

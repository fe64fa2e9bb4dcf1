package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore keeps students and log entries in memory. Transactions are
// simulated by applying fn directly; the engine's invariants are what is
// under test here, not isolation.
type fakeStore struct {
	present map[int64]bool
	changed map[int64]time.Time
	entries []fakeEntry
	nextID  int64
}

type fakeEntry struct {
	id        int64
	studentID int64
	date      string
	checkIn   string
	checkOut  string
}

func newFakeStore(ids ...int64) *fakeStore {
	s := &fakeStore{present: map[int64]bool{}, changed: map[int64]time.Time{}, nextID: 1}
	for _, id := range ids {
		s.present[id] = false
	}
	return s
}

func (s *fakeStore) InTx(ctx context.Context, fn func(Txn) error) error {
	return fn(s)
}

func (s *fakeStore) History(ctx context.Context, studentID int64) ([]Entry, error) {
	var out []Entry
	for i := len(s.entries) - 1; i >= 0; i-- {
		e := s.entries[i]
		if e.studentID == studentID {
			date, _ := time.Parse("2006-01-02", e.date)
			out = append(out, Entry{ID: e.id, Date: date, CheckIn: e.checkIn, CheckOut: e.checkOut})
		}
	}
	return out, nil
}

func (s *fakeStore) Presence(ctx context.Context, studentID int64) (bool, error) {
	present, ok := s.present[studentID]
	if !ok {
		return false, ErrStudentNotFound
	}
	return present, nil
}

func (s *fakeStore) SetPresence(ctx context.Context, studentID int64, present bool, at time.Time) error {
	s.present[studentID] = present
	s.changed[studentID] = at
	return nil
}

func (s *fakeStore) OpenEntry(ctx context.Context, studentID int64, date, clock string) error {
	s.entries = append(s.entries, fakeEntry{id: s.nextID, studentID: studentID, date: date, checkIn: clock})
	s.nextID++
	return nil
}

func (s *fakeStore) CloseOpenEntry(ctx context.Context, studentID int64, date, clock string) (bool, error) {
	for i := range s.entries {
		e := &s.entries[i]
		if e.studentID == studentID && e.date == date && e.checkOut == "" {
			e.checkOut = clock
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeStore) openCount(studentID int64) int {
	n := 0
	for _, e := range s.entries {
		if e.studentID == studentID && e.checkOut == "" {
			n++
		}
	}
	return n
}

func TestToggleOpensEntry(t *testing.T) {
	store := newFakeStore(1)
	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 9, 5, 0, 0, istanbul) }

	newState, err := svc.Toggle(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, newState)
	assert.True(t, store.present[1])
	assert.Equal(t, 1, store.openCount(1))
	assert.Equal(t, "09:05:00", store.entries[0].checkIn)
	assert.Equal(t, "2026-03-02", store.entries[0].date)
}

func TestToggleTwiceClosesEntry(t *testing.T) {
	store := newFakeStore(1)
	svc := NewService(store)
	at := time.Date(2026, 3, 2, 9, 0, 0, 0, istanbul)
	svc.now = func() time.Time { return at }

	_, err := svc.Toggle(context.Background(), 1)
	require.NoError(t, err)

	at = at.Add(90 * time.Minute)
	newState, err := svc.Toggle(context.Background(), 1)
	require.NoError(t, err)

	assert.False(t, newState, "second toggle returns to the original state")
	assert.False(t, store.present[1])
	require.Len(t, store.entries, 1)
	assert.Equal(t, "10:30:00", store.entries[0].checkOut)
	assert.Equal(t, 0, store.openCount(1))
}

func TestPresenceMatchesOpenEntry(t *testing.T) {
	// Sequential toggles keep the flag in lockstep with the open-entry
	// count: present exactly when one entry is open.
	store := newFakeStore(1)
	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 8, 0, 0, 0, istanbul) }

	for i := 0; i < 5; i++ {
		_, err := svc.Toggle(context.Background(), 1)
		require.NoError(t, err)
		open := store.openCount(1)
		if store.present[1] {
			assert.Equal(t, 1, open)
		} else {
			assert.Equal(t, 0, open)
		}
	}
}

func TestToggleUnknownStudent(t *testing.T) {
	store := newFakeStore()
	svc := NewService(store)

	_, err := svc.Toggle(context.Background(), 42)
	assert.ErrorIs(t, err, ErrStudentNotFound)
	assert.Empty(t, store.entries)
}

func TestCheckoutWithoutOpenEntry(t *testing.T) {
	// Flag says present but no open entry exists (inherited inconsistency).
	// The toggle must still flip the flag and leave the log untouched.
	store := newFakeStore(1)
	store.present[1] = true
	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 17, 0, 0, 0, istanbul) }

	newState, err := svc.Toggle(context.Background(), 1)
	require.NoError(t, err)
	assert.False(t, newState)
	assert.False(t, store.present[1])
	assert.Empty(t, store.entries)
}

func TestHistoryNewestFirst(t *testing.T) {
	store := newFakeStore(1)
	svc := NewService(store)
	day := time.Date(2026, 3, 2, 9, 0, 0, 0, istanbul)

	for i := 0; i < 2; i++ {
		svc.now = func() time.Time { return day.AddDate(0, 0, i) }
		_, err := svc.Toggle(context.Background(), 1)
		require.NoError(t, err)
		_, err = svc.Toggle(context.Background(), 1)
		require.NoError(t, err)
	}

	entries, err := svc.History(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.True(t, entries[0].Date.After(entries[1].Date))
}

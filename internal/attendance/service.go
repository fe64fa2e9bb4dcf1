package attendance

import (
	"context"
	"errors"
	"log"
	"time"
)

// ErrStudentNotFound signals a toggle against an id with no student record.
var ErrStudentNotFound = errors.New("student not found")

// Entry is one check-in/check-out record for a student on a given date. Clock
// times are "HH:MM"; CheckOut is empty while the stay is still open.
type Entry struct {
	ID       int64
	Date     time.Time
	CheckIn  string
	CheckOut string
}

// Duration renders the entry's stay length per the panel's formatting rule.
func (e Entry) Duration() string {
	return FormatDuration(e.CheckIn, e.CheckOut)
}

// Txn is the set of storage operations the toggle needs, executed inside one
// transaction so the presence flag and the movement log cannot diverge.
type Txn interface {
	// Presence reads the current flag, locking the student row for the rest
	// of the transaction. Returns ErrStudentNotFound for unknown ids.
	Presence(ctx context.Context, studentID int64) (bool, error)
	SetPresence(ctx context.Context, studentID int64, present bool, at time.Time) error
	// OpenEntry inserts a new log row with the given date and check-in clock.
	OpenEntry(ctx context.Context, studentID int64, date, clock string) error
	// CloseOpenEntry stamps the check-out clock on the student's open entry
	// for that date. Reports whether any row was closed.
	CloseOpenEntry(ctx context.Context, studentID int64, date, clock string) (bool, error)
}

// Store is the persistence surface of the attendance engine.
type Store interface {
	InTx(ctx context.Context, fn func(Txn) error) error
	History(ctx context.Context, studentID int64) ([]Entry, error)
}

// Service is the attendance state engine: it owns the present/absent flag and
// the movement log, and keeps the two consistent.
type Service struct {
	store Store
	now   func() time.Time
}

// NewService creates the engine.
func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Toggle flips the student's presence and maintains the movement log: entering
// opens a new entry for today, leaving closes today's open entry. The whole
// sequence runs in one transaction; two concurrent toggles for the same
// student serialize on the row lock instead of racing.
func (s *Service) Toggle(ctx context.Context, studentID int64) (bool, error) {
	var newState bool
	err := s.store.InTx(ctx, func(tx Txn) error {
		present, err := tx.Presence(ctx, studentID)
		if err != nil {
			return err
		}
		newState = !present

		now := s.now().In(istanbul)
		if err := tx.SetPresence(ctx, studentID, newState, now); err != nil {
			return err
		}

		date, clock := DateOf(now), ClockOf(now)
		if newState {
			return tx.OpenEntry(ctx, studentID, date, clock)
		}
		closed, err := tx.CloseOpenEntry(ctx, studentID, date, clock)
		if err != nil {
			return err
		}
		if !closed {
			// The flag said present but no open entry exists for today.
			// Known gap inherited from the source system; the flag write
			// above still lands so the roster stays usable.
			log.Printf("student %d: check-out without an open entry on %s", studentID, date)
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return newState, nil
}

// History returns the student's movement-log entries newest-first by date,
// then by id for same-day ties.
func (s *Service) History(ctx context.Context, studentID int64) ([]Entry, error) {
	return s.store.History(ctx, studentID)
}

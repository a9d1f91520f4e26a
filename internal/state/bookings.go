package state

import (
	"sort"
	"sync"
	"time"

	"playpoint/internal/domain/booking"

	"github.com/google/uuid"
)

// BookingLedger holds reservations distinct from live sessions. The overlap
// check and the insert happen under one critical section, and the
// coordinator additionally serializes per station, so two concurrent
// bookings for the same window can never both pass validation.
type BookingLedger struct {
	mu        sync.RWMutex
	byID      map[uuid.UUID]*booking.Booking
	byStation map[uuid.UUID][]*booking.Booking
}

func NewBookingLedger() *BookingLedger {
	return &BookingLedger{
		byID:      make(map[uuid.UUID]*booking.Booking),
		byStation: make(map[uuid.UUID][]*booking.Booking),
	}
}

// Create validates non-overlap against every non-cancelled booking for the
// station and inserts.
func (l *BookingLedger) Create(stationID, customerID uuid.UUID, slot booking.TimeSlot, now time.Time) (booking.Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, existing := range l.byStation[stationID] {
		if existing.Blocks(slot) {
			return booking.Snapshot{}, ErrOverlapConflict
		}
	}

	b, err := booking.NewBooking(stationID, customerID, slot, now)
	if err != nil {
		return booking.Snapshot{}, err
	}

	l.byID[b.ID()] = b
	l.byStation[stationID] = append(l.byStation[stationID], b)
	return b.Snapshot(), nil
}

func (l *BookingLedger) Confirm(id uuid.UUID, now time.Time) (booking.Snapshot, error) {
	return l.transition(id, func(b *booking.Booking) error {
		return b.Confirm(now)
	})
}

func (l *BookingLedger) Cancel(id uuid.UUID, now time.Time) (booking.Snapshot, error) {
	return l.transition(id, func(b *booking.Booking) error {
		return b.Cancel(now)
	})
}

// MarkConverted flips the booking at check-in. The caller must have already
// secured the station (lock held, session started) so this cannot race a
// concurrent cancel.
func (l *BookingLedger) MarkConverted(id uuid.UUID, now time.Time) (booking.Snapshot, error) {
	return l.transition(id, func(b *booking.Booking) error {
		return b.MarkConverted(now)
	})
}

func (l *BookingLedger) Complete(id uuid.UUID, now time.Time) (booking.Snapshot, error) {
	return l.transition(id, func(b *booking.Booking) error {
		return b.Complete(now)
	})
}

func (l *BookingLedger) transition(id uuid.UUID, fn func(*booking.Booking) error) (booking.Snapshot, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	b, ok := l.byID[id]
	if !ok {
		return booking.Snapshot{}, ErrBookingNotFound
	}
	if err := fn(b); err != nil {
		return booking.Snapshot{}, err
	}
	return b.Snapshot(), nil
}

func (l *BookingLedger) Get(id uuid.UUID) (booking.Snapshot, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	b, ok := l.byID[id]
	if !ok {
		return booking.Snapshot{}, ErrBookingNotFound
	}
	return b.Snapshot(), nil
}

// FindConflicts lists non-cancelled bookings for the station intersecting
// [start, end). Read-only; used by the calendar surface.
func (l *BookingLedger) FindConflicts(stationID uuid.UUID, start, end time.Time) []booking.Snapshot {
	slot, err := booking.NewTimeSlot(start, end.Sub(start))
	if err != nil {
		return nil
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []booking.Snapshot
	for _, b := range l.byStation[stationID] {
		if b.Blocks(slot) {
			out = append(out, b.Snapshot())
		}
	}
	sortByStart(out)
	return out
}

// ListByStation returns every booking for the station, newest window last.
func (l *BookingLedger) ListByStation(stationID uuid.UUID) []booking.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]booking.Snapshot, 0, len(l.byStation[stationID]))
	for _, b := range l.byStation[stationID] {
		out = append(out, b.Snapshot())
	}
	sortByStart(out)
	return out
}

// ListPending returns bookings awaiting confirmation or check-in across all
// stations.
func (l *BookingLedger) ListPending() []booking.Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []booking.Snapshot
	for _, b := range l.byID {
		switch b.Status() {
		case booking.StatusPending, booking.StatusConfirmed:
			out = append(out, b.Snapshot())
		}
	}
	sortByStart(out)
	return out
}

// Load seeds the ledger from persisted snapshots at boot.
func (l *BookingLedger) Load(snaps []booking.Snapshot) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, snap := range snaps {
		slot, err := booking.NewTimeSlot(snap.Start, snap.Duration)
		if err != nil {
			return err
		}
		b := booking.Reconstruct(snap.ID, snap.StationID, snap.CustomerID, slot, snap.Status, snap.CreatedAt, snap.UpdatedAt)
		l.byID[b.ID()] = b
		l.byStation[b.StationID()] = append(l.byStation[b.StationID()], b)
	}
	return nil
}

func sortByStart(snaps []booking.Snapshot) {
	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].Start.Before(snaps[j].Start)
	})
}

package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrMissingCustomer  = errors.New("customer is required")
	ErrAlreadyConverted = errors.New("booking already converted to a session")
	ErrAlreadyCancelled = errors.New("booking already cancelled")
	ErrNotPending       = errors.New("booking is not pending")
	ErrNotConvertible   = errors.New("booking cannot be converted in its current state")
	ErrNotConverted     = errors.New("booking was never converted")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	// StatusConverted means the booking was checked in and became a session.
	// Converted bookings are immutable except for completion.
	StatusConverted Status = "converted"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Booking reserves a station for a future time window without occupying it.
type Booking struct {
	id         uuid.UUID
	stationID  uuid.UUID
	customerID uuid.UUID
	slot       TimeSlot
	status     Status
	createdAt  time.Time
	updatedAt  time.Time
}

func NewBooking(stationID, customerID uuid.UUID, slot TimeSlot, now time.Time) (*Booking, error) {
	if customerID == uuid.Nil {
		return nil, ErrMissingCustomer
	}
	return &Booking{
		id:         uuid.New(),
		stationID:  stationID,
		customerID: customerID,
		slot:       slot,
		status:     StatusPending,
		createdAt:  now,
		updatedAt:  now,
	}, nil
}

// Reconstruct rebuilds a booking from its persisted snapshot.
func Reconstruct(id, stationID, customerID uuid.UUID, slot TimeSlot, status Status, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		id:         id,
		stationID:  stationID,
		customerID: customerID,
		slot:       slot,
		status:     status,
		createdAt:  createdAt,
		updatedAt:  updatedAt,
	}
}

// Confirm is the explicit staff acknowledgement of a pending booking.
func (b *Booking) Confirm(now time.Time) error {
	if b.status != StatusPending {
		return b.stateError()
	}
	b.status = StatusConfirmed
	b.updatedAt = now
	return nil
}

func (b *Booking) Cancel(now time.Time) error {
	switch b.status {
	case StatusPending, StatusConfirmed:
		b.status = StatusCancelled
		b.updatedAt = now
		return nil
	default:
		return b.stateError()
	}
}

// MarkConverted transitions the booking at check-in time. Valid from both
// pending and confirmed.
func (b *Booking) MarkConverted(now time.Time) error {
	switch b.status {
	case StatusPending, StatusConfirmed:
		b.status = StatusConverted
		b.updatedAt = now
		return nil
	default:
		return b.stateError()
	}
}

// Complete closes a converted booking once its session has ended.
func (b *Booking) Complete(now time.Time) error {
	if b.status != StatusConverted {
		return ErrNotConverted
	}
	b.status = StatusCompleted
	b.updatedAt = now
	return nil
}

// Blocks reports whether this booking makes slot unavailable. Cancelled
// bookings release their window; every other status holds it.
func (b *Booking) Blocks(slot TimeSlot) bool {
	if b.status == StatusCancelled {
		return false
	}
	return b.slot.Overlaps(slot)
}

func (b *Booking) stateError() error {
	switch b.status {
	case StatusConverted, StatusCompleted:
		return ErrAlreadyConverted
	case StatusCancelled:
		return ErrAlreadyCancelled
	default:
		return ErrNotPending
	}
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) StationID() uuid.UUID  { return b.stationID }
func (b *Booking) CustomerID() uuid.UUID { return b.customerID }
func (b *Booking) Slot() TimeSlot        { return b.slot }
func (b *Booking) Status() Status        { return b.status }

type Snapshot struct {
	ID         uuid.UUID
	StationID  uuid.UUID
	CustomerID uuid.UUID
	Start      time.Time
	End        time.Time
	Duration   time.Duration
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (b *Booking) Snapshot() Snapshot {
	return Snapshot{
		ID:         b.id,
		StationID:  b.stationID,
		CustomerID: b.customerID,
		Start:      b.slot.Start(),
		End:        b.slot.End(),
		Duration:   b.slot.Duration(),
		Status:     b.status,
		CreatedAt:  b.createdAt,
		UpdatedAt:  b.updatedAt,
	}
}

package events

import (
	"time"

	"playpoint/internal/domain/booking"
	"playpoint/internal/domain/payment"
	"playpoint/internal/domain/session"
	"playpoint/internal/domain/station"

	"github.com/google/uuid"
)

// Type identifies the kind of an engine event.
type Type string

// Session lifecycle events.
const (
	// TypeSessionStarted records a station becoming occupied.
	TypeSessionStarted Type = "session.started"
	// TypeSessionUpdated records a change to a running session (game count).
	TypeSessionUpdated Type = "session.updated"
	// TypeSessionEnded records a session leaving the active map with its
	// final cost and settlement record.
	TypeSessionEnded Type = "session.ended"
)

// Booking lifecycle events.
const (
	TypeBookingCreated   Type = "booking.created"
	TypeBookingConfirmed Type = "booking.confirmed"
	TypeBookingCancelled Type = "booking.cancelled"
	// TypeBookingCheckedIn records a booking converting into a session.
	TypeBookingCheckedIn Type = "booking.checked_in"
)

// Payment events.
const (
	TypePaymentInitiated  Type = "payment.initiated"
	TypePaymentReconciled Type = "payment.reconciled"
)

// Station events.
const (
	TypeStationStatusChanged Type = "station.status_changed"
)

// Stream control events.
const (
	// TypeLagged is delivered to a subscriber whose queue overflowed; events
	// older than the current buffer were dropped for that subscriber only.
	TypeLagged Type = "stream.lagged"
)

// Event is the closed set of engine events. Subscribers switch on the
// concrete type; there is no stringly-typed payload dispatch.
type Event interface {
	EventType() Type
	At() time.Time
}

type SessionStarted struct {
	Session    session.Snapshot
	OccurredAt time.Time
}

func (e SessionStarted) EventType() Type { return TypeSessionStarted }
func (e SessionStarted) At() time.Time   { return e.OccurredAt }

type SessionUpdated struct {
	Session    session.Snapshot
	OccurredAt time.Time
}

func (e SessionUpdated) EventType() Type { return TypeSessionUpdated }
func (e SessionUpdated) At() time.Time   { return e.OccurredAt }

type SessionEnded struct {
	Session     session.Snapshot
	Transaction payment.Snapshot
	OccurredAt  time.Time
}

func (e SessionEnded) EventType() Type { return TypeSessionEnded }
func (e SessionEnded) At() time.Time   { return e.OccurredAt }

type BookingCreated struct {
	Booking    booking.Snapshot
	OccurredAt time.Time
}

func (e BookingCreated) EventType() Type { return TypeBookingCreated }
func (e BookingCreated) At() time.Time   { return e.OccurredAt }

type BookingConfirmed struct {
	Booking    booking.Snapshot
	OccurredAt time.Time
}

func (e BookingConfirmed) EventType() Type { return TypeBookingConfirmed }
func (e BookingConfirmed) At() time.Time   { return e.OccurredAt }

type BookingCancelled struct {
	Booking    booking.Snapshot
	OccurredAt time.Time
}

func (e BookingCancelled) EventType() Type { return TypeBookingCancelled }
func (e BookingCancelled) At() time.Time   { return e.OccurredAt }

type BookingCheckedIn struct {
	Booking    booking.Snapshot
	Session    session.Snapshot
	OccurredAt time.Time
}

func (e BookingCheckedIn) EventType() Type { return TypeBookingCheckedIn }
func (e BookingCheckedIn) At() time.Time   { return e.OccurredAt }

type PaymentInitiated struct {
	Transaction payment.Snapshot
	OccurredAt  time.Time
}

func (e PaymentInitiated) EventType() Type { return TypePaymentInitiated }
func (e PaymentInitiated) At() time.Time   { return e.OccurredAt }

type PaymentReconciled struct {
	Transaction payment.Snapshot
	OccurredAt  time.Time
}

func (e PaymentReconciled) EventType() Type { return TypePaymentReconciled }
func (e PaymentReconciled) At() time.Time   { return e.OccurredAt }

type StationStatusChanged struct {
	Station    station.Snapshot
	OccurredAt time.Time
}

func (e StationStatusChanged) EventType() Type { return TypeStationStatusChanged }
func (e StationStatusChanged) At() time.Time   { return e.OccurredAt }

type Lagged struct {
	// Dropped is the number of events lost since the subscriber last kept up.
	Dropped    int
	OccurredAt time.Time
}

func (e Lagged) EventType() Type { return TypeLagged }
func (e Lagged) At() time.Time   { return e.OccurredAt }

// StationID extracts the station an event concerns, if any.
func StationID(e Event) (uuid.UUID, bool) {
	switch ev := e.(type) {
	case SessionStarted:
		return ev.Session.StationID, true
	case SessionUpdated:
		return ev.Session.StationID, true
	case SessionEnded:
		return ev.Session.StationID, true
	case BookingCreated:
		return ev.Booking.StationID, true
	case BookingConfirmed:
		return ev.Booking.StationID, true
	case BookingCancelled:
		return ev.Booking.StationID, true
	case BookingCheckedIn:
		return ev.Booking.StationID, true
	case PaymentInitiated:
		return ev.Transaction.StationID, true
	case PaymentReconciled:
		return ev.Transaction.StationID, true
	case StationStatusChanged:
		return ev.Station.ID, true
	default:
		return uuid.Nil, false
	}
}

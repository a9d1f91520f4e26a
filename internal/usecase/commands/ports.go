package commands

import (
	"context"

	"playpoint/internal/domain/booking"
	"playpoint/internal/domain/payment"
	"playpoint/internal/domain/session"
	"playpoint/internal/domain/station"
	"playpoint/internal/events"
)

// Publisher is the broadcast side of the engine. Commands publish only
// after the mutation has committed and every station lock is released.
type Publisher interface {
	Publish(ev events.Event)
}

// Archives persist durable copies of state transitions. In-memory state
// stays authoritative; an archive failure is logged and surfaced in logs,
// never rolled back into the command path (the store has single-record
// atomicity only, per the persistence contract).
type SessionArchive interface {
	SaveSession(ctx context.Context, snap session.Snapshot) error
}

type BookingArchive interface {
	SaveBooking(ctx context.Context, snap booking.Snapshot) error
}

type TransactionArchive interface {
	SaveTransaction(ctx context.Context, snap payment.Snapshot) error
}

type StationArchive interface {
	SaveStation(ctx context.Context, snap station.Snapshot) error
}

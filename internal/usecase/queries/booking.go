package queries

import (
	"context"
	"time"

	"playpoint/internal/domain/booking"
	"playpoint/internal/state"

	"github.com/google/uuid"
)

type BookingQueries interface {
	// FindConflicts lists non-cancelled bookings intersecting [start, end)
	// for the station; the calendar surface renders these directly.
	FindConflicts(ctx context.Context, stationID uuid.UUID, start, end time.Time) []BookingView
	ListByStation(ctx context.Context, stationID uuid.UUID) []BookingView
	ListPending(ctx context.Context) []BookingView
}

type bookingQueriesImpl struct {
	ledger *state.BookingLedger
}

func NewBookingQueries(ledger *state.BookingLedger) BookingQueries {
	return &bookingQueriesImpl{ledger: ledger}
}

func (q *bookingQueriesImpl) FindConflicts(_ context.Context, stationID uuid.UUID, start, end time.Time) []BookingView {
	return toBookingViews(q.ledger.FindConflicts(stationID, start, end))
}

func (q *bookingQueriesImpl) ListByStation(_ context.Context, stationID uuid.UUID) []BookingView {
	return toBookingViews(q.ledger.ListByStation(stationID))
}

func (q *bookingQueriesImpl) ListPending(_ context.Context) []BookingView {
	return toBookingViews(q.ledger.ListPending())
}

func toBookingViews(snaps []booking.Snapshot) []BookingView {
	out := make([]BookingView, len(snaps))
	for i, snap := range snaps {
		out[i] = BookingViewFromSnapshot(snap)
	}
	return out
}

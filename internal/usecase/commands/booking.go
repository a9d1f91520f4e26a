package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"playpoint/internal/domain/booking"
	"playpoint/internal/domain/session"
	"playpoint/internal/domain/station"
	"playpoint/internal/events"
	"playpoint/internal/pkg/clock"
	"playpoint/internal/pkg/errs"
	"playpoint/internal/pkg/keylock"
	"playpoint/internal/state"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound     = errs.New("booking not found")
	ErrOverlapConflict     = errs.New("booking overlaps an existing booking")
	ErrInvalidBookingState = errs.New("operation not valid for booking state")
	ErrAlreadyConverted    = errs.New("booking already converted")
	ErrInvalidSlot         = errs.New("invalid booking slot")
)

type CreateBookingInput struct {
	StationID  uuid.UUID
	CustomerID uuid.UUID
	Start      time.Time
	Duration   time.Duration
}

type CheckInInput struct {
	CustomerName string
	GameName     string
	Mode         session.BillingMode
	Pricing      session.Pricing
}

type CheckInResult struct {
	Booking booking.Snapshot
	Session session.Snapshot
}

type BookingCommands interface {
	Create(ctx context.Context, in CreateBookingInput) (booking.Snapshot, error)
	Confirm(ctx context.Context, id uuid.UUID) (booking.Snapshot, error)
	Cancel(ctx context.Context, id uuid.UUID) (booking.Snapshot, error)
	CheckIn(ctx context.Context, id uuid.UUID, in CheckInInput) (CheckInResult, error)
}

type bookingCommandsImpl struct {
	registry *state.StationRegistry
	store    *state.SessionStore
	ledger   *state.BookingLedger
	locks    *keylock.KeyLock
	hub      Publisher
	bookings BookingArchive
	clock    clock.Clock
	logger   *slog.Logger
}

func NewBookingCommands(
	registry *state.StationRegistry,
	store *state.SessionStore,
	ledger *state.BookingLedger,
	locks *keylock.KeyLock,
	hub Publisher,
	bookings BookingArchive,
	clk clock.Clock,
	logger *slog.Logger,
) BookingCommands {
	return &bookingCommandsImpl{
		registry: registry,
		store:    store,
		ledger:   ledger,
		locks:    locks,
		hub:      hub,
		bookings: bookings,
		clock:    clk,
		logger:   logger,
	}
}

func (c *bookingCommandsImpl) Create(ctx context.Context, in CreateBookingInput) (booking.Snapshot, error) {
	snap, err := c.createLocked(ctx, in)
	if err != nil {
		return booking.Snapshot{}, err
	}

	c.hub.Publish(events.BookingCreated{Booking: snap, OccurredAt: snap.CreatedAt})
	return snap, nil
}

func (c *bookingCommandsImpl) createLocked(ctx context.Context, in CreateBookingInput) (booking.Snapshot, error) {
	slot, err := booking.NewTimeSlot(in.Start, in.Duration)
	if err != nil {
		return booking.Snapshot{}, errs.Mark(err, ErrInvalidSlot)
	}

	// The overlap check must run under the same per-station exclusion as
	// the insert, or two concurrent requests could both pass validation.
	c.locks.Lock(in.StationID)
	defer c.locks.Unlock(in.StationID)

	st, err := c.registry.Get(in.StationID)
	if err != nil {
		return booking.Snapshot{}, ErrStationNotFound
	}
	if st.Status != station.StatusActive {
		return booking.Snapshot{}, ErrStationUnavailable
	}

	snap, err := c.ledger.Create(in.StationID, in.CustomerID, slot, c.clock.Now())
	if err != nil {
		if errors.Is(err, state.ErrOverlapConflict) {
			return booking.Snapshot{}, ErrOverlapConflict
		}
		return booking.Snapshot{}, errs.Mark(err, ErrInvalidSlot)
	}

	c.archive(ctx, snap)
	c.logger.Info("booking created", "booking_id", snap.ID, "station_id", snap.StationID)
	return snap, nil
}

func (c *bookingCommandsImpl) Confirm(ctx context.Context, id uuid.UUID) (booking.Snapshot, error) {
	snap, err := c.transitionLocked(ctx, id, c.ledger.Confirm)
	if err != nil {
		return booking.Snapshot{}, err
	}

	c.hub.Publish(events.BookingConfirmed{Booking: snap, OccurredAt: snap.UpdatedAt})
	return snap, nil
}

func (c *bookingCommandsImpl) Cancel(ctx context.Context, id uuid.UUID) (booking.Snapshot, error) {
	snap, err := c.transitionLocked(ctx, id, c.ledger.Cancel)
	if err != nil {
		return booking.Snapshot{}, err
	}

	c.hub.Publish(events.BookingCancelled{Booking: snap, OccurredAt: snap.UpdatedAt})
	return snap, nil
}

func (c *bookingCommandsImpl) transitionLocked(
	ctx context.Context,
	id uuid.UUID,
	fn func(uuid.UUID, time.Time) (booking.Snapshot, error),
) (booking.Snapshot, error) {
	current, err := c.ledger.Get(id)
	if err != nil {
		return booking.Snapshot{}, ErrBookingNotFound
	}

	c.locks.Lock(current.StationID)
	defer c.locks.Unlock(current.StationID)

	snap, err := fn(id, c.clock.Now())
	if err != nil {
		return booking.Snapshot{}, mapBookingError(err)
	}

	c.archive(ctx, snap)
	return snap, nil
}

// CheckIn converts a booking into a live session. Check-in and session
// start form one logical operation under the station lock: when the
// station turns out to be occupied the booking is left untouched.
func (c *bookingCommandsImpl) CheckIn(ctx context.Context, id uuid.UUID, in CheckInInput) (CheckInResult, error) {
	res, err := c.checkInLocked(ctx, id, in)
	if err != nil {
		return CheckInResult{}, err
	}

	c.hub.Publish(events.SessionStarted{Session: res.Session, OccurredAt: res.Session.StartedAt})
	c.hub.Publish(events.BookingCheckedIn{Booking: res.Booking, Session: res.Session, OccurredAt: res.Booking.UpdatedAt})
	return res, nil
}

func (c *bookingCommandsImpl) checkInLocked(ctx context.Context, id uuid.UUID, in CheckInInput) (CheckInResult, error) {
	current, err := c.ledger.Get(id)
	if err != nil {
		return CheckInResult{}, ErrBookingNotFound
	}

	c.locks.Lock(current.StationID)
	defer c.locks.Unlock(current.StationID)

	// Re-read under the lock; the booking may have transitioned since.
	current, err = c.ledger.Get(id)
	if err != nil {
		return CheckInResult{}, ErrBookingNotFound
	}
	switch current.Status {
	case booking.StatusPending, booking.StatusConfirmed:
	default:
		return CheckInResult{}, mapBookingError(booking.ErrAlreadyConverted)
	}

	st, err := c.registry.Get(current.StationID)
	if err != nil {
		return CheckInResult{}, ErrStationNotFound
	}
	if st.Status != station.StatusActive {
		return CheckInResult{}, ErrStationUnavailable
	}
	if in.Mode.IsValid() && !st.Supports(in.Mode) {
		return CheckInResult{}, ErrUnsupportedMode
	}

	now := c.clock.Now()
	bookingID := current.ID
	sessSnap, err := c.store.Start(state.StartSessionParams{
		StationID:    current.StationID,
		CustomerID:   current.CustomerID,
		CustomerName: in.CustomerName,
		GameName:     in.GameName,
		Mode:         in.Mode,
		Pricing:      in.Pricing,
		BookingID:    &bookingID,
	}, now)
	if err != nil {
		if errors.Is(err, state.ErrStationOccupied) {
			return CheckInResult{}, ErrStationOccupied
		}
		return CheckInResult{}, errs.Mark(err, ErrInvalidSessionParams)
	}

	bSnap, err := c.ledger.MarkConverted(id, now)
	if err != nil {
		// Unwind the session so neither side mutates on failure.
		if _, endErr := c.store.End(current.StationID, session.ReasonCancelled, now); endErr != nil {
			c.logger.Error("check-in unwind failed", "booking_id", id, "error", endErr)
		}
		return CheckInResult{}, mapBookingError(err)
	}

	c.archive(ctx, bSnap)
	c.logger.Info("booking checked in",
		"booking_id", id,
		"station_id", current.StationID,
		"session_id", sessSnap.ID,
	)
	return CheckInResult{Booking: bSnap, Session: sessSnap}, nil
}

func (c *bookingCommandsImpl) archive(ctx context.Context, snap booking.Snapshot) {
	if err := c.bookings.SaveBooking(ctx, snap); err != nil {
		c.logger.Error("failed to archive booking", "booking_id", snap.ID, "error", err)
	}
}

func mapBookingError(err error) error {
	switch {
	case errors.Is(err, booking.ErrAlreadyConverted):
		return errs.Mark(err, ErrAlreadyConverted)
	case errors.Is(err, state.ErrBookingNotFound):
		return ErrBookingNotFound
	default:
		return errs.Mark(err, ErrInvalidBookingState)
	}
}

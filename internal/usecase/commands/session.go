package commands

import (
	"context"
	"errors"
	"log/slog"

	"playpoint/internal/domain/payment"
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
	ErrStationNotFound      = errs.New("station not found")
	ErrStationUnavailable   = errs.New("station is under maintenance")
	ErrStationOccupied      = errs.New("station is occupied")
	ErrUnsupportedMode      = errs.New("station does not support billing mode")
	ErrNoActiveSession      = errs.New("no active session on station")
	ErrInvalidSessionParams = errs.New("invalid session parameters")
	ErrInvalidEndReason     = errs.New("invalid end reason")
	ErrInvalidMethod        = errs.New("invalid payment method")
)

type StartSessionInput struct {
	StationID    uuid.UUID
	CustomerID   uuid.UUID
	CustomerName string
	GameName     string
	Mode         session.BillingMode
	Pricing      session.Pricing
}

type EndSessionInput struct {
	Reason session.EndReason
	Method payment.Method
}

type EndSessionResult struct {
	Session     session.Snapshot
	Transaction payment.Snapshot
}

type SessionCommands interface {
	Start(ctx context.Context, in StartSessionInput) (session.Snapshot, error)
	End(ctx context.Context, stationID uuid.UUID, in EndSessionInput) (EndSessionResult, error)
	AddGame(ctx context.Context, stationID uuid.UUID) (session.Snapshot, error)
}

type sessionCommandsImpl struct {
	registry     *state.StationRegistry
	store        *state.SessionStore
	ledger       *state.BookingLedger
	txBook       *state.TransactionBook
	locks        *keylock.KeyLock
	hub          Publisher
	sessions     SessionArchive
	transactions TransactionArchive
	bookings     BookingArchive
	clock        clock.Clock
	logger       *slog.Logger
}

func NewSessionCommands(
	registry *state.StationRegistry,
	store *state.SessionStore,
	ledger *state.BookingLedger,
	txBook *state.TransactionBook,
	locks *keylock.KeyLock,
	hub Publisher,
	sessions SessionArchive,
	transactions TransactionArchive,
	bookings BookingArchive,
	clk clock.Clock,
	logger *slog.Logger,
) SessionCommands {
	return &sessionCommandsImpl{
		registry:     registry,
		store:        store,
		ledger:       ledger,
		txBook:       txBook,
		locks:        locks,
		hub:          hub,
		sessions:     sessions,
		transactions: transactions,
		bookings:     bookings,
		clock:        clk,
		logger:       logger,
	}
}

func (c *sessionCommandsImpl) Start(ctx context.Context, in StartSessionInput) (session.Snapshot, error) {
	snap, err := c.startLocked(ctx, in)
	if err != nil {
		return session.Snapshot{}, err
	}

	c.hub.Publish(events.SessionStarted{Session: snap, OccurredAt: snap.StartedAt})
	return snap, nil
}

func (c *sessionCommandsImpl) startLocked(_ context.Context, in StartSessionInput) (session.Snapshot, error) {
	c.locks.Lock(in.StationID)
	defer c.locks.Unlock(in.StationID)

	if err := c.checkStation(in.StationID, in.Mode); err != nil {
		return session.Snapshot{}, err
	}

	snap, err := c.store.Start(state.StartSessionParams{
		StationID:    in.StationID,
		CustomerID:   in.CustomerID,
		CustomerName: in.CustomerName,
		GameName:     in.GameName,
		Mode:         in.Mode,
		Pricing:      in.Pricing,
	}, c.clock.Now())
	if err != nil {
		if errors.Is(err, state.ErrStationOccupied) {
			return session.Snapshot{}, ErrStationOccupied
		}
		return session.Snapshot{}, errs.Mark(err, ErrInvalidSessionParams)
	}

	c.logger.Info("session started",
		"station_id", snap.StationID,
		"session_id", snap.ID,
		"mode", string(snap.Mode),
	)
	return snap, nil
}

// checkStation validates existence, maintenance and billing capability.
// Callers hold the station lock.
func (c *sessionCommandsImpl) checkStation(stationID uuid.UUID, mode session.BillingMode) error {
	st, err := c.registry.Get(stationID)
	if err != nil {
		return ErrStationNotFound
	}
	if st.Status != station.StatusActive {
		return ErrStationUnavailable
	}
	if !mode.IsValid() {
		return errs.Mark(session.ErrInvalidMode, ErrInvalidSessionParams)
	}
	if !st.Supports(mode) {
		return ErrUnsupportedMode
	}
	return nil
}

func (c *sessionCommandsImpl) End(ctx context.Context, stationID uuid.UUID, in EndSessionInput) (EndSessionResult, error) {
	res, err := c.endLocked(ctx, stationID, in)
	if err != nil {
		return EndSessionResult{}, err
	}

	c.hub.Publish(events.SessionEnded{
		Session:     res.Session,
		Transaction: res.Transaction,
		OccurredAt:  *res.Session.EndedAt,
	})
	return res, nil
}

func (c *sessionCommandsImpl) endLocked(ctx context.Context, stationID uuid.UUID, in EndSessionInput) (EndSessionResult, error) {
	if !in.Reason.IsValid() {
		return EndSessionResult{}, ErrInvalidEndReason
	}
	if !in.Method.IsValid() {
		return EndSessionResult{}, ErrInvalidMethod
	}

	c.locks.Lock(stationID)
	defer c.locks.Unlock(stationID)

	now := c.clock.Now()
	snap, err := c.store.End(stationID, in.Reason, now)
	if err != nil {
		return EndSessionResult{}, ErrNoActiveSession
	}

	tx, err := payment.NewTransaction(snap.ID, stationID, snap.CostCents, in.Method, now)
	if err != nil {
		// Session is already out of the active map; a malformed method was
		// rejected above, so this is unreachable in practice.
		return EndSessionResult{}, errs.Wrap(err, "create transaction")
	}
	txSnap := c.txBook.Add(tx)

	if in.Reason == session.ReasonCancelled && txSnap.Status == payment.StatusPending {
		voided, voidErr := c.txBook.Void(txSnap.ID, now)
		if voidErr != nil {
			return EndSessionResult{}, errs.Wrap(voidErr, "void cancelled transaction")
		}
		txSnap = voided
	}

	if snap.BookingID != nil {
		if bSnap, err := c.ledger.Complete(*snap.BookingID, now); err != nil {
			c.logger.Warn("booking completion skipped", "booking_id", *snap.BookingID, "error", err)
		} else if err := c.bookings.SaveBooking(ctx, bSnap); err != nil {
			c.logger.Error("failed to archive booking", "booking_id", bSnap.ID, "error", err)
		}
	}

	if err := c.sessions.SaveSession(ctx, snap); err != nil {
		c.logger.Error("failed to archive session", "session_id", snap.ID, "error", err)
	}
	if err := c.transactions.SaveTransaction(ctx, txSnap); err != nil {
		c.logger.Error("failed to archive transaction", "transaction_id", txSnap.ID, "error", err)
	}

	c.logger.Info("session ended",
		"station_id", stationID,
		"session_id", snap.ID,
		"reason", string(in.Reason),
		"cost_cents", snap.CostCents,
		"method", string(in.Method),
	)
	return EndSessionResult{Session: snap, Transaction: txSnap}, nil
}

func (c *sessionCommandsImpl) AddGame(ctx context.Context, stationID uuid.UUID) (session.Snapshot, error) {
	snap, err := c.addGameLocked(ctx, stationID)
	if err != nil {
		return session.Snapshot{}, err
	}

	c.hub.Publish(events.SessionUpdated{Session: snap, OccurredAt: c.clock.Now()})
	return snap, nil
}

func (c *sessionCommandsImpl) addGameLocked(_ context.Context, stationID uuid.UUID) (session.Snapshot, error) {
	c.locks.Lock(stationID)
	defer c.locks.Unlock(stationID)

	snap, err := c.store.AddGame(stationID, c.clock.Now())
	if err != nil {
		if errors.Is(err, state.ErrNoActiveSession) {
			return session.Snapshot{}, ErrNoActiveSession
		}
		return session.Snapshot{}, errs.Mark(err, ErrInvalidSessionParams)
	}
	return snap, nil
}

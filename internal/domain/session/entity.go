package session

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidMode     = errors.New("invalid billing mode")
	ErrInvalidPrice    = errors.New("per-game price must be positive")
	ErrInvalidRate     = errors.New("hourly rate must be positive")
	ErrNotPerGame      = errors.New("session is not billed per game")
	ErrMissingCustomer = errors.New("customer is required")
	ErrMissingGame     = errors.New("game name is required")
)

// Pricing carries the mode-specific billing parameters supplied at start.
type Pricing struct {
	// PriceCents is the fixed price per game (per_game mode).
	PriceCents int64
	// Games is the initial game count (per_game mode, defaults to 1).
	Games int
	// RateCents is the hourly rate (hourly mode).
	RateCents int64
}

// Session is a live, billable occupancy of one station. At most one active
// Session exists per station; the session store enforces that invariant and
// owns all mutation.
type Session struct {
	id           uuid.UUID
	stationID    uuid.UUID
	customerID   uuid.UUID
	customerName string
	gameName     string
	mode         BillingMode
	startedAt    time.Time
	priceCents   int64
	games        int
	rateCents    int64
	bookingID    *uuid.UUID
}

func NewSession(
	stationID, customerID uuid.UUID,
	customerName, gameName string,
	mode BillingMode,
	pricing Pricing,
	bookingID *uuid.UUID,
	startedAt time.Time,
) (*Session, error) {
	if customerID == uuid.Nil {
		return nil, ErrMissingCustomer
	}
	if gameName == "" {
		return nil, ErrMissingGame
	}

	games := pricing.Games
	switch mode {
	case ModePerGame:
		if pricing.PriceCents <= 0 {
			return nil, ErrInvalidPrice
		}
		if games < 1 {
			games = 1
		}
	case ModeHourly:
		if pricing.RateCents <= 0 {
			return nil, ErrInvalidRate
		}
		games = 0
	default:
		return nil, ErrInvalidMode
	}

	return &Session{
		id:           uuid.New(),
		stationID:    stationID,
		customerID:   customerID,
		customerName: customerName,
		gameName:     gameName,
		mode:         mode,
		startedAt:    startedAt,
		priceCents:   pricing.PriceCents,
		games:        games,
		rateCents:    pricing.RateCents,
		bookingID:    bookingID,
	}, nil
}

// AddGame bumps the game count of a per-game session.
func (s *Session) AddGame() error {
	if s.mode != ModePerGame {
		return ErrNotPerGame
	}
	s.games++
	return nil
}

// Bill computes the accrued cost frozen at now. Hourly sessions bill every
// started minute: cost = rate × ceil(elapsed minutes) / 60, rounded up to
// whole cents so partial minutes are never free.
func (s *Session) Bill(now time.Time) int64 {
	switch s.mode {
	case ModePerGame:
		return s.priceCents * int64(s.games)
	case ModeHourly:
		elapsed := now.Sub(s.startedAt)
		if elapsed <= 0 {
			return 0
		}
		minutes := int64((elapsed + time.Minute - 1) / time.Minute)
		return (s.rateCents*minutes + 59) / 60
	default:
		return 0
	}
}

func (s *Session) ID() uuid.UUID         { return s.id }
func (s *Session) StationID() uuid.UUID  { return s.stationID }
func (s *Session) CustomerID() uuid.UUID { return s.customerID }
func (s *Session) Mode() BillingMode     { return s.mode }
func (s *Session) StartedAt() time.Time  { return s.startedAt }
func (s *Session) BookingID() *uuid.UUID { return s.bookingID }

// Snapshot is the exported, race-free view of a session used by queries,
// events and persistence. CostCents is the accrual frozen at now.
type Snapshot struct {
	ID           uuid.UUID
	StationID    uuid.UUID
	CustomerID   uuid.UUID
	CustomerName string
	GameName     string
	Mode         BillingMode
	StartedAt    time.Time
	PriceCents   int64
	Games        int
	RateCents    int64
	BookingID    *uuid.UUID
	Duration     time.Duration
	CostCents    int64
	EndedAt      *time.Time
	EndReason    EndReason
}

func (s *Session) Snapshot(now time.Time) Snapshot {
	return Snapshot{
		ID:           s.id,
		StationID:    s.stationID,
		CustomerID:   s.customerID,
		CustomerName: s.customerName,
		GameName:     s.gameName,
		Mode:         s.mode,
		StartedAt:    s.startedAt,
		PriceCents:   s.priceCents,
		Games:        s.games,
		RateCents:    s.rateCents,
		BookingID:    s.bookingID,
		Duration:     now.Sub(s.startedAt),
		CostCents:    s.Bill(now),
	}
}

// EndedSnapshot freezes the final state of a session leaving the active map.
func (s *Session) EndedSnapshot(reason EndReason, now time.Time) Snapshot {
	snap := s.Snapshot(now)
	endedAt := now
	snap.EndedAt = &endedAt
	snap.EndReason = reason
	return snap
}

package queries

import (
	"time"

	"playpoint/internal/domain/booking"
	"playpoint/internal/domain/payment"
	"playpoint/internal/domain/session"
	"playpoint/internal/domain/station"

	"github.com/google/uuid"
)

// Read models (DTO for the read side).

type SessionView struct {
	ID              uuid.UUID  `json:"id"`
	StationID       uuid.UUID  `json:"station_id"`
	CustomerID      uuid.UUID  `json:"customer_id"`
	CustomerName    string     `json:"customer_name"`
	GameName        string     `json:"game_name"`
	BillingMode     string     `json:"billing_mode"`
	StartedAt       time.Time  `json:"started_at"`
	DurationSeconds int64      `json:"duration_seconds"`
	Games           int        `json:"games,omitempty"`
	PriceCents      int64      `json:"price_cents,omitempty"`
	RateCents       int64      `json:"rate_cents,omitempty"`
	CostCents       int64      `json:"cost_cents"`
	BookingID       *uuid.UUID `json:"booking_id,omitempty"`
}

type StationView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	SupportsPerGame bool      `json:"supports_per_game"`
	SupportsHourly  bool      `json:"supports_hourly"`
	Status          string    `json:"status"`
	Occupied        bool      `json:"occupied"`
}

type BookingView struct {
	ID         uuid.UUID `json:"id"`
	StationID  uuid.UUID `json:"station_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type TransactionView struct {
	ID                uuid.UUID  `json:"id"`
	SessionID         uuid.UUID  `json:"session_id"`
	StationID         uuid.UUID  `json:"station_id"`
	AmountCents       int64      `json:"amount_cents"`
	Method            string     `json:"method"`
	ExternalRef       *string    `json:"external_ref,omitempty"`
	ProviderRequestID *string    `json:"provider_request_id,omitempty"`
	Status            string     `json:"status"`
	CreatedAt         time.Time  `json:"created_at"`
	SettledAt         *time.Time `json:"settled_at,omitempty"`
	PendingFor        string     `json:"pending_for,omitempty"`
}

func SessionViewFromSnapshot(snap session.Snapshot) SessionView {
	return SessionView{
		ID:              snap.ID,
		StationID:       snap.StationID,
		CustomerID:      snap.CustomerID,
		CustomerName:    snap.CustomerName,
		GameName:        snap.GameName,
		BillingMode:     string(snap.Mode),
		StartedAt:       snap.StartedAt,
		DurationSeconds: int64(snap.Duration / time.Second),
		Games:           snap.Games,
		PriceCents:      snap.PriceCents,
		RateCents:       snap.RateCents,
		CostCents:       snap.CostCents,
		BookingID:       snap.BookingID,
	}
}

func BookingViewFromSnapshot(snap booking.Snapshot) BookingView {
	return BookingView{
		ID:         snap.ID,
		StationID:  snap.StationID,
		CustomerID: snap.CustomerID,
		Start:      snap.Start,
		End:        snap.End,
		Status:     string(snap.Status),
		CreatedAt:  snap.CreatedAt,
	}
}

func TransactionViewFromSnapshot(snap payment.Snapshot, now time.Time) TransactionView {
	view := TransactionView{
		ID:                snap.ID,
		SessionID:         snap.SessionID,
		StationID:         snap.StationID,
		AmountCents:       snap.AmountCents,
		Method:            string(snap.Method),
		ExternalRef:       snap.ExternalRef,
		ProviderRequestID: snap.ProviderRequestID,
		Status:            string(snap.Status),
		CreatedAt:         snap.CreatedAt,
		SettledAt:         snap.SettledAt,
	}
	if snap.Status == payment.StatusPending {
		view.PendingFor = now.Sub(snap.CreatedAt).Round(time.Second).String()
	}
	return view
}

func StationViewFromSnapshot(snap station.Snapshot, occupied bool) StationView {
	return StationView{
		ID:              snap.ID,
		Name:            snap.Name,
		SupportsPerGame: snap.SupportsPerGame,
		SupportsHourly:  snap.SupportsHourly,
		Status:          string(snap.Status),
		Occupied:        occupied,
	}
}

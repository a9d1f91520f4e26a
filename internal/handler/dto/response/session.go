package response

import (
	"time"

	"playpoint/internal/domain/session"

	"github.com/google/uuid"
)

type SessionResponse struct {
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
	EndedAt         *time.Time `json:"ended_at,omitempty"`
	EndReason       string     `json:"end_reason,omitempty"`
}

func FromSessionSnapshot(snap session.Snapshot) SessionResponse {
	return SessionResponse{
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
		EndedAt:         snap.EndedAt,
		EndReason:       string(snap.EndReason),
	}
}

type EndSessionResponse struct {
	Session     SessionResponse     `json:"session"`
	Transaction TransactionResponse `json:"transaction"`
}

type CurrentCostResponse struct {
	StationID uuid.UUID `json:"station_id"`
	CostCents int64     `json:"cost_cents"`
}

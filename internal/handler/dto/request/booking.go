package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	StationID       uuid.UUID `json:"station_id" binding:"required"`
	CustomerID      uuid.UUID `json:"customer_id" binding:"required"`
	Start           time.Time `json:"start" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,min=1"`
}

func (r *CreateBookingRequest) GetDuration() time.Duration {
	return time.Duration(r.DurationMinutes) * time.Minute
}

// CheckInRequest carries the session parameters the attendant fills in at
// the counter when a booked customer arrives.
type CheckInRequest struct {
	CustomerName string `json:"customer_name" binding:"required"`
	GameName     string `json:"game_name" binding:"required"`
	BillingMode  string `json:"billing_mode" binding:"required,oneof=per_game hourly"`
	PriceCents   int64  `json:"price_cents"`
	Games        int    `json:"games"`
	RateCents    int64  `json:"rate_cents"`
}

package request

import (
	"github.com/google/uuid"
)

type StartSessionRequest struct {
	StationID    uuid.UUID `json:"station_id" binding:"required"`
	CustomerID   uuid.UUID `json:"customer_id" binding:"required"`
	CustomerName string    `json:"customer_name" binding:"required"`
	GameName     string    `json:"game_name" binding:"required"`
	BillingMode  string    `json:"billing_mode" binding:"required,oneof=per_game hourly"`
	PriceCents   int64     `json:"price_cents"`
	Games        int       `json:"games"`
	RateCents    int64     `json:"rate_cents"`
}

type EndSessionRequest struct {
	Reason string `json:"reason" binding:"required,oneof=completed cancelled"`
	Method string `json:"method" binding:"required,oneof=cash mpesa airtel"`
}

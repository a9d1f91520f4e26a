package response

import (
	"time"

	"playpoint/internal/domain/payment"

	"github.com/google/uuid"
)

type TransactionResponse struct {
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
}

func FromTransactionSnapshot(snap payment.Snapshot) TransactionResponse {
	return TransactionResponse{
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
}

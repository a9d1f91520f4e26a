package response

import (
	"time"

	"playpoint/internal/domain/booking"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID         uuid.UUID `json:"id"`
	StationID  uuid.UUID `json:"station_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromBookingSnapshot(snap booking.Snapshot) BookingResponse {
	return BookingResponse{
		ID:         snap.ID,
		StationID:  snap.StationID,
		CustomerID: snap.CustomerID,
		Start:      snap.Start,
		End:        snap.End,
		Status:     string(snap.Status),
		CreatedAt:  snap.CreatedAt,
		UpdatedAt:  snap.UpdatedAt,
	}
}

type CheckInResponse struct {
	Booking BookingResponse `json:"booking"`
	Session SessionResponse `json:"session"`
}

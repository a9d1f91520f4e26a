package response

import (
	"playpoint/internal/domain/station"

	"github.com/google/uuid"
)

type StationResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	SupportsPerGame bool      `json:"supports_per_game"`
	SupportsHourly  bool      `json:"supports_hourly"`
	Status          string    `json:"status"`
}

func FromStationSnapshot(snap station.Snapshot) StationResponse {
	return StationResponse{
		ID:              snap.ID,
		Name:            snap.Name,
		SupportsPerGame: snap.SupportsPerGame,
		SupportsHourly:  snap.SupportsHourly,
		Status:          string(snap.Status),
	}
}

package commands

import (
	"context"
	"errors"
	"log/slog"

	"playpoint/internal/domain/station"
	"playpoint/internal/events"
	"playpoint/internal/pkg/clock"
	"playpoint/internal/pkg/errs"
	"playpoint/internal/pkg/keylock"
	"playpoint/internal/state"

	"github.com/google/uuid"
)

var ErrInvalidStationStatus = errs.New("invalid station status")

type StationCommands interface {
	// SetStatus toggles a station in or out of maintenance. Maintenance
	// does not end a running session; it only blocks new assignments.
	SetStatus(ctx context.Context, stationID uuid.UUID, status station.Status) (station.Snapshot, error)
}

type stationCommandsImpl struct {
	registry *state.StationRegistry
	locks    *keylock.KeyLock
	hub      Publisher
	stations StationArchive
	clock    clock.Clock
	logger   *slog.Logger
}

func NewStationCommands(
	registry *state.StationRegistry,
	locks *keylock.KeyLock,
	hub Publisher,
	stations StationArchive,
	clk clock.Clock,
	logger *slog.Logger,
) StationCommands {
	return &stationCommandsImpl{
		registry: registry,
		locks:    locks,
		hub:      hub,
		stations: stations,
		clock:    clk,
		logger:   logger,
	}
}

func (c *stationCommandsImpl) SetStatus(ctx context.Context, stationID uuid.UUID, status station.Status) (station.Snapshot, error) {
	snap, err := c.setStatusLocked(ctx, stationID, status)
	if err != nil {
		return station.Snapshot{}, err
	}

	c.hub.Publish(events.StationStatusChanged{Station: snap, OccurredAt: c.clock.Now()})
	return snap, nil
}

func (c *stationCommandsImpl) setStatusLocked(ctx context.Context, stationID uuid.UUID, status station.Status) (station.Snapshot, error) {
	c.locks.Lock(stationID)
	defer c.locks.Unlock(stationID)

	snap, err := c.registry.SetStatus(stationID, status)
	if err != nil {
		switch {
		case errors.Is(err, state.ErrStationNotFound):
			return station.Snapshot{}, ErrStationNotFound
		case errors.Is(err, station.ErrInvalidStatus):
			return station.Snapshot{}, errs.Mark(err, ErrInvalidStationStatus)
		default:
			return station.Snapshot{}, err
		}
	}

	if err := c.stations.SaveStation(ctx, snap); err != nil {
		c.logger.Error("failed to archive station", "station_id", snap.ID, "error", err)
	}

	c.logger.Info("station status changed", "station_id", snap.ID, "status", string(snap.Status))
	return snap, nil
}

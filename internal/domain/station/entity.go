package station

import (
	"errors"

	"playpoint/internal/domain/session"

	"github.com/google/uuid"
)

var (
	ErrMissingName   = errors.New("station name is required")
	ErrNoModes       = errors.New("station must support at least one billing mode")
	ErrInvalidStatus = errors.New("invalid station status")
)

// Status is the registry-owned state of a station. Occupancy is not stored
// here; it is derived from the session store.
type Status string

const (
	StatusActive      Status = "active"
	StatusMaintenance Status = "maintenance"
)

func (s Status) IsValid() bool {
	return s == StatusActive || s == StatusMaintenance
}

// Station is a physical gaming rig hosting at most one session at a time.
type Station struct {
	id              uuid.UUID
	name            string
	supportsPerGame bool
	supportsHourly  bool
	status          Status
}

func NewStation(name string, supportsPerGame, supportsHourly bool) (*Station, error) {
	if name == "" {
		return nil, ErrMissingName
	}
	if !supportsPerGame && !supportsHourly {
		return nil, ErrNoModes
	}
	return &Station{
		id:              uuid.New(),
		name:            name,
		supportsPerGame: supportsPerGame,
		supportsHourly:  supportsHourly,
		status:          StatusActive,
	}, nil
}

// Reconstruct rebuilds a station from its persisted snapshot.
func Reconstruct(id uuid.UUID, name string, supportsPerGame, supportsHourly bool, status Status) *Station {
	return &Station{
		id:              id,
		name:            name,
		supportsPerGame: supportsPerGame,
		supportsHourly:  supportsHourly,
		status:          status,
	}
}

func (s *Station) SetStatus(status Status) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	s.status = status
	return nil
}

func (s *Station) ID() uuid.UUID  { return s.id }
func (s *Station) Name() string   { return s.name }
func (s *Station) Status() Status { return s.status }

type Snapshot struct {
	ID              uuid.UUID
	Name            string
	SupportsPerGame bool
	SupportsHourly  bool
	Status          Status
}

func (s *Station) Snapshot() Snapshot {
	return Snapshot{
		ID:              s.id,
		Name:            s.name,
		SupportsPerGame: s.supportsPerGame,
		SupportsHourly:  s.supportsHourly,
		Status:          s.status,
	}
}

// Supports reports whether the station can host a session billed in mode.
func (s Snapshot) Supports(mode session.BillingMode) bool {
	switch mode {
	case session.ModePerGame:
		return s.SupportsPerGame
	case session.ModeHourly:
		return s.SupportsHourly
	default:
		return false
	}
}

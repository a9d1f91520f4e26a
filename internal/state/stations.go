package state

import (
	"sort"
	"sync"

	"playpoint/internal/domain/station"

	"github.com/google/uuid"
)

// StationRegistry is the in-memory catalogue of stations, loaded from
// persistence at boot. Maintenance state lives here; occupancy is derived
// from the session store.
type StationRegistry struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*station.Station
}

func NewStationRegistry() *StationRegistry {
	return &StationRegistry{
		byID: make(map[uuid.UUID]*station.Station),
	}
}

func (r *StationRegistry) Load(snaps []station.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, snap := range snaps {
		r.byID[snap.ID] = station.Reconstruct(snap.ID, snap.Name, snap.SupportsPerGame, snap.SupportsHourly, snap.Status)
	}
}

func (r *StationRegistry) Add(st *station.Station) station.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byID[st.ID()] = st
	return st.Snapshot()
}

func (r *StationRegistry) Get(id uuid.UUID) (station.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	st, ok := r.byID[id]
	if !ok {
		return station.Snapshot{}, ErrStationNotFound
	}
	return st.Snapshot(), nil
}

func (r *StationRegistry) SetStatus(id uuid.UUID, status station.Status) (station.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	st, ok := r.byID[id]
	if !ok {
		return station.Snapshot{}, ErrStationNotFound
	}
	if err := st.SetStatus(status); err != nil {
		return station.Snapshot{}, err
	}
	return st.Snapshot(), nil
}

func (r *StationRegistry) List() []station.Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]station.Snapshot, 0, len(r.byID))
	for _, st := range r.byID {
		out = append(out, st.Snapshot())
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

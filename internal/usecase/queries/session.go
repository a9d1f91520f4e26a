package queries

import (
	"context"
	"errors"

	"playpoint/internal/pkg/clock"
	"playpoint/internal/state"

	"github.com/google/uuid"
)

var ErrNoActiveSession = errors.New("no active session on station")

type SessionQueries interface {
	// ListActive returns every running session with a live cost snapshot.
	ListActive(ctx context.Context) []SessionView
	// CurrentCost is the accrued cost of the station's session right now.
	CurrentCost(ctx context.Context, stationID uuid.UUID) (int64, error)
	// Board is the occupancy view: every station with its derived state.
	Board(ctx context.Context) []StationView
}

type sessionQueriesImpl struct {
	registry *state.StationRegistry
	store    *state.SessionStore
	clock    clock.Clock
}

func NewSessionQueries(registry *state.StationRegistry, store *state.SessionStore, clk clock.Clock) SessionQueries {
	return &sessionQueriesImpl{registry: registry, store: store, clock: clk}
}

func (q *sessionQueriesImpl) ListActive(_ context.Context) []SessionView {
	snaps := q.store.List(q.clock.Now())
	out := make([]SessionView, len(snaps))
	for i, snap := range snaps {
		out[i] = SessionViewFromSnapshot(snap)
	}
	return out
}

func (q *sessionQueriesImpl) CurrentCost(_ context.Context, stationID uuid.UUID) (int64, error) {
	cost, err := q.store.CurrentCost(stationID, q.clock.Now())
	if err != nil {
		return 0, ErrNoActiveSession
	}
	return cost, nil
}

func (q *sessionQueriesImpl) Board(_ context.Context) []StationView {
	stations := q.registry.List()
	out := make([]StationView, len(stations))
	for i, st := range stations {
		out[i] = StationViewFromSnapshot(st, q.store.Occupied(st.ID))
	}
	return out
}

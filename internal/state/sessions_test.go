//go:build unit

package state_test

import (
	"sync"
	"testing"
	"time"

	"playpoint/internal/domain/session"
	"playpoint/internal/state"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

func hourlyParams(stationID uuid.UUID) state.StartSessionParams {
	return state.StartSessionParams{
		StationID:    stationID,
		CustomerID:   uuid.New(),
		CustomerName: "Wanjiku",
		GameName:     "FIFA 25",
		Mode:         session.ModeHourly,
		Pricing:      session.Pricing{RateCents: 30000},
	}
}

func TestSessionStoreStart(t *testing.T) {
	t.Run("station exclusivity", func(t *testing.T) {
		store := state.NewSessionStore()
		stationID := uuid.New()

		_, err := store.Start(hourlyParams(stationID), t0)
		require.NoError(t, err)

		_, err = store.Start(hourlyParams(stationID), t0.Add(time.Minute))
		assert.ErrorIs(t, err, state.ErrStationOccupied)
	})

	t.Run("distinct stations do not contend", func(t *testing.T) {
		store := state.NewSessionStore()

		_, err := store.Start(hourlyParams(uuid.New()), t0)
		require.NoError(t, err)
		_, err = store.Start(hourlyParams(uuid.New()), t0)
		require.NoError(t, err)
	})

	t.Run("concurrent starts admit exactly one", func(t *testing.T) {
		store := state.NewSessionStore()
		stationID := uuid.New()

		const workers = 32
		var wg sync.WaitGroup
		errsCh := make(chan error, workers)

		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := store.Start(hourlyParams(stationID), t0)
				errsCh <- err
			}()
		}
		wg.Wait()
		close(errsCh)

		var started int
		for err := range errsCh {
			if err == nil {
				started++
			} else {
				assert.ErrorIs(t, err, state.ErrStationOccupied)
			}
		}
		assert.Equal(t, 1, started)
	})
}

func TestSessionStoreEnd(t *testing.T) {
	store := state.NewSessionStore()
	stationID := uuid.New()

	_, err := store.Start(hourlyParams(stationID), t0)
	require.NoError(t, err)

	snap, err := store.End(stationID, session.ReasonCompleted, t0.Add(90*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(45000), snap.CostCents)
	require.NotNil(t, snap.EndedAt)

	// The station frees up immediately.
	assert.False(t, store.Occupied(stationID))
	_, err = store.End(stationID, session.ReasonCompleted, t0.Add(2*time.Hour))
	assert.ErrorIs(t, err, state.ErrNoActiveSession)

	_, err = store.Start(hourlyParams(stationID), t0.Add(2*time.Hour))
	assert.NoError(t, err)
}

func TestSessionStoreAddGame(t *testing.T) {
	store := state.NewSessionStore()
	stationID := uuid.New()

	_, err := store.Start(state.StartSessionParams{
		StationID:    stationID,
		CustomerID:   uuid.New(),
		CustomerName: "Otieno",
		GameName:     "Tekken 8",
		Mode:         session.ModePerGame,
		Pricing:      session.Pricing{PriceCents: 20000},
	}, t0)
	require.NoError(t, err)

	snap, err := store.AddGame(stationID, t0.Add(10*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 2, snap.Games)
	assert.Equal(t, int64(40000), snap.CostCents)

	_, err = store.AddGame(uuid.New(), t0)
	assert.ErrorIs(t, err, state.ErrNoActiveSession)
}

func TestSessionStoreCurrentCost(t *testing.T) {
	store := state.NewSessionStore()
	stationID := uuid.New()

	_, err := store.Start(hourlyParams(stationID), t0)
	require.NoError(t, err)

	cost, err := store.CurrentCost(stationID, t0.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(15000), cost)

	_, err = store.CurrentCost(uuid.New(), t0)
	assert.ErrorIs(t, err, state.ErrNoActiveSession)
}

func TestSessionStoreList(t *testing.T) {
	store := state.NewSessionStore()

	_, err := store.Start(hourlyParams(uuid.New()), t0.Add(time.Hour))
	require.NoError(t, err)
	_, err = store.Start(hourlyParams(uuid.New()), t0)
	require.NoError(t, err)

	snaps := store.List(t0.Add(2 * time.Hour))
	require.Len(t, snaps, 2)
	assert.True(t, snaps[0].StartedAt.Before(snaps[1].StartedAt))
}

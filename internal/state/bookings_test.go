//go:build unit

package state_test

import (
	"testing"
	"time"

	"playpoint/internal/domain/booking"
	"playpoint/internal/state"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustSlot(t *testing.T, start time.Time, d time.Duration) booking.TimeSlot {
	t.Helper()
	slot, err := booking.NewTimeSlot(start, d)
	require.NoError(t, err)
	return slot
}

func TestBookingLedgerCreate(t *testing.T) {
	t.Run("overlap on same station conflicts", func(t *testing.T) {
		ledger := state.NewBookingLedger()
		stationID := uuid.New()

		_, err := ledger.Create(stationID, uuid.New(), mustSlot(t, t0, time.Hour), t0)
		require.NoError(t, err)

		// Equal start time is a conflict even with different durations.
		_, err = ledger.Create(stationID, uuid.New(), mustSlot(t, t0, 30*time.Minute), t0)
		assert.ErrorIs(t, err, state.ErrOverlapConflict)

		_, err = ledger.Create(stationID, uuid.New(), mustSlot(t, t0.Add(30*time.Minute), time.Hour), t0)
		assert.ErrorIs(t, err, state.ErrOverlapConflict)
	})

	t.Run("back to back slots coexist", func(t *testing.T) {
		ledger := state.NewBookingLedger()
		stationID := uuid.New()

		_, err := ledger.Create(stationID, uuid.New(), mustSlot(t, t0, time.Hour), t0)
		require.NoError(t, err)

		// [T, T+1h) and [T+1h, T+2h) share only the boundary instant.
		_, err = ledger.Create(stationID, uuid.New(), mustSlot(t, t0.Add(time.Hour), time.Hour), t0)
		assert.NoError(t, err)
	})

	t.Run("same slot on another station is fine", func(t *testing.T) {
		ledger := state.NewBookingLedger()

		_, err := ledger.Create(uuid.New(), uuid.New(), mustSlot(t, t0, time.Hour), t0)
		require.NoError(t, err)
		_, err = ledger.Create(uuid.New(), uuid.New(), mustSlot(t, t0, time.Hour), t0)
		assert.NoError(t, err)
	})

	t.Run("cancelled booking releases its slot", func(t *testing.T) {
		ledger := state.NewBookingLedger()
		stationID := uuid.New()

		first, err := ledger.Create(stationID, uuid.New(), mustSlot(t, t0, time.Hour), t0)
		require.NoError(t, err)

		_, err = ledger.Cancel(first.ID, t0.Add(time.Minute))
		require.NoError(t, err)

		_, err = ledger.Create(stationID, uuid.New(), mustSlot(t, t0, time.Hour), t0.Add(2*time.Minute))
		assert.NoError(t, err)
	})
}

func TestBookingLedgerTransitions(t *testing.T) {
	ledger := state.NewBookingLedger()
	stationID := uuid.New()

	snap, err := ledger.Create(stationID, uuid.New(), mustSlot(t, t0, time.Hour), t0)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusPending, snap.Status)

	snap, err = ledger.Confirm(snap.ID, t0.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, snap.Status)

	snap, err = ledger.MarkConverted(snap.ID, t0.Add(2*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConverted, snap.Status)

	// Converted bookings still block their window.
	_, err = ledger.Create(stationID, uuid.New(), mustSlot(t, t0, time.Hour), t0.Add(3*time.Minute))
	assert.ErrorIs(t, err, state.ErrOverlapConflict)

	snap, err = ledger.Complete(snap.ID, t0.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, booking.StatusCompleted, snap.Status)

	_, err = ledger.Confirm(uuid.New(), t0)
	assert.ErrorIs(t, err, state.ErrBookingNotFound)
}

func TestBookingLedgerFindConflicts(t *testing.T) {
	ledger := state.NewBookingLedger()
	stationID := uuid.New()

	first, err := ledger.Create(stationID, uuid.New(), mustSlot(t, t0, time.Hour), t0)
	require.NoError(t, err)
	_, err = ledger.Create(stationID, uuid.New(), mustSlot(t, t0.Add(2*time.Hour), time.Hour), t0)
	require.NoError(t, err)

	conflicts := ledger.FindConflicts(stationID, t0.Add(30*time.Minute), t0.Add(90*time.Minute))
	require.Len(t, conflicts, 1)
	assert.Equal(t, first.ID, conflicts[0].ID)

	// The probe window is half-open too: ending at a booking's start misses it.
	conflicts = ledger.FindConflicts(stationID, t0.Add(time.Hour), t0.Add(2*time.Hour))
	assert.Empty(t, conflicts)
}

func TestBookingLedgerListPending(t *testing.T) {
	ledger := state.NewBookingLedger()
	stationID := uuid.New()

	first, err := ledger.Create(stationID, uuid.New(), mustSlot(t, t0, time.Hour), t0)
	require.NoError(t, err)
	second, err := ledger.Create(stationID, uuid.New(), mustSlot(t, t0.Add(time.Hour), time.Hour), t0)
	require.NoError(t, err)
	third, err := ledger.Create(stationID, uuid.New(), mustSlot(t, t0.Add(2*time.Hour), time.Hour), t0)
	require.NoError(t, err)

	_, err = ledger.Confirm(second.ID, t0.Add(time.Minute))
	require.NoError(t, err)
	_, err = ledger.Cancel(third.ID, t0.Add(time.Minute))
	require.NoError(t, err)

	pending := ledger.ListPending()
	require.Len(t, pending, 2)
	assert.Equal(t, first.ID, pending[0].ID)
	assert.Equal(t, second.ID, pending[1].ID)
}

func TestBookingLedgerLoad(t *testing.T) {
	ledger := state.NewBookingLedger()
	stationID := uuid.New()

	snaps := []booking.Snapshot{
		{
			ID:         uuid.New(),
			StationID:  stationID,
			CustomerID: uuid.New(),
			Start:      t0,
			End:        t0.Add(time.Hour),
			Duration:   time.Hour,
			Status:     booking.StatusConfirmed,
			CreatedAt:  t0.Add(-time.Hour),
			UpdatedAt:  t0.Add(-30 * time.Minute),
		},
	}
	require.NoError(t, ledger.Load(snaps))

	got, err := ledger.Get(snaps[0].ID)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusConfirmed, got.Status)

	// Loaded bookings participate in overlap checks.
	_, err = ledger.Create(stationID, uuid.New(), mustSlot(t, t0.Add(30*time.Minute), time.Hour), t0)
	assert.ErrorIs(t, err, state.ErrOverlapConflict)
}

//go:build unit

package booking_test

import (
	"testing"
	"time"

	"playpoint/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var base = time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC)

func slot(t *testing.T, start time.Time, d time.Duration) booking.TimeSlot {
	t.Helper()
	s, err := booking.NewTimeSlot(start, d)
	require.NoError(t, err)
	return s
}

func newBooking(t *testing.T, start time.Time, d time.Duration) *booking.Booking {
	t.Helper()
	b, err := booking.NewBooking(uuid.New(), uuid.New(), slot(t, start, d), base)
	require.NoError(t, err)
	return b
}

func TestNewTimeSlot(t *testing.T) {
	_, err := booking.NewTimeSlot(time.Time{}, time.Hour)
	assert.ErrorIs(t, err, booking.ErrInvalidSlot)

	_, err = booking.NewTimeSlot(base, 0)
	assert.ErrorIs(t, err, booking.ErrInvalidSlot)

	_, err = booking.NewTimeSlot(base, -time.Hour)
	assert.ErrorIs(t, err, booking.ErrInvalidSlot)
}

func TestTimeSlotOverlaps(t *testing.T) {
	cases := []struct {
		name string
		a, b booking.TimeSlot
		want bool
	}{
		{
			name: "identical slots",
			a:    slot(t, base, time.Hour),
			b:    slot(t, base, time.Hour),
			want: true,
		},
		{
			name: "equal start different lengths",
			a:    slot(t, base, time.Hour),
			b:    slot(t, base, 30*time.Minute),
			want: true,
		},
		{
			name: "partial overlap",
			a:    slot(t, base, time.Hour),
			b:    slot(t, base.Add(30*time.Minute), time.Hour),
			want: true,
		},
		{
			name: "contained slot",
			a:    slot(t, base, 2*time.Hour),
			b:    slot(t, base.Add(30*time.Minute), 15*time.Minute),
			want: true,
		},
		{
			name: "back to back does not overlap",
			a:    slot(t, base, time.Hour),
			b:    slot(t, base.Add(time.Hour), time.Hour),
			want: false,
		},
		{
			name: "disjoint",
			a:    slot(t, base, time.Hour),
			b:    slot(t, base.Add(3*time.Hour), time.Hour),
			want: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.a.Overlaps(tc.b))
			assert.Equal(t, tc.want, tc.b.Overlaps(tc.a), "overlap must be symmetric")
		})
	}
}

func TestBookingLifecycle(t *testing.T) {
	now := base.Add(time.Minute)

	t.Run("confirm then convert then complete", func(t *testing.T) {
		b := newBooking(t, base.Add(time.Hour), time.Hour)

		require.NoError(t, b.Confirm(now))
		assert.Equal(t, booking.StatusConfirmed, b.Status())

		require.NoError(t, b.MarkConverted(now))
		assert.Equal(t, booking.StatusConverted, b.Status())

		require.NoError(t, b.Complete(now))
		assert.Equal(t, booking.StatusCompleted, b.Status())
	})

	t.Run("convert straight from pending", func(t *testing.T) {
		b := newBooking(t, base.Add(time.Hour), time.Hour)
		require.NoError(t, b.MarkConverted(now))
	})

	t.Run("cancel after convert fails", func(t *testing.T) {
		b := newBooking(t, base.Add(time.Hour), time.Hour)
		require.NoError(t, b.MarkConverted(now))
		assert.ErrorIs(t, b.Cancel(now), booking.ErrAlreadyConverted)
	})

	t.Run("convert after cancel fails", func(t *testing.T) {
		b := newBooking(t, base.Add(time.Hour), time.Hour)
		require.NoError(t, b.Cancel(now))
		assert.ErrorIs(t, b.MarkConverted(now), booking.ErrAlreadyCancelled)
	})

	t.Run("double convert fails", func(t *testing.T) {
		b := newBooking(t, base.Add(time.Hour), time.Hour)
		require.NoError(t, b.MarkConverted(now))
		assert.ErrorIs(t, b.MarkConverted(now), booking.ErrAlreadyConverted)
	})

	t.Run("complete requires converted", func(t *testing.T) {
		b := newBooking(t, base.Add(time.Hour), time.Hour)
		assert.ErrorIs(t, b.Complete(now), booking.ErrNotConverted)
	})
}

func TestBookingBlocks(t *testing.T) {
	b := newBooking(t, base, time.Hour)
	overlapping := slot(t, base.Add(30*time.Minute), time.Hour)

	assert.True(t, b.Blocks(overlapping))

	require.NoError(t, b.Cancel(base.Add(time.Minute)))
	assert.False(t, b.Blocks(overlapping), "cancelled booking releases its window")
}

//go:build unit

package session_test

import (
	"testing"
	"time"

	"playpoint/internal/domain/session"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPerGameSession(t *testing.T, priceCents int64, games int) *session.Session {
	t.Helper()
	s, err := session.NewSession(
		uuid.New(), uuid.New(),
		"Wanjiku", "FIFA 25",
		session.ModePerGame,
		session.Pricing{PriceCents: priceCents, Games: games},
		nil,
		time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return s
}

func newHourlySession(t *testing.T, rateCents int64, startedAt time.Time) *session.Session {
	t.Helper()
	s, err := session.NewSession(
		uuid.New(), uuid.New(),
		"Otieno", "Tekken 8",
		session.ModeHourly,
		session.Pricing{RateCents: rateCents},
		nil,
		startedAt,
	)
	require.NoError(t, err)
	return s
}

func TestNewSession(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		s := newPerGameSession(t, 20000, 1)
		assert.NotEqual(t, uuid.Nil, s.ID())
		assert.Equal(t, session.ModePerGame, s.Mode())
	})

	t.Run("validation", func(t *testing.T) {
		start := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)
		cases := []struct {
			name       string
			customerID uuid.UUID
			gameName   string
			mode       session.BillingMode
			pricing    session.Pricing
			errIs      error
		}{
			{
				name:       "missing customer",
				customerID: uuid.Nil,
				gameName:   "FIFA 25",
				mode:       session.ModePerGame,
				pricing:    session.Pricing{PriceCents: 20000},
				errIs:      session.ErrMissingCustomer,
			},
			{
				name:       "missing game name",
				customerID: uuid.New(),
				gameName:   "",
				mode:       session.ModePerGame,
				pricing:    session.Pricing{PriceCents: 20000},
				errIs:      session.ErrMissingGame,
			},
			{
				name:       "per-game without price",
				customerID: uuid.New(),
				gameName:   "FIFA 25",
				mode:       session.ModePerGame,
				pricing:    session.Pricing{},
				errIs:      session.ErrInvalidPrice,
			},
			{
				name:       "hourly without rate",
				customerID: uuid.New(),
				gameName:   "Tekken 8",
				mode:       session.ModeHourly,
				pricing:    session.Pricing{},
				errIs:      session.ErrInvalidRate,
			},
			{
				name:       "unknown billing mode",
				customerID: uuid.New(),
				gameName:   "FIFA 25",
				mode:       session.BillingMode("per_minute"),
				pricing:    session.Pricing{PriceCents: 20000},
				errIs:      session.ErrInvalidMode,
			},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				_, err := session.NewSession(uuid.New(), tc.customerID, "Wanjiku", tc.gameName, tc.mode, tc.pricing, nil, start)
				assert.ErrorIs(t, err, tc.errIs)
			})
		}
	})

	t.Run("game count defaults to one", func(t *testing.T) {
		s := newPerGameSession(t, 20000, 0)
		assert.Equal(t, int64(20000), s.Bill(s.StartedAt()))
	})
}

func TestBillPerGame(t *testing.T) {
	s := newPerGameSession(t, 20000, 1)
	now := s.StartedAt().Add(45 * time.Minute)

	assert.Equal(t, int64(20000), s.Bill(now))

	require.NoError(t, s.AddGame())
	require.NoError(t, s.AddGame())
	assert.Equal(t, int64(60000), s.Bill(now))
}

func TestBillHourly(t *testing.T) {
	start := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)

	cases := []struct {
		name      string
		rateCents int64
		elapsed   time.Duration
		want      int64
	}{
		{name: "90 minutes at 30000/h", rateCents: 30000, elapsed: 90 * time.Minute, want: 45000},
		{name: "exactly one hour", rateCents: 30000, elapsed: time.Hour, want: 30000},
		{name: "partial minute rounds up", rateCents: 30000, elapsed: 61 * time.Second, want: 1000},
		{name: "one second bills a full minute", rateCents: 30000, elapsed: time.Second, want: 500},
		{name: "zero elapsed", rateCents: 30000, elapsed: 0, want: 0},
		{name: "cent remainder rounds up", rateCents: 100, elapsed: time.Minute, want: 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newHourlySession(t, tc.rateCents, start)
			assert.Equal(t, tc.want, s.Bill(start.Add(tc.elapsed)))
		})
	}
}

func TestAddGameHourly(t *testing.T) {
	s := newHourlySession(t, 30000, time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, s.AddGame(), session.ErrNotPerGame)
}

func TestEndedSnapshot(t *testing.T) {
	start := time.Date(2026, 8, 28, 14, 0, 0, 0, time.UTC)
	s := newHourlySession(t, 30000, start)

	end := start.Add(2 * time.Hour)
	snap := s.EndedSnapshot(session.ReasonCompleted, end)

	require.NotNil(t, snap.EndedAt)
	assert.Equal(t, end, *snap.EndedAt)
	assert.Equal(t, session.ReasonCompleted, snap.EndReason)
	assert.Equal(t, 2*time.Hour, snap.Duration)
	assert.Equal(t, int64(60000), snap.CostCents)
}

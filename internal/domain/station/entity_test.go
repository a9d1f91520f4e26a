//go:build unit

package station_test

import (
	"testing"

	"playpoint/internal/domain/session"
	"playpoint/internal/domain/station"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStation(t *testing.T) {
	_, err := station.NewStation("", true, true)
	assert.ErrorIs(t, err, station.ErrMissingName)

	_, err = station.NewStation("PS5 Bay 1", false, false)
	assert.ErrorIs(t, err, station.ErrNoModes)

	st, err := station.NewStation("PS5 Bay 1", true, true)
	require.NoError(t, err)
	assert.Equal(t, station.StatusActive, st.Status())
}

func TestSnapshotSupports(t *testing.T) {
	tests := []struct {
		name    string
		perGame bool
		hourly  bool
		mode    session.BillingMode
		want    bool
	}{
		{"per-game on per-game rig", true, false, session.ModePerGame, true},
		{"hourly on per-game rig", true, false, session.ModeHourly, false},
		{"hourly on hourly rig", false, true, session.ModeHourly, true},
		{"per-game on hourly rig", false, true, session.ModePerGame, false},
		{"unknown mode never supported", true, true, session.BillingMode("per_minute"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := station.NewStation("Arcade Corner", tt.perGame, tt.hourly)
			require.NoError(t, err)
			assert.Equal(t, tt.want, st.Snapshot().Supports(tt.mode))
		})
	}
}

func TestSetStatus(t *testing.T) {
	st, err := station.NewStation("PS5 Bay 1", true, true)
	require.NoError(t, err)

	require.NoError(t, st.SetStatus(station.StatusMaintenance))
	assert.Equal(t, station.StatusMaintenance, st.Status())

	assert.ErrorIs(t, st.SetStatus(station.Status("retired")), station.ErrInvalidStatus)
}

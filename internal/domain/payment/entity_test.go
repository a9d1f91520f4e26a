//go:build unit

package payment_test

import (
	"testing"
	"time"

	"playpoint/internal/domain/payment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 8, 28, 16, 0, 0, 0, time.UTC)

func TestParseLegacyRef(t *testing.T) {
	cases := []struct {
		name   string
		ref    string
		want   payment.Method
		wantOK bool
	}{
		{name: "empty means cash", ref: "", want: payment.MethodCash, wantOK: true},
		{name: "mpesa prefix", ref: "MPESA-QA12345", want: payment.MethodMpesa, wantOK: true},
		{name: "airtel prefix", ref: "AIRTEL-77XY", want: payment.MethodAirtel, wantOK: true},
		{name: "unknown prefix rejected", ref: "TIGO-001", wantOK: false},
		{name: "lowercase prefix rejected", ref: "mpesa-QA12345", wantOK: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := payment.ParseLegacyRef(tc.ref)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestNewTransaction(t *testing.T) {
	t.Run("cash settles immediately", func(t *testing.T) {
		tx, err := payment.NewTransaction(uuid.New(), uuid.New(), 45000, payment.MethodCash, now)
		require.NoError(t, err)

		snap := tx.Snapshot()
		assert.Equal(t, payment.StatusCompleted, snap.Status)
		require.NotNil(t, snap.SettledAt)
		assert.Equal(t, now, *snap.SettledAt)
	})

	t.Run("mobile money stays pending", func(t *testing.T) {
		tx, err := payment.NewTransaction(uuid.New(), uuid.New(), 45000, payment.MethodMpesa, now)
		require.NoError(t, err)

		snap := tx.Snapshot()
		assert.Equal(t, payment.StatusPending, snap.Status)
		assert.Nil(t, snap.SettledAt)
	})

	t.Run("zero amount is allowed", func(t *testing.T) {
		_, err := payment.NewTransaction(uuid.New(), uuid.New(), 0, payment.MethodCash, now)
		assert.NoError(t, err)
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		_, err := payment.NewTransaction(uuid.New(), uuid.New(), -1, payment.MethodCash, now)
		assert.ErrorIs(t, err, payment.ErrInvalidAmount)
	})

	t.Run("invalid method rejected", func(t *testing.T) {
		_, err := payment.NewTransaction(uuid.New(), uuid.New(), 100, payment.Method("barter"), now)
		assert.ErrorIs(t, err, payment.ErrInvalidMethod)
	})
}

func TestSettle(t *testing.T) {
	t.Run("success completes", func(t *testing.T) {
		tx, err := payment.NewTransaction(uuid.New(), uuid.New(), 45000, payment.MethodMpesa, now)
		require.NoError(t, err)

		settledAt := now.Add(2 * time.Minute)
		require.NoError(t, tx.Settle(payment.OutcomeSuccess, "MPESA-QA12345", settledAt))

		snap := tx.Snapshot()
		assert.Equal(t, payment.StatusCompleted, snap.Status)
		require.NotNil(t, snap.ExternalRef)
		assert.Equal(t, "MPESA-QA12345", *snap.ExternalRef)
	})

	t.Run("failure fails", func(t *testing.T) {
		tx, err := payment.NewTransaction(uuid.New(), uuid.New(), 45000, payment.MethodAirtel, now)
		require.NoError(t, err)

		require.NoError(t, tx.Settle(payment.OutcomeFailure, "AIRTEL-77XY", now.Add(time.Minute)))
		assert.Equal(t, payment.StatusFailed, tx.Status())
	})

	t.Run("settling a terminal transaction errors", func(t *testing.T) {
		tx, err := payment.NewTransaction(uuid.New(), uuid.New(), 45000, payment.MethodMpesa, now)
		require.NoError(t, err)

		require.NoError(t, tx.Settle(payment.OutcomeSuccess, "MPESA-QA12345", now.Add(time.Minute)))
		assert.ErrorIs(t, tx.Settle(payment.OutcomeSuccess, "MPESA-QA12345", now.Add(2*time.Minute)), payment.ErrAlreadySettled)
	})
}

func TestAttachProviderRequest(t *testing.T) {
	tx, err := payment.NewTransaction(uuid.New(), uuid.New(), 45000, payment.MethodCash, now)
	require.NoError(t, err)

	// Cash is already terminal, so there is nothing to match later.
	assert.ErrorIs(t, tx.AttachProviderRequest("req-1"), payment.ErrNotPending)
}

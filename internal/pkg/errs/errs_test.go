//go:build unit

package errs_test

import (
	"errors"
	"fmt"
	"testing"

	"playpoint/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
)

func TestMark(t *testing.T) {
	cause := errs.New("station already has an active session")
	sentinel := errs.New("station is occupied")

	marked := errs.Mark(cause, sentinel)
	assert.ErrorIs(t, marked, sentinel, "sentinel must be visible to stdlib errors.Is")
	assert.ErrorIs(t, marked, cause, "original cause stays in the chain")

	t.Run("mark survives further wrapping", func(t *testing.T) {
		wrapped := errs.Wrap(errs.Mark(cause, sentinel), "while starting")
		assert.ErrorIs(t, wrapped, sentinel)
	})

	t.Run("nil err collapses to the sentinel", func(t *testing.T) {
		assert.ErrorIs(t, errs.Mark(nil, sentinel), sentinel)
	})

	t.Run("stdlib sentinels work as marks", func(t *testing.T) {
		std := errors.New("plain sentinel")
		assert.ErrorIs(t, errs.Mark(fmt.Errorf("boom"), std), std)
	})
}

func TestWrapNil(t *testing.T) {
	assert.NoError(t, errs.Wrap(nil, "ignored"))
	assert.NoError(t, errs.Wrapf(nil, "ignored %d", 1))
}

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarsai/worktime/internal/session"
)

func TestRunCheckout_Summary(t *testing.T) {
	tracker := newTestTracker(t)
	cmd, stdout := testCmd()

	require.NoError(t, runCheckin(cmd, tracker, "06:00"))
	stdout.Reset()

	err := runCheckout(cmd, tracker, "14:00")
	require.NoError(t, err)

	out := stdout.String()
	assert.Contains(t, out, "checked out at 14:00")
	assert.Contains(t, out, "08:00") // gross
	assert.Contains(t, out, "00:30") // break
	assert.Contains(t, out, "07:30") // net
}

func TestRunCheckout_NoOpenDay(t *testing.T) {
	tracker := newTestTracker(t)
	cmd, _ := testCmd()

	err := runCheckout(cmd, tracker, "")
	assert.ErrorIs(t, err, session.ErrNoOpenDay)
}

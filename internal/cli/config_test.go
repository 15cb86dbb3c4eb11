package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunConfigGetSet(t *testing.T) {
	tracker := newTestTracker(t)
	cmd, stdout := testCmd()

	require.NoError(t, runConfigGet(cmd, tracker, keyAllowFutureCheckout))
	assert.Contains(t, stdout.String(), "false")

	stdout.Reset()
	require.NoError(t, runConfigSet(cmd, tracker, keyAllowFutureCheckout, "true"))
	assert.True(t, tracker.Settings().AllowFutureCheckout)

	stdout.Reset()
	require.NoError(t, runConfigGet(cmd, tracker, ""))
	out := stdout.String()
	assert.Contains(t, out, keyAllowFutureCheckout)
	assert.Contains(t, out, "Europe/Budapest")
}

func TestRunConfig_UnknownKey(t *testing.T) {
	tracker := newTestTracker(t)
	cmd, _ := testCmd()

	assert.Error(t, runConfigGet(cmd, tracker, "nope"))
	assert.Error(t, runConfigSet(cmd, tracker, "nope", "1"))
	assert.Error(t, runConfigSet(cmd, tracker, keyAllowFutureCheckout, "maybe"))
}

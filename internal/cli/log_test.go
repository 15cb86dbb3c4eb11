package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunLog_Empty(t *testing.T) {
	tracker := newTestTracker(t)
	cmd, stdout := testCmd()

	require.NoError(t, runLog(cmd, tracker))
	assert.Contains(t, stdout.String(), "no records")
}

func TestRunLog_Table(t *testing.T) {
	tracker := newTestTracker(t)
	cmd, stdout := testCmd()

	_, err := tracker.Edit("2025-06-13", "08:00", "16:00")
	require.NoError(t, err)
	require.NoError(t, runCheckin(cmd, tracker, "09:00"))
	stdout.Reset()

	require.NoError(t, runLog(cmd, tracker))
	out := stdout.String()

	assert.Contains(t, out, "2025-06-16")
	assert.Contains(t, out, "2025-06-13")
	assert.Contains(t, out, "open")
	assert.Contains(t, out, "07:30")
	// newest first
	assert.Less(t, strings.Index(out, "2025-06-16"), strings.Index(out, "2025-06-13"))
}

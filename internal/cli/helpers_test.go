package cli

import (
	"bytes"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/mkarsai/worktime/internal/session"
	"github.com/mkarsai/worktime/internal/store"
)

// fixedNow is 14:00 Budapest time on Monday 2025-06-16.
func fixedNow() time.Time {
	return time.Date(2025, 6, 16, 12, 0, 0, 0, time.UTC)
}

func newTestTracker(t *testing.T) *session.Tracker {
	t.Helper()
	return newTestTrackerAt(t, fixedNow)
}

func newTestTrackerAt(t *testing.T, nowFn func() time.Time) *session.Tracker {
	t.Helper()
	tracker, err := session.NewTracker(store.NewMemory(), nowFn, zerolog.Nop())
	require.NoError(t, err)
	return tracker
}

func testCmd() (*cobra.Command, *bytes.Buffer) {
	stdout := new(bytes.Buffer)
	cmd := &cobra.Command{}
	cmd.SetOut(stdout)
	return cmd, stdout
}

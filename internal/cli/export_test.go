package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunExportCSV_Stdout(t *testing.T) {
	tracker := newTestTracker(t)
	cmd, stdout := testCmd()

	_, err := tracker.Edit("2025-06-13", "08:00", "16:00")
	require.NoError(t, err)

	require.NoError(t, runExportCSV(cmd, tracker, "", ""))
	out := stdout.String()
	assert.Contains(t, out, "date,checkIn,checkOut,grossMinutes,deductionMinutes,netMinutes")
	assert.Contains(t, out, "2025-06-13,08:00,16:00,480,30,450")
}

func TestRunExportCSV_MonthFilterToFile(t *testing.T) {
	tracker := newTestTracker(t)
	cmd, stdout := testCmd()

	_, err := tracker.Edit("2025-05-30", "08:00", "12:00")
	require.NoError(t, err)
	_, err = tracker.Edit("2025-06-13", "08:00", "16:00")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "june.csv")
	require.NoError(t, runExportCSV(cmd, tracker, path, "2025-06"))
	assert.Contains(t, stdout.String(), "wrote")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2025-06-13")
	assert.NotContains(t, string(data), "2025-05-30")
}

func TestRunExportJSON_Shape(t *testing.T) {
	tracker := newTestTracker(t)
	cmd, stdout := testCmd()

	require.NoError(t, runCheckin(cmd, tracker, "08:00"))
	stdout.Reset()

	require.NoError(t, runExportJSON(cmd, tracker, ""))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Contains(t, doc, "records")
	assert.Contains(t, doc, "settings")
	assert.Contains(t, doc, "schemaVersion")
}

func TestRunImport_RoundTrip(t *testing.T) {
	source := newTestTracker(t)
	cmd, stdout := testCmd()

	_, err := source.Edit("2025-06-13", "08:00", "16:00")
	require.NoError(t, err)
	require.NoError(t, runCheckin(cmd, source, "09:00"))

	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, runExportJSON(cmd, source, path))

	dest := newTestTracker(t)
	stdout.Reset()
	require.NoError(t, runImport(cmd, dest.Store(), path, AlwaysYes(), fixedNow))

	out := stdout.String()
	assert.Contains(t, out, "imported 2 records")
	assert.Contains(t, out, "open day: 2025-06-16")

	records, err := dest.Store().ListRecords()
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestRunImport_Declined(t *testing.T) {
	tracker := newTestTracker(t)
	cmd, stdout := testCmd()

	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"records":[],"settings":{}}`), 0o644))

	decline := func(string) (bool, error) { return false, nil }
	require.NoError(t, runImport(cmd, tracker.Store(), path, decline, fixedNow))
	assert.Contains(t, stdout.String(), "cancelled")
}

func TestRunImport_InvalidPayload(t *testing.T) {
	tracker := newTestTracker(t)
	cmd, _ := testCmd()

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))

	err := runImport(cmd, tracker.Store(), path, AlwaysYes(), fixedNow)
	assert.Error(t, err)
}

package eeg

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeReport(t *testing.T, participantDir, category string, relPath, content string) {
	t.Helper()
	path := filepath.Join(participantDir, eegFolder, category, relPath)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoadNightsMissingFolder(t *testing.T) {
	records, err := LoadNights(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadNightsParsesReport(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, nightFolder, filepath.Join("night_1", "dreem_sleep_report.csv"),
		"record_start_iso,2024-10-01T23:10:00Z\nrecord_stop_iso,2024-10-02T06:40:00Z\nsleep_efficiency,0.91\n")

	records, err := LoadNights(dir)
	require.NoError(t, err)
	require.Len(t, records, 1)

	rec := records[0]
	assert.Equal(t, time.Date(2024, 10, 1, 23, 10, 0, 0, time.UTC), rec.Start)
	assert.Equal(t, time.Date(2024, 10, 2, 6, 40, 0, 0, time.UTC), rec.Stop)
	assert.Equal(t, "night_1", rec.Label)
	assert.Equal(t, "dreem_sleep_report.csv", rec.SourceFile)
}

func TestLoadHandlesAlternateSeparators(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, meditationFolder, filepath.Join("session_a", "dreem_report.csv"),
		"record_start_iso;2024-10-03T07:00:00Z\nrecord_stop_iso;2024-10-03T07:30:00Z\n")
	writeReport(t, dir, meditationFolder, filepath.Join("session_b", "dreem_report.csv"),
		"record_start_iso\t2024-10-04T07:00:00Z\nrecord_stop_iso\t2024-10-04T07:25:00Z\n")

	records, err := LoadMeditations(dir)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "session_a", records[0].Label)
	assert.Equal(t, "session_b", records[1].Label)
}

func TestLoadRequiresBothNameHints(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, nightFolder, filepath.Join("night_1", "dreem_hypnogram.csv"),
		"record_start_iso,2024-10-01T23:00:00Z\nrecord_stop_iso,2024-10-02T06:00:00Z\n")
	writeReport(t, dir, nightFolder, filepath.Join("night_1", "summary_report.csv"),
		"record_start_iso,2024-10-01T23:00:00Z\nrecord_stop_iso,2024-10-02T06:00:00Z\n")

	records, err := LoadNights(dir)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadSkipsReportsWithoutTimestamps(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, nightFolder, filepath.Join("night_1", "dreem_report.csv"),
		"sleep_efficiency,0.91\n")
	writeReport(t, dir, nightFolder, filepath.Join("night_2", "dreem_report.csv"),
		"record_start_iso,2024-10-02T23:00:00Z\nrecord_stop_iso,2024-10-03T06:00:00Z\n")

	records, err := LoadNights(dir)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "night_2", records[0].Label)
}

func TestLoadTopLevelReportLabeledByFileName(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, nightFolder, "dreem_night_report.csv",
		"record_start_iso,2024-10-01T23:00:00Z\nrecord_stop_iso,2024-10-02T06:00:00Z\n")

	records, err := LoadNights(dir)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "dreem_night_report", records[0].Label)
}

func TestLoadSortsByStart(t *testing.T) {
	dir := t.TempDir()
	writeReport(t, dir, nightFolder, filepath.Join("night_2", "dreem_report.csv"),
		"record_start_iso,2024-10-02T23:00:00Z\nrecord_stop_iso,2024-10-03T06:00:00Z\n")
	writeReport(t, dir, nightFolder, filepath.Join("night_1", "dreem_report.csv"),
		"record_start_iso,2024-10-01T23:00:00Z\nrecord_stop_iso,2024-10-02T06:00:00Z\n")

	records, err := LoadNights(dir)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, records[0].Start.Before(records[1].Start))
}

package wristband

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeWearingCSV(t *testing.T, participantDir, day, device, name, content string) {
	t.Helper()
	dir := filepath.Join(participantDir, deviceFolder, day, device, biomarkerFolder, perMinuteFolder)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadMissingDeviceFolder(t *testing.T) {
	samples, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestLoadParsesMillisecondEpochs(t *testing.T) {
	dir := t.TempDir()
	writeWearingCSV(t, dir, "2024-10-01", "AB123", "1-1-AB123_wearing-detection.csv",
		"timestamp_unix,timestamp_iso,wearing_detection_percentage\n"+
			"1727776800000,2024-10-01T10:00:00Z,100\n"+
			"1727776860000,2024-10-01T10:01:00Z,75\n")

	samples, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, samples, 2)

	assert.Equal(t, time.Unix(1727776800, 0).UTC(), samples[0].Time)
	assert.Equal(t, 100.0, samples[0].WearingPct)
	assert.Equal(t, "2024-10-01", samples[0].Day)
}

func TestLoadParsesSecondEpochs(t *testing.T) {
	dir := t.TempDir()
	writeWearingCSV(t, dir, "2024-10-01", "AB123", "wearing-detection.csv",
		"timestamp_unix,wearing_detection_percentage\n1727776800,42.5\n")

	samples, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, time.Unix(1727776800, 0).UTC(), samples[0].Time)
	assert.Equal(t, 42.5, samples[0].WearingPct)
}

func TestLoadFallsBackToISOTimestamps(t *testing.T) {
	dir := t.TempDir()
	writeWearingCSV(t, dir, "2024-10-02", "AB123", "wearing-detection.csv",
		"timestamp_iso,wearing_detection_percentage\n2024-10-02 08:30:00,60\n")

	samples, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, time.Date(2024, 10, 2, 8, 30, 0, 0, time.UTC), samples[0].Time)
}

func TestLoadIgnoresUnrelatedCSVs(t *testing.T) {
	dir := t.TempDir()
	writeWearingCSV(t, dir, "2024-10-01", "AB123", "pulse-rate.csv",
		"timestamp_unix,pulse_rate\n1727776800,60\n")
	writeWearingCSV(t, dir, "2024-10-01", "AB123", "wearing-detection.csv",
		"timestamp_unix,wearing_detection_percentage\n1727776800,90\n")

	samples, err := Load(dir)
	require.NoError(t, err)
	assert.Len(t, samples, 1)
}

func TestLoadSkipsMalformedRows(t *testing.T) {
	dir := t.TempDir()
	writeWearingCSV(t, dir, "2024-10-01", "AB123", "wearing-detection.csv",
		"timestamp_unix,wearing_detection_percentage\n"+
			"not-a-number,90\n"+
			"1727776800,not-a-pct\n"+
			"1727776860,80\n")

	samples, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, 80.0, samples[0].WearingPct)
}

func TestLoadSortsAcrossDays(t *testing.T) {
	dir := t.TempDir()
	writeWearingCSV(t, dir, "2024-10-02", "AB123", "wearing-detection.csv",
		"timestamp_unix,wearing_detection_percentage\n1727863200,50\n")
	writeWearingCSV(t, dir, "2024-10-01", "AB123", "wearing-detection.csv",
		"timestamp_unix,wearing_detection_percentage\n1727776800,100\n")

	samples, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, samples, 2)
	assert.True(t, samples[0].Time.Before(samples[1].Time))
	assert.Equal(t, "2024-10-01", samples[0].Day)
}

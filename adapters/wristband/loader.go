// Package wristband loads per-minute wearing-detection CSVs exported by the
// EmbracePlus pipeline.
package wristband

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"streamdash/domain/modality"
	"streamdash/internal"
)

const (
	deviceFolder    = "EmbracePlus"
	biomarkerFolder = "digital_biomarkers"
	perMinuteFolder = "aggregated_per_minute"
	fileNameHint    = "wearing-detection"

	wearingColumnHint = "wearing_detection_percentage"
	unixColumn        = "timestamp_unix"
	isoColumn         = "timestamp_iso"
)

// millisecond epochs are larger than any plausible second epoch
const msEpochThreshold = 1e12

// Load walks the participant's EmbracePlus tree and returns every wearing
// sample found, sorted by time. Missing device folders yield an empty slice,
// not an error.
func Load(participantDir string) ([]modality.WristbandSample, error) {
	deviceDir := filepath.Join(participantDir, deviceFolder)
	dayEntries, err := os.ReadDir(deviceDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", deviceDir, err)
	}

	var samples []modality.WristbandSample
	for _, day := range dayEntries {
		if !day.IsDir() {
			continue
		}
		daySamples, err := loadDay(filepath.Join(deviceDir, day.Name()), day.Name())
		if err != nil {
			return nil, err
		}
		samples = append(samples, daySamples...)
	}

	sort.Slice(samples, func(i, j int) bool { return samples[i].Time.Before(samples[j].Time) })
	return samples, nil
}

func loadDay(dayDir, dayLabel string) ([]modality.WristbandSample, error) {
	subEntries, err := os.ReadDir(dayDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dayDir, err)
	}

	var samples []modality.WristbandSample
	for _, sub := range subEntries {
		if !sub.IsDir() {
			continue
		}
		csvDir := filepath.Join(dayDir, sub.Name(), biomarkerFolder, perMinuteFolder)
		matches, err := filepath.Glob(filepath.Join(csvDir, "*.csv"))
		if err != nil {
			return nil, err
		}
		for _, path := range matches {
			if !strings.Contains(strings.ToLower(filepath.Base(path)), fileNameHint) {
				continue
			}
			fileSamples, err := parseFile(path, dayLabel)
			if err != nil {
				internal.DefaultLogger.Warn("skipping wearing CSV %s: %v", path, err)
				continue
			}
			samples = append(samples, fileSamples...)
		}
	}
	return samples, nil
}

func parseFile(path, dayLabel string) ([]modality.WristbandSample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("missing header: %w", err)
	}

	unixIdx, isoIdx, wearingIdx := -1, -1, -1
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		switch {
		case name == unixColumn:
			unixIdx = i
		case name == isoColumn:
			isoIdx = i
		case strings.Contains(name, wearingColumnHint):
			wearingIdx = i
		}
	}
	if wearingIdx < 0 {
		return nil, fmt.Errorf("no wearing percentage column in %s", filepath.Base(path))
	}
	if unixIdx < 0 && isoIdx < 0 {
		return nil, fmt.Errorf("no timestamp column in %s", filepath.Base(path))
	}

	var samples []modality.WristbandSample
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		ts, ok := parseTimestamp(row, unixIdx, isoIdx)
		if !ok {
			continue
		}
		pct, err := strconv.ParseFloat(strings.TrimSpace(field(row, wearingIdx)), 64)
		if err != nil {
			continue
		}
		samples = append(samples, modality.WristbandSample{
			Time:       ts,
			WearingPct: pct,
			Day:        dayLabel,
		})
	}
	return samples, nil
}

func parseTimestamp(row []string, unixIdx, isoIdx int) (time.Time, bool) {
	if unixIdx >= 0 {
		raw := strings.TrimSpace(field(row, unixIdx))
		if epoch, err := strconv.ParseFloat(raw, 64); err == nil {
			if epoch > msEpochThreshold {
				epoch /= 1000
			}
			sec := int64(epoch)
			nsec := int64((epoch - float64(sec)) * float64(time.Second))
			return time.Unix(sec, nsec).UTC(), true
		}
	}
	if isoIdx >= 0 {
		raw := strings.TrimSpace(field(row, isoIdx))
		for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05"} {
			if ts, err := time.Parse(layout, raw); err == nil {
				return ts.UTC(), true
			}
		}
	}
	return time.Time{}, false
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

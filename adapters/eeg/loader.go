// Package eeg loads Dreem headband report CSVs describing sleep nights and
// meditation sessions.
package eeg

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"streamdash/domain/modality"
	"streamdash/internal"
)

const (
	eegFolder        = "EEG"
	nightFolder      = "Night"
	meditationFolder = "Meditation"

	startKey = "record_start_iso"
	stopKey  = "record_stop_iso"
)

// report files carry both hints in their name, in either order
var fileNameHints = []string{"report", "dreem"}

// LoadNights returns sleep intervals discovered under EEG/Night.
func LoadNights(participantDir string) ([]modality.IntervalRecord, error) {
	return loadCategory(filepath.Join(participantDir, eegFolder, nightFolder))
}

// LoadMeditations returns meditation intervals discovered under EEG/Meditation.
func LoadMeditations(participantDir string) ([]modality.IntervalRecord, error) {
	return loadCategory(filepath.Join(participantDir, eegFolder, meditationFolder))
}

func loadCategory(categoryDir string) ([]modality.IntervalRecord, error) {
	if _, err := os.Stat(categoryDir); os.IsNotExist(err) {
		return nil, nil
	}

	var records []modality.IntervalRecord
	err := filepath.WalkDir(categoryDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isReportFile(d.Name()) {
			return nil
		}
		rec, err := parseReport(path, categoryDir)
		if err != nil {
			internal.DefaultLogger.Warn("skipping EEG report %s: %v", path, err)
			return nil
		}
		records = append(records, rec)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", categoryDir, err)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Start.Before(records[j].Start) })
	return records, nil
}

func isReportFile(name string) bool {
	lower := strings.ToLower(name)
	if !strings.HasSuffix(lower, ".csv") {
		return false
	}
	for _, hint := range fileNameHints {
		if !strings.Contains(lower, hint) {
			return false
		}
	}
	return true
}

// parseReport reads a Dreem key/value report. Separators vary across export
// versions, so each line is split on the first comma, semicolon or tab found.
func parseReport(path, categoryDir string) (modality.IntervalRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return modality.IntervalRecord{}, err
	}
	defer f.Close()

	values := map[string]string{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := splitReportLine(scanner.Text())
		if !ok {
			continue
		}
		values[strings.ToLower(key)] = value
	}
	if err := scanner.Err(); err != nil {
		return modality.IntervalRecord{}, err
	}

	start, err := parseReportTime(values[startKey])
	if err != nil {
		return modality.IntervalRecord{}, fmt.Errorf("bad %s: %w", startKey, err)
	}
	stop, err := parseReportTime(values[stopKey])
	if err != nil {
		return modality.IntervalRecord{}, fmt.Errorf("bad %s: %w", stopKey, err)
	}

	return modality.IntervalRecord{
		Start:      start,
		Stop:       stop,
		Label:      recordLabel(path, categoryDir),
		SourceFile: filepath.Base(path),
	}, nil
}

func splitReportLine(line string) (key, value string, ok bool) {
	idx := strings.IndexAny(line, ",;\t")
	if idx < 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])
	return key, value, key != ""
}

func parseReportTime(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("missing value")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}

// recordLabel names the record after the first directory below the category
// folder, falling back to the file name for reports stored at the top level.
func recordLabel(path, categoryDir string) string {
	rel, err := filepath.Rel(categoryDir, path)
	if err != nil {
		rel = filepath.Base(path)
	}
	parts := strings.Split(filepath.ToSlash(rel), "/")
	if len(parts) > 1 {
		return parts[0]
	}
	return strings.TrimSuffix(parts[0], filepath.Ext(parts[0]))
}

// Package subjective loads diary workbooks exported from the study's mobile
// app. Each workbook carries one sheet per diary section.
package subjective

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"streamdash/domain/modality"
	"streamdash/internal"
)

const appFolder = "App"

// timestampPattern matches the recording timestamps the app writes into the
// final diary row, tolerating both date separators and fractional seconds.
var timestampPattern = regexp.MustCompile(`\d{4}[-/]\d{2}[-/]\d{2}[ T]\d{2}:\d{2}:\d{2}(?:[.,]\d+)?`)

// Load reads every diary workbook under the participant's App folder and
// returns one entry per workbook sheet, sorted by recording time.
func Load(participantDir, participantID string) ([]modality.SubjectiveEntry, error) {
	pattern := filepath.Join(participantDir, appFolder, "*.xls*")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return nil, err
	}

	var entries []modality.SubjectiveEntry
	for _, path := range matches {
		// Excel drops ~$ lock files next to open workbooks
		if strings.HasPrefix(filepath.Base(path), "~$") {
			continue
		}
		fileEntries, err := loadWorkbook(path, participantID)
		if err != nil {
			internal.DefaultLogger.Warn("skipping diary workbook %s: %v", path, err)
			continue
		}
		entries = append(entries, fileEntries...)
	}

	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].RecordedAt.Equal(entries[j].RecordedAt) {
			return entries[i].RecordedAt.Before(entries[j].RecordedAt)
		}
		return entries[i].Section < entries[j].Section
	})
	return entries, nil
}

// loadWorkbook maps workbook sheets to diary sections by position. Workbooks
// with fewer sheets than sections simply yield fewer entries.
func loadWorkbook(path, participantID string) ([]modality.SubjectiveEntry, error) {
	wb, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	sections := modality.Sections()

	var entries []modality.SubjectiveEntry
	for i, section := range sections {
		if i >= len(sheets) {
			break
		}
		rows, err := wb.GetRows(sheets[i])
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[i], err)
		}
		recordedAt, hasData := sheetRecording(rows)
		entries = append(entries, modality.SubjectiveEntry{
			RecordedAt:  recordedAt,
			Section:     section,
			Participant: participantID,
			File:        filepath.Base(path),
			HasData:     hasData,
		})
	}
	return entries, nil
}

// sheetRecording finds the recording timestamp in the first non-empty cell of
// the last non-empty row. The header row alone does not count as data.
func sheetRecording(rows [][]string) (time.Time, bool) {
	for i := len(rows) - 1; i >= 1; i-- {
		cell, ok := firstNonEmptyCell(rows[i])
		if !ok {
			continue
		}
		return parseRecordingTime(cell), true
	}
	return time.Time{}, false
}

func firstNonEmptyCell(row []string) (string, bool) {
	for _, cell := range row {
		if trimmed := strings.TrimSpace(cell); trimmed != "" {
			return trimmed, true
		}
	}
	return "", false
}

func parseRecordingTime(cell string) time.Time {
	match := timestampPattern.FindString(cell)
	if match == "" {
		return time.Time{}
	}
	normalized := strings.NewReplacer("/", "-", "T", " ", ",", ".").Replace(match)
	for _, layout := range []string{"2006-01-02 15:04:05.999999999", "2006-01-02 15:04:05"} {
		if ts, err := time.Parse(layout, normalized); err == nil {
			return ts.UTC()
		}
	}
	return time.Time{}
}

// Package participants resolves participant folders under the study's base
// data path.
package participants

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// notesCandidates are the files probed for participant notes, in order.
var notesCandidates = []string{"notes.md", "NOTES.md", "README.md"}

// List returns sorted participant folder names from the base path.
func List(dataBasePath string) ([]string, error) {
	entries, err := os.ReadDir(dataBasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read base path %s: %w", dataBasePath, err)
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Dir builds the participant folder path from the base path and identifier.
func Dir(dataBasePath, participantID string) string {
	return filepath.Join(dataBasePath, participantID)
}

// Exists reports whether the participant folder is present.
func Exists(dataBasePath, participantID string) bool {
	info, err := os.Stat(Dir(dataBasePath, participantID))
	return err == nil && info.IsDir()
}

// Notes returns the raw markdown of the participant's notes file, if any.
func Notes(participantDir string) (string, bool) {
	for _, name := range notesCandidates {
		data, err := os.ReadFile(filepath.Join(participantDir, name))
		if err == nil {
			return string(data), true
		}
	}
	return "", false
}

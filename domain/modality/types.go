// Package modality defines the entity types shared by every data source in
// the study: wristband wearing-detection samples, EEG recording intervals
// (sleep nights and meditation sessions) and subjective diary entries.
package modality

import "time"

// Modality identifies one category of recorded data.
type Modality int

const (
	Subjective Modality = iota
	Meditation
	Sleep
	Wristband
)

func (m Modality) String() string {
	switch m {
	case Subjective:
		return "subjective"
	case Meditation:
		return "meditation"
	case Sleep:
		return "sleep"
	case Wristband:
		return "wristband"
	}
	return "unknown"
}

// MarshalText keeps map keys readable when diagnostics are serialized.
func (m Modality) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Label returns the display name used in chart legends.
func (m Modality) Label() string {
	switch m {
	case Subjective:
		return "Subjective"
	case Meditation:
		return "Meditation"
	case Sleep:
		return "Sleep"
	case Wristband:
		return "Wristband"
	}
	return "Unknown"
}

// Order is the fixed top-to-bottom display order of timeline rows.
func Order() []Modality {
	return []Modality{Subjective, Meditation, Sleep, Wristband}
}

// WristbandSample is one per-minute wearing-detection reading.
type WristbandSample struct {
	Time       time.Time
	WearingPct float64
	Day        string
}

// IntervalRecord is one EEG recording session with explicit start/stop times.
// A Stop earlier than Start is treated as a zero-duration recording.
type IntervalRecord struct {
	Start      time.Time
	Stop       time.Time
	Label      string
	SourceFile string
}

// Duration returns the recording length, clamped to zero when Stop < Start.
func (r IntervalRecord) Duration() time.Duration {
	if r.Stop.Before(r.Start) {
		return 0
	}
	return r.Stop.Sub(r.Start)
}

// Midpoint returns the time halfway through the interval. Used to position
// hover markers on timeline rows.
func (r IntervalRecord) Midpoint() time.Time {
	return r.Start.Add(r.Duration() / 2)
}

// Valid reports whether the record carries usable timestamps.
func (r IntervalRecord) Valid() bool {
	return !r.Start.IsZero() && !r.Stop.IsZero()
}

// Section is a subjective diary category. The app workbooks carry one sheet
// per section, always in the same order.
type Section string

const (
	SectionSleepDiary    Section = "sleep_diary"
	SectionTETDiary      Section = "tet_diary"
	SectionActivityDiary Section = "activity_diary"
	SectionTETMeditation Section = "tet_meditation"
)

// Sections returns the expected workbook sheet order.
func Sections() []Section {
	return []Section{SectionSleepDiary, SectionActivityDiary, SectionTETDiary, SectionTETMeditation}
}

// sectionColors follows the diary palette: browns for sleep/activity diaries,
// oranges for the TET entries.
var sectionColors = map[Section]string{
	SectionSleepDiary:    "#854515",
	SectionActivityDiary: "#A3651F",
	SectionTETDiary:      "#DF6304",
	SectionTETMeditation: "#FF8827",
}

// NeutralColor is used for sections without a mapped color.
const NeutralColor = "grey"

// Color returns the plot color for the section, or NeutralColor for unmapped
// categories.
func (s Section) Color() string {
	if c, ok := sectionColors[s]; ok {
		return c
	}
	return NeutralColor
}

// SubjectiveEntry is one diary sheet observation from an app export workbook.
type SubjectiveEntry struct {
	RecordedAt  time.Time
	Section     Section
	Participant string
	File        string
	HasData     bool
}

// Valid reports whether the entry carries a usable recording timestamp.
func (e SubjectiveEntry) Valid() bool {
	return !e.RecordedAt.IsZero()
}

// Package plots builds the single-modality figures shown on each tab.
package plots

import (
	"fmt"
	"sort"

	"streamdash/domain/chart"
	"streamdash/domain/modality"
)

// dayPalette cycles through per-day categorical colors on the wearing events
// scatter.
var dayPalette = []string{
	"#636efa", "#ef553b", "#00cc96", "#ab63fa", "#ffa15a",
	"#19d3f3", "#ff6692", "#b6e880", "#ff97ff", "#fecb52",
}

// StackedWearingHours renders hours of wearing detection per day as stacked
// bars, one bar segment per percentage bin. Bins stack best-first so the
// green 100% segment sits at the bottom.
func StackedWearingHours(table []modality.DayBinHours) *chart.Figure {
	if len(table) == 0 {
		return nil
	}
	days := make([]any, len(table))
	for i, row := range table {
		days[i] = row.Day
	}

	fig := &chart.Figure{
		Layout: chart.Layout{
			Title:   "Stacked Hours of Wearing Detection per Day",
			BarMode: "stack",
			Height:  420,
			XAxis:   &chart.Axis{Title: "Day"},
			YAxis:   &chart.Axis{Title: "Hours", Range: []any{0.0, 24.0}},
		},
	}
	for i := len(modality.WearingLabels) - 1; i >= 0; i-- {
		label := modality.WearingLabels[i]
		hours := make([]any, len(table))
		for j, row := range table {
			hours[j] = row.Hours[i]
		}
		fig.Data = append(fig.Data, chart.Trace{
			Type:   "bar",
			Name:   label,
			X:      days,
			Y:      hours,
			Marker: &chart.Marker{Color: modality.WearingColorMap[label]},
		})
	}
	return fig
}

// WearingEvents renders every per-minute reading as a scatter point, colored
// by day folder.
func WearingEvents(samples []modality.WristbandSample) *chart.Figure {
	byDay := map[string][]modality.WristbandSample{}
	for _, s := range samples {
		if s.Time.IsZero() {
			continue
		}
		byDay[s.Day] = append(byDay[s.Day], s)
	}
	if len(byDay) == 0 {
		return nil
	}
	days := make([]string, 0, len(byDay))
	for day := range byDay {
		days = append(days, day)
	}
	sort.Strings(days)

	fig := &chart.Figure{
		Layout: chart.Layout{
			Title:  "Wearing Detection Events (All Days)",
			Height: 420,
			XAxis:  &chart.Axis{Title: "Date/Time", Type: "date"},
			YAxis:  &chart.Axis{Title: "Wearing %"},
		},
	}
	for i, day := range days {
		group := byDay[day]
		x := make([]any, len(group))
		y := make([]any, len(group))
		for j, s := range group {
			x[j] = chart.Time(s.Time)
			y[j] = s.WearingPct
		}
		fig.Data = append(fig.Data, chart.Trace{
			Type:   "scatter",
			Name:   day,
			Mode:   "markers",
			X:      x,
			Y:      y,
			Marker: &chart.Marker{Color: dayPalette[i%len(dayPalette)], Size: 6},
		})
	}
	return fig
}

// DurationBarsConfig parameterizes the per-recording duration chart so sleep
// and meditation share one implementation.
type DurationBarsConfig struct {
	Title     string
	LabelName string
	Color     string
}

// SleepDurationBars is the sleep-tab preset.
func SleepDurationBars() DurationBarsConfig {
	return DurationBarsConfig{Title: "Sleep Duration per Night", LabelName: "Night", Color: "#1f77b4"}
}

// MeditationDurationBars is the meditation-tab preset.
func MeditationDurationBars() DurationBarsConfig {
	return DurationBarsConfig{Title: "Meditation Duration per Session", LabelName: "Session", Color: "#6cb5e9"}
}

// DurationBars renders one horizontal bar per recording, most recent at the
// top, with start/stop hover detail. Records without usable timestamps are
// excluded; negative durations render as zero-length bars.
func DurationBars(records []modality.IntervalRecord, cfg DurationBarsConfig) *chart.Figure {
	valid := make([]modality.IntervalRecord, 0, len(records))
	for _, r := range records {
		if r.Valid() {
			valid = append(valid, r)
		}
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i].Start.Before(valid[j].Start) })
	if len(valid) == 0 {
		return nil
	}

	x := make([]any, len(valid))
	y := make([]any, len(valid))
	custom := make([][]string, len(valid))
	for i, r := range valid {
		x[i] = r.Duration().Hours()
		y[i] = r.Label
		custom[i] = []string{
			r.Start.Format("2006-01-02 15:04"),
			r.Stop.Format("2006-01-02 15:04"),
		}
	}

	height := 40*len(valid) + 120
	if height > 600 {
		height = 600
	}
	return &chart.Figure{
		Data: []chart.Trace{{
			Type:        "bar",
			Orientation: "h",
			X:           x,
			Y:           y,
			Marker:      &chart.Marker{Color: cfg.Color},
			HoverTemplate: "%{y}<br>Duration: %{x:.2f} h<br>" +
				"Start: %{customdata[0]}<br>Stop: %{customdata[1]}<extra></extra>",
			CustomData: custom,
			ShowLegend: chart.Bool(false),
		}},
		Layout: chart.Layout{
			Title:  cfg.Title,
			Height: height,
			Margin: &chart.Margin{L: 160, R: 40, T: 60, B: 60},
			XAxis:  &chart.Axis{Title: "Duration (hours)"},
			YAxis:  &chart.Axis{AutoRange: "reversed"},
		},
	}
}

// SubjectiveTimeline renders diary entries as markers per section over time.
func SubjectiveTimeline(entries []modality.SubjectiveEntry) *chart.Figure {
	valid := make([]modality.SubjectiveEntry, 0, len(entries))
	for _, e := range entries {
		if e.Valid() {
			valid = append(valid, e)
		}
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i].RecordedAt.Before(valid[j].RecordedAt) })
	if len(valid) == 0 {
		return nil
	}

	x := make([]any, len(valid))
	y := make([]any, len(valid))
	colors := make([]string, len(valid))
	for i, e := range valid {
		x[i] = chart.Time(e.RecordedAt)
		y[i] = string(e.Section)
		colors[i] = e.Section.Color()
	}

	height := 40*len(valid) + 120
	if height > 600 {
		height = 600
	}
	colorsAny := make([]any, len(colors))
	for i, c := range colors {
		colorsAny[i] = c
	}
	return &chart.Figure{
		Data: []chart.Trace{{
			Type:          "scatter",
			Mode:          "markers",
			X:             x,
			Y:             y,
			Marker:        &chart.Marker{Color: colorsAny, Size: 10},
			HoverTemplate: "%{y}<br>Recording Date: %{x|%Y-%m-%d %H:%M}<extra></extra>",
			ShowLegend:    chart.Bool(false),
		}},
		Layout: chart.Layout{
			Title:  "Subjective Recordings Timeline",
			Height: height,
			Margin: &chart.Margin{L: 40, R: 40, T: 80, B: 40},
			XAxis:  &chart.Axis{Title: "Recording Date", Type: "date"},
		},
	}
}

// FormatHours renders a duration-in-hours value for tables.
func FormatHours(h float64) string {
	return fmt.Sprintf("%.2f h", h)
}

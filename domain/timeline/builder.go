// Package timeline builds the combined availability figure: one row per
// modality with data, stacked on a shared time axis.
package timeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"streamdash/domain/chart"
	"streamdash/domain/modality"
)

const (
	sleepColor      = "#1f77b4"
	meditationColor = "#6cb5e9"
	dayShadeColor   = "rgba(128,128,128,0.06)"
	rowHeightPx     = 180
)

// Input carries the four modality tables. Any of them may be empty.
type Input struct {
	Wristband  []modality.WristbandSample
	Sleep      []modality.IntervalRecord
	Meditation []modality.IntervalRecord
	Subjective []modality.SubjectiveEntry
}

// Diagnostics counts records excluded from the plot, per modality. Records
// are dropped when their timestamps are missing or failed to parse upstream.
type Diagnostics struct {
	Skipped map[modality.Modality]int
}

// Total returns the number of excluded records across all modalities.
func (d Diagnostics) Total() int {
	n := 0
	for _, c := range d.Skipped {
		n += c
	}
	return n
}

// Result is the built figure plus enough metadata for callers to report on
// it. Figure is nil when no modality had a single plottable record.
type Result struct {
	Figure  *chart.Figure
	Present []modality.Modality
	Start   time.Time
	End     time.Time
	Diag    Diagnostics
}

// Empty reports whether there was nothing to plot.
func (r Result) Empty() bool { return r.Figure == nil }

// rowBand is the vertical slot one modality occupies, in y-axis [0,1] coords.
type rowBand struct {
	y0, y1 float64
}

func (b rowBand) center() float64 { return (b.y0 + b.y1) / 2 }
func (b rowBand) height() float64 { return b.y1 - b.y0 }

// Build assembles the combined timeline. The row set adapts to whichever
// modalities have at least one valid record, in fixed display order.
func Build(in Input) Result {
	diag := Diagnostics{Skipped: map[modality.Modality]int{}}

	var wrist []modality.WristbandSample
	for _, s := range in.Wristband {
		if s.Time.IsZero() {
			diag.Skipped[modality.Wristband]++
			continue
		}
		wrist = append(wrist, s)
	}
	sleep := filterIntervals(in.Sleep, modality.Sleep, &diag)
	meditation := filterIntervals(in.Meditation, modality.Meditation, &diag)

	var subjective []modality.SubjectiveEntry
	for _, e := range in.Subjective {
		if !e.Valid() {
			diag.Skipped[modality.Subjective]++
			continue
		}
		subjective = append(subjective, e)
	}

	var present []modality.Modality
	for _, m := range modality.Order() {
		switch m {
		case modality.Subjective:
			if len(subjective) > 0 {
				present = append(present, m)
			}
		case modality.Meditation:
			if len(meditation) > 0 {
				present = append(present, m)
			}
		case modality.Sleep:
			if len(sleep) > 0 {
				present = append(present, m)
			}
		case modality.Wristband:
			if len(wrist) > 0 {
				present = append(present, m)
			}
		}
	}
	if len(present) == 0 {
		return Result{Diag: diag}
	}

	start, end := extent(wrist, sleep, meditation, subjective)

	fig := &chart.Figure{
		Layout: chart.Layout{
			Height:        rowHeightPx * len(present),
			HoverMode:     "closest",
			HoverDistance: 8,
			ShowLegend:    chart.Bool(false),
			Margin:        &chart.Margin{L: 60, R: 110, T: 30, B: 40},
			PlotBG:        "#ffffff",
			PaperBG:       "#ffffff",
			XAxis: &chart.Axis{
				Title:    "Time",
				Type:     "date",
				Range:    []any{chart.Time(start), chart.Time(end)},
				ShowGrid: chart.Bool(true),
			},
			YAxis: &chart.Axis{
				Range:   []any{0.0, 1.0},
				Visible: chart.Bool(false),
			},
		},
	}

	shadeDays(fig, start, end)
	tickPerDay(fig, start, end)

	n := len(present)
	for i, m := range present {
		band := rowBand{y0: 1 - float64(i+1)/float64(n), y1: 1 - float64(i)/float64(n)}
		switch m {
		case modality.Subjective:
			addSubjectiveRow(fig, subjective, band)
		case modality.Meditation:
			addIntervalRow(fig, meditation, band, meditationColor, "Session")
			addRowLegend(fig, band, meditationColor, legendLabel("Meditation", meditation))
		case modality.Sleep:
			addIntervalRow(fig, sleep, band, sleepColor, "Night")
			addRowLegend(fig, band, sleepColor, legendLabel("Sleep", sleep))
		case modality.Wristband:
			addWristbandRow(fig, wrist, band)
		}
	}

	return Result{Figure: fig, Present: present, Start: start, End: end, Diag: diag}
}

func filterIntervals(records []modality.IntervalRecord, m modality.Modality, diag *Diagnostics) []modality.IntervalRecord {
	var valid []modality.IntervalRecord
	for _, r := range records {
		if !r.Valid() {
			diag.Skipped[m]++
			continue
		}
		valid = append(valid, r)
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i].Start.Before(valid[j].Start) })
	return valid
}

// extent returns the shared x-axis range over every timestamp present.
func extent(wrist []modality.WristbandSample, sleep, meditation []modality.IntervalRecord, subjective []modality.SubjectiveEntry) (time.Time, time.Time) {
	var start, end time.Time
	observe := func(t time.Time) {
		if t.IsZero() {
			return
		}
		if start.IsZero() || t.Before(start) {
			start = t
		}
		if end.IsZero() || t.After(end) {
			end = t
		}
	}
	for _, s := range wrist {
		observe(s.Time)
	}
	for _, r := range sleep {
		observe(r.Start)
		observe(r.Stop)
	}
	for _, r := range meditation {
		observe(r.Start)
		observe(r.Stop)
	}
	for _, e := range subjective {
		observe(e.RecordedAt)
	}
	return start, end
}

// shadeDays adds a faint background band on every other calendar day so
// multi-day ranges are easier to scan.
func shadeDays(fig *chart.Figure, start, end time.Time) {
	day := startOfDay(start)
	for i := 0; !day.After(end); i++ {
		next := day.AddDate(0, 0, 1)
		if i%2 == 1 {
			fig.Layout.Shapes = append(fig.Layout.Shapes, chart.Shape{
				Type:      "rect",
				XRef:      "x",
				YRef:      "y",
				X0:        chart.Time(day),
				X1:        chart.Time(next),
				Y0:        0.0,
				Y1:        1.0,
				FillColor: dayShadeColor,
				Layer:     "below",
				Line:      &chart.Line{Width: 0},
			})
		}
		day = next
	}
}

// tickPerDay emits one x tick per calendar day touched by the range. The
// figure has a single shared axis, so labels appear below the bottom row only.
func tickPerDay(fig *chart.Figure, start, end time.Time) {
	var vals []any
	var text []string
	for day := startOfDay(start); !day.After(end); day = day.AddDate(0, 0, 1) {
		vals = append(vals, chart.Time(day))
		text = append(text, day.Format("2006-01-02"))
	}
	fig.Layout.XAxis.TickMode = "array"
	fig.Layout.XAxis.TickVals = vals
	fig.Layout.XAxis.TickText = text
	fig.Layout.XAxis.TickAngle = chart.Float(0)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// addIntervalRow draws one filled bar per recording in the row's center band
// plus an invisible hover marker at each interval midpoint.
func addIntervalRow(fig *chart.Figure, records []modality.IntervalRecord, band rowBand, color, labelName string) {
	barY0 := band.center() - 0.15*band.height()
	barY1 := band.center() + 0.15*band.height()

	var hoverX []any
	var hoverY []any
	var hoverText []string
	for _, r := range records {
		stop := r.Stop
		if stop.Before(r.Start) {
			// Negative duration renders as a zero-width bar.
			stop = r.Start
		}
		fig.Layout.Shapes = append(fig.Layout.Shapes, chart.Shape{
			Type:      "rect",
			XRef:      "x",
			YRef:      "y",
			X0:        chart.Time(r.Start),
			X1:        chart.Time(stop),
			Y0:        barY0,
			Y1:        barY1,
			FillColor: color,
			Line:      &chart.Line{Width: 0},
		})
		mid := r.Start.Add(stop.Sub(r.Start) / 2)
		hoverX = append(hoverX, chart.Time(mid))
		hoverY = append(hoverY, band.center())
		hoverText = append(hoverText, fmt.Sprintf("Start: %s<br>Stop: %s<br>%s: %s",
			r.Start.Format(time.RFC3339), r.Stop.Format(time.RFC3339), labelName, r.Label))
	}

	fig.Data = append(fig.Data, chart.Trace{
		Type:       "scatter",
		Mode:       "markers",
		X:          hoverX,
		Y:          hoverY,
		Marker:     &chart.Marker{Opacity: chart.Float(0), Size: 20},
		HoverInfo:  "text",
		HoverText:  hoverText,
		ShowLegend: chart.Bool(false),
	})
}

// addWristbandRow draws one marker per recorded minute, colored by wearing
// percentage through the red→green ramp, with a colorbar anchored to the row.
func addWristbandRow(fig *chart.Figure, samples []modality.WristbandSample, band rowBand) {
	x := make([]any, len(samples))
	y := make([]any, len(samples))
	pct := make([]float64, len(samples))
	for i, s := range samples {
		x[i] = chart.Time(s.Time)
		y[i] = band.center()
		pct[i] = s.WearingPct
	}

	barLen := band.height() * 0.8
	if barLen > 0.4 {
		barLen = 0.4
	}
	fig.Data = append(fig.Data, chart.Trace{
		Type: "scatter",
		Name: "Wristband",
		Mode: "markers",
		X:    x,
		Y:    y,
		Marker: &chart.Marker{
			Size:       10,
			Color:      pct,
			ColorScale: chart.Ramp(modality.WearingColorRamp),
			CMin:       chart.Float(0),
			CMax:       chart.Float(100),
			ShowScale:  true,
			ColorBar: &chart.ColorBar{
				Title:     "Wearing %",
				Thickness: 10,
				Len:       barLen,
				X:         1.02,
				XAnchor:   "left",
				Y:         band.center(),
				YAnchor:   "middle",
				TickMode:  "array",
				TickVals:  []any{0, 100},
				TickText:  []string{"0%", "100%"},
				TickFont:  &chart.Font{Size: 10},
			},
		},
		HoverTemplate: "Time: %{x|%Y-%m-%d %H:%M}<br>Wearing: %{marker.color:.0f}%<extra></extra>",
		ShowLegend:    chart.Bool(false),
	})
}

// addSubjectiveRow draws one marker lane per diary section inside the row,
// offset vertically so sections never overlap, with a legend entry per lane.
func addSubjectiveRow(fig *chart.Figure, entries []modality.SubjectiveEntry, band rowBand) {
	bySection := map[modality.Section][]modality.SubjectiveEntry{}
	for _, e := range entries {
		bySection[e.Section] = append(bySection[e.Section], e)
	}

	// Known sections keep their fixed order; anything unexpected follows,
	// sorted, so the layout stays deterministic.
	var lanes []modality.Section
	for _, s := range modality.Sections() {
		if len(bySection[s]) > 0 {
			lanes = append(lanes, s)
		}
	}
	var extra []string
	known := map[modality.Section]bool{}
	for _, s := range modality.Sections() {
		known[s] = true
	}
	for s := range bySection {
		if !known[s] {
			extra = append(extra, string(s))
		}
	}
	sort.Strings(extra)
	for _, s := range extra {
		lanes = append(lanes, modality.Section(s))
	}

	laneH := band.height() / float64(len(lanes))
	for j, section := range lanes {
		laneCenter := band.y1 - (float64(j)+0.5)*laneH
		group := bySection[section]
		x := make([]any, len(group))
		y := make([]any, len(group))
		for i, e := range group {
			x[i] = chart.Time(e.RecordedAt)
			y[i] = laneCenter
		}
		fig.Data = append(fig.Data, chart.Trace{
			Type:          "scatter",
			Name:          string(section),
			Mode:          "markers",
			X:             x,
			Y:             y,
			Marker:        &chart.Marker{Color: section.Color(), Size: 10},
			HoverTemplate: string(section) + "<br>Recording Date: %{x|%Y-%m-%d %H:%M}<extra></extra>",
			ShowLegend:    chart.Bool(false),
		})
		addLaneLegend(fig, laneCenter, section.Color(), string(section))
	}
}

// legendLabel appends a device marker when every record came from Dreem
// report files.
func legendLabel(base string, records []modality.IntervalRecord) string {
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.SourceFile), "dreem") {
			return base + " (Dreem)"
		}
	}
	return base
}

// addRowLegend draws a swatch plus text outside the plot area, vertically
// centered on the row. Rows share one legend space, so the built-in legend
// mechanism is bypassed.
func addRowLegend(fig *chart.Figure, band rowBand, color, label string) {
	fig.Layout.Shapes = append(fig.Layout.Shapes, chart.Shape{
		Type:      "circle",
		XRef:      "paper",
		YRef:      "y",
		X0:        1.005,
		X1:        1.015,
		Y0:        band.center() - 0.02,
		Y1:        band.center() + 0.02,
		FillColor: color,
		Line:      &chart.Line{Width: 0},
	})
	fig.Layout.Annotations = append(fig.Layout.Annotations, chart.Annotation{
		XRef:    "paper",
		YRef:    "y",
		X:       1.02,
		Y:       band.center(),
		Text:    label,
		XAnchor: "left",
		YAnchor: "middle",
		Font:    &chart.Font{Size: 11, Color: "#333"},
	})
}

func addLaneLegend(fig *chart.Figure, laneCenter float64, color, label string) {
	fig.Layout.Shapes = append(fig.Layout.Shapes, chart.Shape{
		Type:      "circle",
		XRef:      "paper",
		YRef:      "y",
		X0:        1.005,
		X1:        1.015,
		Y0:        laneCenter - 0.012,
		Y1:        laneCenter + 0.012,
		FillColor: color,
		Line:      &chart.Line{Width: 0},
	})
	fig.Layout.Annotations = append(fig.Layout.Annotations, chart.Annotation{
		XRef:    "paper",
		YRef:    "y",
		X:       1.02,
		Y:       laneCenter,
		Text:    label,
		XAnchor: "left",
		YAnchor: "middle",
		Font:    &chart.Font{Size: 9, Color: "#333"},
	})
}

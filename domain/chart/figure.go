// Package chart models browser-renderable figures as plain structs. A Figure
// marshals to the JSON shape consumed by Plotly.js: a list of traces plus a
// layout carrying axes, shapes and annotations.
package chart

import (
	"encoding/json"
	"time"
)

// TimeFormat is the timestamp format understood by the date axis.
const TimeFormat = "2006-01-02 15:04:05.000"

// Time renders a timestamp as an axis value.
func Time(t time.Time) string {
	return t.Format(TimeFormat)
}

// Figure is one complete chart: traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// JSON marshals the figure for embedding in a page or serving from an API.
func (f *Figure) JSON() ([]byte, error) {
	return json.Marshal(f)
}

// Trace is a single data series. X and Y accept strings (dates, categories)
// or numbers, matching the loose typing of the wire format.
type Trace struct {
	Type          string     `json:"type,omitempty"`
	Name          string     `json:"name,omitempty"`
	X             []any      `json:"x,omitempty"`
	Y             []any      `json:"y,omitempty"`
	Mode          string     `json:"mode,omitempty"`
	Orientation   string     `json:"orientation,omitempty"`
	Marker        *Marker    `json:"marker,omitempty"`
	Line          *Line      `json:"line,omitempty"`
	HoverInfo     string     `json:"hoverinfo,omitempty"`
	HoverText     []string   `json:"hovertext,omitempty"`
	HoverTemplate string     `json:"hovertemplate,omitempty"`
	CustomData    [][]string `json:"customdata,omitempty"`
	ShowLegend    *bool      `json:"showlegend,omitempty"`
}

// Marker styles scatter and bar glyphs. Color may be a single CSS color or a
// per-point slice (strings or numbers scaled through ColorScale).
type Marker struct {
	Color      any       `json:"color,omitempty"`
	Size       float64   `json:"size,omitempty"`
	Opacity    *float64  `json:"opacity,omitempty"`
	ColorScale [][]any   `json:"colorscale,omitempty"`
	CMin       *float64  `json:"cmin,omitempty"`
	CMax       *float64  `json:"cmax,omitempty"`
	ShowScale  bool      `json:"showscale,omitempty"`
	ColorBar   *ColorBar `json:"colorbar,omitempty"`
}

// ColorBar configures the continuous color legend next to a plot.
type ColorBar struct {
	Title     string   `json:"title,omitempty"`
	Thickness float64  `json:"thickness,omitempty"`
	Len       float64  `json:"len,omitempty"`
	X         float64  `json:"x,omitempty"`
	XAnchor   string   `json:"xanchor,omitempty"`
	Y         float64  `json:"y,omitempty"`
	YAnchor   string   `json:"yanchor,omitempty"`
	TickMode  string   `json:"tickmode,omitempty"`
	TickVals  []any    `json:"tickvals,omitempty"`
	TickText  []string `json:"ticktext,omitempty"`
	TickFont  *Font    `json:"tickfont,omitempty"`
}

// Layout carries everything outside the traces.
type Layout struct {
	Title         string       `json:"title,omitempty"`
	Height        int          `json:"height,omitempty"`
	BarMode       string       `json:"barmode,omitempty"`
	HoverMode     string       `json:"hovermode,omitempty"`
	HoverDistance int          `json:"hoverdistance,omitempty"`
	ShowLegend    *bool        `json:"showlegend,omitempty"`
	Margin        *Margin      `json:"margin,omitempty"`
	PlotBG        string       `json:"plot_bgcolor,omitempty"`
	PaperBG       string       `json:"paper_bgcolor,omitempty"`
	XAxis         *Axis        `json:"xaxis,omitempty"`
	YAxis         *Axis        `json:"yaxis,omitempty"`
	Shapes        []Shape      `json:"shapes,omitempty"`
	Annotations   []Annotation `json:"annotations,omitempty"`
}

// Margin is the plot margin in pixels.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Axis configures one cartesian axis.
type Axis struct {
	Title          string   `json:"title,omitempty"`
	Type           string   `json:"type,omitempty"`
	Range          []any    `json:"range,omitempty"`
	AutoRange      any      `json:"autorange,omitempty"`
	ShowGrid       *bool    `json:"showgrid,omitempty"`
	ShowTickLabels *bool    `json:"showticklabels,omitempty"`
	Visible        *bool    `json:"visible,omitempty"`
	ZeroLine       *bool    `json:"zeroline,omitempty"`
	TickMode       string   `json:"tickmode,omitempty"`
	TickVals       []any    `json:"tickvals,omitempty"`
	TickText       []string `json:"ticktext,omitempty"`
	TickFormat     string   `json:"tickformat,omitempty"`
	TickAngle      *float64 `json:"tickangle,omitempty"`
}

// Shape is a layout drawing primitive (rect, circle or line). XRef/YRef
// select the coordinate system: an axis ("x"/"y") or the figure ("paper").
type Shape struct {
	Type      string   `json:"type"`
	XRef      string   `json:"xref,omitempty"`
	YRef      string   `json:"yref,omitempty"`
	X0        any      `json:"x0"`
	X1        any      `json:"x1"`
	Y0        any      `json:"y0"`
	Y1        any      `json:"y1"`
	FillColor string   `json:"fillcolor,omitempty"`
	Opacity   *float64 `json:"opacity,omitempty"`
	Layer     string   `json:"layer,omitempty"`
	Line      *Line    `json:"line,omitempty"`
}

// Line styles shape borders and line traces.
type Line struct {
	Width float64 `json:"width"`
	Color string  `json:"color,omitempty"`
}

// Annotation is a text label placed on the figure.
type Annotation struct {
	XRef      string `json:"xref,omitempty"`
	YRef      string `json:"yref,omitempty"`
	X         any    `json:"x"`
	Y         any    `json:"y"`
	Text      string `json:"text"`
	ShowArrow bool   `json:"showarrow"`
	XAnchor   string `json:"xanchor,omitempty"`
	YAnchor   string `json:"yanchor,omitempty"`
	Font      *Font  `json:"font,omitempty"`
}

// Font styles annotation and tick text.
type Font struct {
	Size  int    `json:"size,omitempty"`
	Color string `json:"color,omitempty"`
}

// Ramp spreads colors evenly over [0,1] as colorscale stops.
func Ramp(colors []string) [][]any {
	if len(colors) == 0 {
		return nil
	}
	if len(colors) == 1 {
		return [][]any{{0.0, colors[0]}, {1.0, colors[0]}}
	}
	stops := make([][]any, len(colors))
	step := 1.0 / float64(len(colors)-1)
	for i, c := range colors {
		stops[i] = []any{float64(i) * step, c}
	}
	return stops
}

// Bool returns a pointer for optional boolean fields.
func Bool(v bool) *bool { return &v }

// Float returns a pointer for optional numeric fields.
func Float(v float64) *float64 { return &v }

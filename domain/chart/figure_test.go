package chart

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeFormat(t *testing.T) {
	ts := time.Date(2024, 10, 1, 23, 10, 5, 0, time.UTC)
	assert.Equal(t, "2024-10-01 23:10:05.000", Time(ts))
}

func TestRampStops(t *testing.T) {
	assert.Nil(t, Ramp(nil))

	single := Ramp([]string{"#fff"})
	assert.Equal(t, [][]any{{0.0, "#fff"}, {1.0, "#fff"}}, single)

	stops := Ramp([]string{"#ff4136", "#ffe066", "#b6e63e", "#2ecc40"})
	require.Len(t, stops, 4)
	assert.Equal(t, 0.0, stops[0][0])
	assert.InDelta(t, 1.0/3, stops[1][0].(float64), 1e-9)
	assert.Equal(t, 1.0, stops[3][0])
	assert.Equal(t, "#2ecc40", stops[3][1])
}

func TestFigureJSONShape(t *testing.T) {
	fig := &Figure{
		Data: []Trace{{
			Type: "scatter",
			Mode: "markers",
			X:    []any{"2024-10-01 10:00:00.000"},
			Y:    []any{0.5},
		}},
		Layout: Layout{
			Height: 180,
			XAxis:  &Axis{Type: "date"},
			YAxis:  &Axis{Range: []any{0.0, 1.0}, Visible: Bool(false)},
		},
	}

	raw, err := fig.JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Contains(t, decoded, "data")
	require.Contains(t, decoded, "layout")

	layout := decoded["layout"].(map[string]any)
	assert.Equal(t, 180.0, layout["height"])
	yaxis := layout["yaxis"].(map[string]any)
	assert.Equal(t, false, yaxis["visible"])
}

package plots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamdash/domain/modality"
)

func ts(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestStackedWearingHoursBinOrder(t *testing.T) {
	table := []modality.DayBinHours{
		{Day: "2024-10-01", Hours: []float64{0.5, 0, 1, 2, 20}},
	}

	fig := StackedWearingHours(table)
	require.NotNil(t, fig)
	require.Len(t, fig.Data, len(modality.WearingLabels))

	// Best bin first, so the 100% segment sits at the bottom of the stack.
	assert.Equal(t, "100%", fig.Data[0].Name)
	assert.Equal(t, "0%", fig.Data[len(fig.Data)-1].Name)
	assert.Equal(t, "stack", fig.Layout.BarMode)
	assert.Equal(t, []any{0.0, 24.0}, fig.Layout.YAxis.Range)
	assert.Equal(t, 20.0, fig.Data[0].Y[0])
}

func TestWearingEventsGroupsByDay(t *testing.T) {
	samples := []modality.WristbandSample{
		{Time: ts(t, "2024-10-02T10:00:00Z"), WearingPct: 90, Day: "2024-10-02"},
		{Time: ts(t, "2024-10-01T10:00:00Z"), WearingPct: 50, Day: "2024-10-01"},
		{Time: ts(t, "2024-10-01T10:01:00Z"), WearingPct: 60, Day: "2024-10-01"},
	}

	fig := WearingEvents(samples)
	require.NotNil(t, fig)
	require.Len(t, fig.Data, 2)
	assert.Equal(t, "2024-10-01", fig.Data[0].Name)
	assert.Len(t, fig.Data[0].X, 2)
	assert.Equal(t, "2024-10-02", fig.Data[1].Name)
}

func TestStackedWearingHoursNilWhenEmpty(t *testing.T) {
	assert.Nil(t, StackedWearingHours(nil))
	assert.Nil(t, WearingEvents(nil))
}

func TestDurationBarsNilWithoutValidRecords(t *testing.T) {
	assert.Nil(t, DurationBars(nil, SleepDurationBars()))
	assert.Nil(t, DurationBars([]modality.IntervalRecord{{Label: "broken"}}, SleepDurationBars()))
}

func TestDurationBarsSortedAndAnnotated(t *testing.T) {
	records := []modality.IntervalRecord{
		{Start: ts(t, "2024-10-02T23:00:00Z"), Stop: ts(t, "2024-10-03T06:00:00Z"), Label: "night_2"},
		{Start: ts(t, "2024-10-01T23:00:00Z"), Stop: ts(t, "2024-10-02T07:00:00Z"), Label: "night_1"},
	}

	fig := DurationBars(records, SleepDurationBars())
	require.NotNil(t, fig)
	require.Len(t, fig.Data, 1)

	trace := fig.Data[0]
	assert.Equal(t, "h", trace.Orientation)
	assert.Equal(t, []any{"night_1", "night_2"}, trace.Y)
	assert.InDelta(t, 8.0, trace.X[0].(float64), 1e-9)
	require.Len(t, trace.CustomData, 2)
	assert.Equal(t, "2024-10-01 23:00", trace.CustomData[0][0])
	assert.Equal(t, "reversed", fig.Layout.YAxis.AutoRange)
}

func TestDurationBarsHeightCapped(t *testing.T) {
	var records []modality.IntervalRecord
	start := ts(t, "2024-10-01T00:00:00Z")
	for i := 0; i < 30; i++ {
		records = append(records, modality.IntervalRecord{
			Start: start.AddDate(0, 0, i),
			Stop:  start.AddDate(0, 0, i).Add(7 * time.Hour),
			Label: "night",
		})
	}

	fig := DurationBars(records, MeditationDurationBars())
	require.NotNil(t, fig)
	assert.Equal(t, 600, fig.Layout.Height)
}

func TestSubjectiveTimeline(t *testing.T) {
	entries := []modality.SubjectiveEntry{
		{RecordedAt: ts(t, "2024-10-02T21:00:00Z"), Section: modality.SectionTETDiary},
		{RecordedAt: ts(t, "2024-10-01T21:00:00Z"), Section: modality.SectionSleepDiary},
		{Section: modality.SectionActivityDiary}, // no timestamp, dropped
	}

	fig := SubjectiveTimeline(entries)
	require.NotNil(t, fig)
	require.Len(t, fig.Data, 1)

	trace := fig.Data[0]
	require.Len(t, trace.X, 2)
	assert.Equal(t, "sleep_diary", trace.Y[0])
	assert.Equal(t, "tet_diary", trace.Y[1])

	colors, ok := trace.Marker.Color.([]any)
	require.True(t, ok)
	assert.Equal(t, modality.SectionSleepDiary.Color(), colors[0])
}

func TestSubjectiveTimelineNilWhenEmpty(t *testing.T) {
	assert.Nil(t, SubjectiveTimeline(nil))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "7.50 h", FormatHours(7.5))
}

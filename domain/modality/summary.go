package modality

import (
	"time"

	"github.com/montanaflynn/stats"
)

// WristbandSummary describes wristband data availability for one participant.
type WristbandSummary struct {
	DaysWithData   int
	TotalHours     float64
	MeanWearingPct float64
}

// SummarizeWristband computes availability metrics over the per-minute
// samples. Hours are counted from unique recorded minutes.
func SummarizeWristband(samples []WristbandSample) WristbandSummary {
	days := map[string]bool{}
	minutes := map[int64]bool{}
	var pcts []float64
	for _, s := range samples {
		if s.Time.IsZero() {
			continue
		}
		if s.Day != "" {
			days[s.Day] = true
		}
		minutes[s.Time.Truncate(time.Minute).Unix()] = true
		pcts = append(pcts, s.WearingPct)
	}
	mean, _ := stats.Mean(pcts)
	return WristbandSummary{
		DaysWithData:   len(days),
		TotalHours:     float64(len(minutes)) / 60,
		MeanWearingPct: mean,
	}
}

// IntervalSummary describes EEG recording availability.
type IntervalSummary struct {
	Count       int
	TotalHours  float64
	MedianHours float64
}

// SummarizeIntervals computes recording counts and durations over valid
// interval records. Negative-duration records contribute zero hours.
func SummarizeIntervals(records []IntervalRecord) IntervalSummary {
	var durations []float64
	labels := map[string]bool{}
	for _, r := range records {
		if !r.Valid() {
			continue
		}
		labels[r.Label] = true
		durations = append(durations, r.Duration().Hours())
	}
	total, _ := stats.Sum(durations)
	median, _ := stats.Median(durations)
	return IntervalSummary{
		Count:       len(labels),
		TotalHours:  total,
		MedianHours: median,
	}
}

// SummarizeSubjective counts entries that actually carry data, per section.
func SummarizeSubjective(entries []SubjectiveEntry) map[Section]int {
	counts := map[Section]int{}
	for _, e := range entries {
		if e.HasData {
			counts[e.Section]++
		}
	}
	return counts
}

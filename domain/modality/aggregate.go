package modality

import (
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// DayBinHours holds one day of wearing-detection hours, split across the
// percentage bins. Hours is aligned with WearingLabels.
type DayBinHours struct {
	Day   string
	Hours []float64
}

// HoursPerBin tallies, per day, the hours spent in each wearing-percentage
// bin. Each recorded minute counts once even when a file overlap repeats it.
func HoursPerBin(samples []WristbandSample) []DayBinHours {
	type minuteKey struct {
		day    string
		minute int64
	}

	perDay := map[string][]float64{}
	seen := map[minuteKey]bool{}
	for _, s := range samples {
		if s.Time.IsZero() {
			continue
		}
		key := minuteKey{s.Day, s.Time.Truncate(time.Minute).Unix()}
		if seen[key] {
			continue
		}
		seen[key] = true

		pct := s.WearingPct
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		perDay[s.Day] = append(perDay[s.Day], pct)
	}

	days := make([]string, 0, len(perDay))
	for day := range perDay {
		days = append(days, day)
	}
	sort.Strings(days)

	table := make([]DayBinHours, 0, len(days))
	for _, day := range days {
		values := perDay[day]
		sort.Float64s(values)

		counts := make([]float64, len(WearingBins)-1)
		stat.Histogram(counts, WearingBins, values, nil)

		hours := make([]float64, len(counts))
		for i, minutes := range counts {
			hours[i] = minutes / 60
		}
		table = append(table, DayBinHours{Day: day, Hours: hours})
	}
	return table
}

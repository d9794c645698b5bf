package modality

// Wearing-percentage bins used to tally hours per day. The dividers follow
// half-open [low, high) intervals, so 100 lands in the final bin.
var (
	WearingBins   = []float64{0, 1, 50, 75, 100, 101}
	WearingLabels = []string{"0%", "1-49%", "50-74%", "75-99%", "100%"}

	// WearingColorMap keys each bin label to its bar color.
	WearingColorMap = map[string]string{
		"100%":   "#2ecc40",
		"75-99%": "#b6e63e",
		"50-74%": "#ffe066",
		"1-49%":  "#ff7f50",
		"0%":     "#ff4136",
	}

	// WearingColorRamp is the continuous 0→100 color scale for per-minute
	// timeline markers: red at 0%, green at 100%.
	WearingColorRamp = []string{"#ff4136", "#ffe066", "#b6e63e", "#2ecc40"}
)

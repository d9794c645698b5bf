package ui

import (
	"fmt"
	"html/template"

	"github.com/google/uuid"

	"streamdash/domain/chart"
)

// FigureEmbed carries a serialized chart ready for a template. Each embed
// gets a unique div id so several charts can share one page.
type FigureEmbed struct {
	DivID string
	Spec  template.JS
}

// NewFigureEmbed serializes a figure for embedding. Nil figures yield nil so
// templates can show a "no data" placeholder instead.
func NewFigureEmbed(fig *chart.Figure) (*FigureEmbed, error) {
	if fig == nil {
		return nil, nil
	}
	data, err := fig.JSON()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize figure: %w", err)
	}
	return &FigureEmbed{
		DivID: "plot-" + uuid.NewString(),
		Spec:  template.JS(data),
	}, nil
}

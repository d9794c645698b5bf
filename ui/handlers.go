package ui

import (
	"encoding/json"
	"html/template"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"streamdash/app"
	"streamdash/domain/chart"
	"streamdash/domain/modality"
	"streamdash/domain/plots"
	apperrors "streamdash/internal/errors"
)

// pageData is the common template payload for participant pages
type pageData struct {
	ParticipantID string
	ActiveTab     string
	Summary       *app.Summary
	Notes         template.HTML
	Timeline      *FigureEmbed
	Figures       []*FigureEmbed
	Sections      []sectionCount
	SkippedTotal  int

	// tab detail tables
	DayRows   []modality.DayBinHours
	BinLabels []string
	Intervals []modality.IntervalRecord
	Entries   []modality.SubjectiveEntry
}

type sectionCount struct {
	Section modality.Section
	Color   string
	Count   int
}

// handleIndex lists the participant folders found under the data path
func (a *App) handleIndex(w http.ResponseWriter, r *http.Request) {
	names, err := a.service.ListParticipants()
	if err != nil {
		a.renderError(w, err)
		return
	}
	a.renderTemplate(w, "index.html", map[string]interface{}{
		"Participants": names,
	})
}

// handleOverview renders the summary page with the combined timeline
func (a *App) handleOverview(w http.ResponseWriter, r *http.Request) {
	participantID := chi.URLParam(r, "id")
	summary, err := a.service.Summarize(r.Context(), participantID)
	if err != nil {
		a.renderError(w, err)
		return
	}
	data, err := a.service.LoadParticipant(r.Context(), participantID)
	if err != nil {
		a.renderError(w, err)
		return
	}

	timelineEmbed, err := NewFigureEmbed(summary.Timeline.Figure)
	if err != nil {
		a.renderError(w, err)
		return
	}

	a.renderTemplate(w, "overview.html", pageData{
		ParticipantID: participantID,
		ActiveTab:     "overview",
		Summary:       summary,
		Notes:         renderMarkdown(data.Notes),
		Timeline:      timelineEmbed,
		Sections:      sectionCounts(summary.Subjective),
		SkippedTotal:  summary.Timeline.Diag.Total(),
	})
}

// handleWristband renders wearing hours per bin and the raw event scatter
func (a *App) handleWristband(w http.ResponseWriter, r *http.Request) {
	participantID := chi.URLParam(r, "id")
	data, err := a.service.LoadParticipant(r.Context(), participantID)
	if err != nil {
		a.renderError(w, err)
		return
	}
	summary, err := a.service.Summarize(r.Context(), participantID)
	if err != nil {
		a.renderError(w, err)
		return
	}

	table := modality.HoursPerBin(data.Wristband)
	figures, err := embedAll(
		plots.StackedWearingHours(table),
		plots.WearingEvents(data.Wristband),
	)
	if err != nil {
		a.renderError(w, err)
		return
	}

	a.renderTemplate(w, "wristband.html", pageData{
		ParticipantID: participantID,
		ActiveTab:     "wristband",
		Summary:       summary,
		Figures:       figures,
		DayRows:       table,
		BinLabels:     modality.WearingLabels,
	})
}

// handleSleep renders per-night sleep duration bars
func (a *App) handleSleep(w http.ResponseWriter, r *http.Request) {
	a.renderDurationPage(w, r, "sleep", "sleep.html", plots.SleepDurationBars(),
		func(d *app.ParticipantData) []modality.IntervalRecord { return d.Sleep })
}

// handleMeditation renders per-session meditation duration bars
func (a *App) handleMeditation(w http.ResponseWriter, r *http.Request) {
	a.renderDurationPage(w, r, "meditation", "meditation.html", plots.MeditationDurationBars(),
		func(d *app.ParticipantData) []modality.IntervalRecord { return d.Meditation })
}

func (a *App) renderDurationPage(w http.ResponseWriter, r *http.Request, tab, templateName string, cfg plots.DurationBarsConfig, pick func(*app.ParticipantData) []modality.IntervalRecord) {
	participantID := chi.URLParam(r, "id")
	data, err := a.service.LoadParticipant(r.Context(), participantID)
	if err != nil {
		a.renderError(w, err)
		return
	}
	summary, err := a.service.Summarize(r.Context(), participantID)
	if err != nil {
		a.renderError(w, err)
		return
	}

	records := pick(data)
	figures, err := embedAll(plots.DurationBars(records, cfg))
	if err != nil {
		a.renderError(w, err)
		return
	}

	a.renderTemplate(w, templateName, pageData{
		ParticipantID: participantID,
		ActiveTab:     tab,
		Summary:       summary,
		Figures:       figures,
		Intervals:     records,
	})
}

// handleSubjective renders the diary entry scatter and per-section counts
func (a *App) handleSubjective(w http.ResponseWriter, r *http.Request) {
	participantID := chi.URLParam(r, "id")
	data, err := a.service.LoadParticipant(r.Context(), participantID)
	if err != nil {
		a.renderError(w, err)
		return
	}
	summary, err := a.service.Summarize(r.Context(), participantID)
	if err != nil {
		a.renderError(w, err)
		return
	}

	figures, err := embedAll(plots.SubjectiveTimeline(data.Subjective))
	if err != nil {
		a.renderError(w, err)
		return
	}

	a.renderTemplate(w, "subjective.html", pageData{
		ParticipantID: participantID,
		ActiveTab:     "subjective",
		Summary:       summary,
		Figures:       figures,
		Sections:      sectionCounts(summary.Subjective),
		Entries:       data.Subjective,
	})
}

// API handlers

func (a *App) handleParticipantsJSON(w http.ResponseWriter, r *http.Request) {
	names, err := a.service.ListParticipants()
	if err != nil {
		a.jsonError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{"participants": names})
}

func (a *App) handleSummaryJSON(w http.ResponseWriter, r *http.Request) {
	summary, err := a.service.Summarize(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		a.jsonError(w, err)
		return
	}
	writeJSON(w, map[string]interface{}{
		"participant_id": summary.ParticipantID,
		"wristband":      summary.Wristband,
		"sleep":          summary.Sleep,
		"meditation":     summary.Meditation,
		"subjective":     summary.Subjective,
	})
}

func (a *App) handleTimelineJSON(w http.ResponseWriter, r *http.Request) {
	participantID := chi.URLParam(r, "id")
	data, err := a.service.LoadParticipant(r.Context(), participantID)
	if err != nil {
		a.jsonError(w, err)
		return
	}
	result := a.service.Timeline(data)
	if result.Empty() {
		writeJSON(w, map[string]interface{}{
			"participant_id": participantID,
			"figure":         nil,
			"skipped":        result.Diag.Skipped,
		})
		return
	}
	writeJSON(w, map[string]interface{}{
		"participant_id": participantID,
		"figure":         result.Figure,
		"start":          result.Start,
		"end":            result.End,
		"skipped":        result.Diag.Skipped,
	})
}

func (a *App) handleCacheClear(w http.ResponseWriter, r *http.Request) {
	a.service.InvalidateAll()
	writeJSON(w, map[string]string{"status": "cleared"})
}

func (a *App) handleParticipantCacheClear(w http.ResponseWriter, r *http.Request) {
	a.service.Invalidate(chi.URLParam(r, "id"))
	writeJSON(w, map[string]string{"status": "cleared"})
}

// helpers

// embedAll serializes figures in order, skipping nil ones
func embedAll(figures ...*chart.Figure) ([]*FigureEmbed, error) {
	var embeds []*FigureEmbed
	for _, fig := range figures {
		embed, err := NewFigureEmbed(fig)
		if err != nil {
			return nil, err
		}
		if embed != nil {
			embeds = append(embeds, embed)
		}
	}
	return embeds, nil
}

func (a *App) renderError(w http.ResponseWriter, err error) {
	log.Printf("handler error: %v", err)
	http.Error(w, err.Error(), statusFor(err))
}

func (a *App) jsonError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(err))
	json.NewEncoder(w).Encode(map[string]string{
		"error": err.Error(),
		"code":  apperrors.GetCode(err),
	})
}

func statusFor(err error) int {
	switch apperrors.GetCode(err) {
	case apperrors.CodeNotFound:
		return http.StatusNotFound
	case apperrors.CodeInvalidInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("JSON encode error: %v", err)
	}
}

func sectionCounts(counts map[modality.Section]int) []sectionCount {
	var out []sectionCount
	for _, section := range modality.Sections() {
		out = append(out, sectionCount{
			Section: section,
			Color:   section.Color(),
			Count:   counts[section],
		})
	}
	return out
}

// renderMarkdown converts participant notes markdown to HTML. Notes come from
// the study team's own files, not user input.
func renderMarkdown(source string) template.HTML {
	if source == "" {
		return ""
	}
	p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return template.HTML(markdown.ToHTML([]byte(source), p, renderer))
}

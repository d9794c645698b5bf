package ui

import (
	"embed"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"streamdash/app"
	"streamdash/domain/modality"
	"streamdash/domain/plots"
	"streamdash/internal/config"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App represents the dashboard web application
type App struct {
	router    *chi.Mux
	service   *app.DashboardService
	templates *template.Template
	port      string
}

// NewApp creates the dashboard application around a loaded service
func NewApp(cfg *config.Config, service *app.DashboardService) (*App, error) {
	funcMap := template.FuncMap{
		"hours": plots.FormatHours,
		"pct": func(v float64) string {
			return fmt.Sprintf("%.0f%%", v)
		},
		"stamp": func(t time.Time) string {
			if t.IsZero() {
				return "-"
			}
			return t.Format("2006-01-02 15:04")
		},
		"duration": func(r modality.IntervalRecord) string {
			return plots.FormatHours(r.Duration().Hours())
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		service:   service,
		templates: templates,
		port:      cfg.Server.Port,
	}

	a.setupMiddleware()
	a.setupRoutes()
	return a, nil
}

// setupMiddleware configures HTTP middleware
func (a *App) setupMiddleware() {
	a.router.Use(middleware.Logger)
	a.router.Use(middleware.Recoverer)
	a.router.Use(middleware.Compress(5))

	staticFS := http.FileServer(http.FS(embeddedFiles))
	a.router.Handle("/static/*", http.StripPrefix("/", staticFS))
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	// Participant pages
	a.router.Get("/", a.handleIndex)
	a.router.Get("/participants/{id}", a.handleOverview)
	a.router.Get("/participants/{id}/wristband", a.handleWristband)
	a.router.Get("/participants/{id}/sleep", a.handleSleep)
	a.router.Get("/participants/{id}/meditation", a.handleMeditation)
	a.router.Get("/participants/{id}/subjective", a.handleSubjective)

	// API endpoints
	a.router.Get("/api/participants.json", a.handleParticipantsJSON)
	a.router.Get("/api/participants/{id}/summary.json", a.handleSummaryJSON)
	a.router.Get("/api/participants/{id}/timeline.json", a.handleTimelineJSON)
	a.router.Post("/api/cache/clear", a.handleCacheClear)
	a.router.Post("/api/participants/{id}/cache/clear", a.handleParticipantCacheClear)
}

// Router exposes the configured handler, mainly for tests
func (a *App) Router() http.Handler {
	return a.router
}

// Start starts the HTTP server
func (a *App) Start() error {
	addr := ":" + a.port
	log.Printf("Starting study dashboard on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

// Template helpers
func (a *App) renderTemplate(w http.ResponseWriter, templateName string, data interface{}) {
	w.Header().Set("Content-Type", "text/html")
	if err := a.templates.ExecuteTemplate(w, templateName, data); err != nil {
		log.Printf("Template error: %v", err)
		http.Error(w, "Template error", http.StatusInternalServerError)
	}
}

package ui

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"sheetlens/adapters/excel"
	"sheetlens/app"
	"sheetlens/internal/config"
	"sheetlens/internal/session"
)

//go:embed templates/* static/*
var embeddedFiles embed.FS

// App represents the UI application
type App struct {
	router    *chi.Mux
	templates *template.Template
	store     *session.Store
	analysis  *app.AnalysisService
	cfg       *config.Config
	readerCfg excel.ReaderConfig
}

// NewApp creates a new UI application
func NewApp(cfg *config.Config) (*App, error) {
	store := session.NewStore(cfg.Upload.Dir, cfg.Upload.SessionTTL, cfg.Upload.MaxParallelLoad)
	store.StartSweeper(context.Background(), cfg.Upload.SessionTTL/2)

	funcMap := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"json": func(v interface{}) (template.JS, error) {
			b, err := json.Marshal(v)
			if err != nil {
				return "", err
			}
			return template.JS(b), nil
		},
	}
	templates, err := template.New("").Funcs(funcMap).ParseFS(embeddedFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	a := &App{
		router:    chi.NewRouter(),
		templates: templates,
		store:     store,
		analysis:  app.NewAnalysisService(),
		cfg:       cfg,
		readerCfg: excel.DefaultReaderConfig(),
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
	a.router.Handle("/static/*", staticFS)
}

// setupRoutes configures the application routes
func (a *App) setupRoutes() {
	a.router.Get("/", a.handleIndex)
	a.router.Get("/help", a.handleHelp)
	a.router.Post("/upload", a.handleUpload)
	a.router.Get("/workbooks/{id}", a.handleWorkbook)
	a.router.Get("/workbooks/{id}/analyze", a.handleAnalyze)
	a.router.Post("/workbooks/{id}/delete", a.handleDelete)
}

// Start runs the HTTP server
func (a *App) Start() error {
	server := &http.Server{
		Addr:         ":" + a.cfg.Server.Port,
		Handler:      a.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
	}
	return server.ListenAndServe()
}

// Router exposes the chi router, mainly for tests
func (a *App) Router() http.Handler {
	return a.router
}

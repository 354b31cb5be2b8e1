// Package web serves the JSON API and the browser pages for saved packing lists.
package web

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/hpungsan/satchel/internal/config"
	"github.com/hpungsan/satchel/internal/logging"
	"github.com/hpungsan/satchel/internal/ops"
	"github.com/hpungsan/satchel/internal/places"
	"github.com/hpungsan/satchel/internal/weather"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Deps are the collaborators of the server. Only DB is required.
type Deps struct {
	DB      *sql.DB
	Config  *config.Config
	Places  *places.Service
	Weather weather.Provider
	Logger  *zap.Logger
	Version string
}

// NewServer creates and configures the HTTP server for the Satchel API and UI.
func NewServer(deps Deps) *http.Server {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Bind, cfg.Port),
		Handler:           NewHandler(deps),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}

// NewHandler builds the routed and wrapped handler.
func NewHandler(deps Deps) http.Handler {
	if deps.Config == nil {
		deps.Config = config.DefaultConfig()
	}
	log := logging.Component(deps.Logger, "web")
	if deps.Places == nil {
		deps.Places = places.NewService(nil, deps.Logger)
	}

	// Create sub-FS for templates (strip "templates/" prefix)
	templateSub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		log.Fatal("failed to create template sub-FS", zap.Error(err))
	}

	// Create sub-FS for static files (strip "static/" prefix)
	staticSub, err := fs.Sub(staticFS, "static")
	if err != nil {
		log.Fatal("failed to create static sub-FS", zap.Error(err))
	}

	h := &Handlers{
		db:       deps.DB,
		cfg:      deps.Config,
		places:   deps.Places,
		weather:  deps.Weather,
		log:      log,
		renderer: NewRenderer(templateSub, deps.Version, log),
	}

	// JSON API, rate limited per client
	api := http.NewServeMux()
	api.HandleFunc("POST /api/generate", h.HandleGenerate)
	api.HandleFunc("GET /api/places", h.HandlePlaces)
	api.HandleFunc("GET /api/places/{id}", h.HandlePlaceDetails)
	api.HandleFunc("POST /api/lists", h.HandleSaveList)
	api.HandleFunc("GET /api/lists", h.HandleListSaved)
	api.HandleFunc("GET /api/lists/{id}", h.HandleFetchList)
	api.HandleFunc("DELETE /api/lists/{id}", h.HandleDeleteList)
	api.HandleFunc("PUT /api/lists/{id}/items/{item}/check", h.HandleCheck(true))
	api.HandleFunc("DELETE /api/lists/{id}/items/{item}/check", h.HandleCheck(false))

	limiter := newRateLimiter(deps.Config.RateLimitPerMinute)

	mux := http.NewServeMux()
	mux.Handle("/api/", limiter.Limit(api))

	// Pages using Go 1.22+ pattern syntax
	mux.HandleFunc("GET /{$}", h.HandleIndex)
	mux.HandleFunc("GET /lists/{id}", h.HandleList)
	mux.HandleFunc("POST /lists/{id}/items/{item}/toggle", h.HandleToggle)
	mux.HandleFunc("POST /lists/{id}/delete", h.HandleDeleteForm)
	mux.HandleFunc("GET /lists/{id}/export.md", h.HandleExport(ops.FormatMarkdown))
	mux.HandleFunc("GET /lists/{id}/export.html", h.HandleExport(ops.FormatHTML))
	mux.HandleFunc("GET /lists/{id}/export.pdf", h.HandleExport(ops.FormatPDF))

	// Static file server
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticSub)))

	var handler http.Handler = mux
	if len(deps.Config.CORSAllowedOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins: deps.Config.CORSAllowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
			AllowedHeaders: []string{"Content-Type"},
		}).Handler(handler)
	}
	handler = securityHeaders(handler)
	return requestLogger(log, handler)
}

// Run starts the HTTP server and handles graceful shutdown on SIGINT/SIGTERM.
func Run(srv *http.Server, logger *zap.Logger) error {
	log := logging.Component(logger, "web")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.Info("satchel running", zap.String("url", "http://"+srv.Addr))

	if strings.Contains(srv.Addr, "0.0.0.0") || strings.Contains(srv.Addr, "::") {
		log.Warn("server is binding to all interfaces and may be accessible from the network")
	}

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
		log.Info("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
}

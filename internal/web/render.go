package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/hpungsan/satchel/internal/db"
	"github.com/hpungsan/satchel/internal/errors"
	"github.com/hpungsan/satchel/internal/logging"
	"github.com/hpungsan/satchel/internal/ops"
)

// PageData is what the layout template needs.
type PageData struct {
	Title   string
	Version string
}

type IndexPageData struct {
	PageData
	Items      []db.ListSummary
	Pagination ops.Pagination
}

type ListPageData struct {
	PageData
	List       *ops.FetchListOutput
	Sections   []SectionView
	Percent    int
	ToneClass  string
	HidePacked bool
}

type ErrorPageData struct {
	PageData
	StatusCode int
	Message    string
}

// pageFiles maps page names to their template file. Each page defines
// "content", which the shared layout.html pulls in.
var pageFiles = []struct{ name, file string }{
	{"index", "index.html"},
	{"list", "list.html"},
	{"error", "error.html"},
}

// Renderer renders HTML pages from the embedded templates.
type Renderer struct {
	pages   map[string]*template.Template
	version string
	log     *zap.Logger
}

var templateFuncs = template.FuncMap{
	"formatTime": formatTime,
	"prevOffset": func(p ops.Pagination) int { return max(p.Offset-p.Limit, 0) },
	"nextOffset": func(p ops.Pagination) int { return p.Offset + p.Limit },
}

// NewRenderer parses layout.html once and clones it for every page.
// It panics on a template error; templates are embedded, so that is a build bug.
func NewRenderer(templateFS fs.FS, version string, log *zap.Logger) *Renderer {
	layout := template.Must(template.New("layout").Funcs(templateFuncs).ParseFS(templateFS, "layout.html"))

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, p := range pageFiles {
		t := template.Must(layout.Clone())
		pages[p.name] = template.Must(t.ParseFS(templateFS, p.file))
	}
	return &Renderer{pages: pages, version: version, log: log}
}

// page returns the layout data for a page titled title.
func (r *Renderer) page(title string) PageData {
	return PageData{Title: title, Version: r.version}
}

func (r *Renderer) renderPage(w http.ResponseWriter, name string, data any) {
	r.render(w, http.StatusOK, name, data)
}

// render executes into a buffer first so a template error still yields a clean 500.
func (r *Renderer) render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	t, ok := r.pages[name]
	if !ok {
		r.log.Error("unknown page", zap.String("page", name))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if err := t.ExecuteTemplate(&buf, "layout", data); err != nil {
		r.log.Error("render failed", zap.String("page", name), zap.Error(err))
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderError answers with the structured JSON error when the client accepts
// JSON, and with the error page otherwise. Internal errors are logged.
func (r *Renderer) renderError(w http.ResponseWriter, req *http.Request, err error) {
	sErr := errors.As(err)
	if sErr.Code == errors.ErrInternal {
		r.log.Error("request failed",
			zap.String(logging.KeyRequestID, RequestID(req.Context())),
			zap.Any("details", sErr.Details))
	}

	if strings.Contains(req.Header.Get("Accept"), "application/json") {
		writeAPIError(w, sErr)
		return
	}

	r.render(w, sErr.Status, "error", ErrorPageData{
		PageData:   r.page(fmt.Sprintf("Error %d", sErr.Status)),
		StatusCode: sErr.Status,
		Message:    sErr.Message,
	})
}

func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// formatTime shows a Unix timestamp as UTC minutes.
func formatTime(unix int64) string {
	return time.Unix(unix, 0).UTC().Format("2006-01-02 15:04")
}

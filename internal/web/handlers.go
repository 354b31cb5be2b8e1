package web

import (
	"database/sql"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/hpungsan/satchel/internal/config"
	"github.com/hpungsan/satchel/internal/errors"
	"github.com/hpungsan/satchel/internal/export"
	"github.com/hpungsan/satchel/internal/ops"
	"github.com/hpungsan/satchel/internal/packing"
	"github.com/hpungsan/satchel/internal/places"
	"github.com/hpungsan/satchel/internal/weather"
)

// Handlers contains HTTP route handlers for the API and the pages.
type Handlers struct {
	db       *sql.DB
	cfg      *config.Config
	places   *places.Service
	weather  weather.Provider
	log      *zap.Logger
	renderer *Renderer
}

// HandleIndex handles GET /: saved lists, most recently updated first.
func (h *Handlers) HandleIndex(w http.ResponseWriter, r *http.Request) {
	result, err := ops.ListSaved(h.db, ops.ListSavedInput{
		Limit:  parseIntParam(r, "limit", ops.DefaultListLimit),
		Offset: parseIntParam(r, "offset", 0),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "index", IndexPageData{
		PageData:   h.renderer.page("Saved lists"),
		Items:      result.Items,
		Pagination: result.Pagination,
	})
}

// HandleList handles GET /lists/{id}: one list grouped by category.
// ?hide_packed=1 leaves out packed items.
func (h *Handlers) HandleList(w http.ResponseWriter, r *http.Request) {
	out, err := ops.FetchList(h.db, ops.FetchListInput{
		ID:         r.PathValue("id"),
		HidePacked: parseBoolParam(r, "hide_packed"),
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	h.renderer.renderPage(w, "list", ListPageData{
		PageData:   h.renderer.page(out.Destination),
		List:       out,
		Sections:   sectionViews(out.List, out.Checked),
		Percent:    percent(out.Progress),
		ToneClass:  toneClass(out.Tone),
		HidePacked: out.HidePacked,
	})
}

// HandleToggle handles POST /lists/{id}/items/{item}/toggle from the list page form.
// The form's "checked" field is the new state.
func (h *Handlers) HandleToggle(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.renderError(w, r, errors.NewInvalidRequest("invalid form data"))
		return
	}

	id := r.PathValue("id")
	_, err := ops.SetChecked(h.db, ops.SetCheckedInput{
		ListID:  id,
		ItemID:  r.PathValue("item"),
		Checked: r.FormValue("checked") == "true",
	})
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	target := "/lists/" + url.PathEscape(id)
	if r.FormValue("hide_packed") == "1" {
		target += "?hide_packed=1"
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// HandleDeleteForm handles POST /lists/{id}/delete from the list page.
func (h *Handlers) HandleDeleteForm(w http.ResponseWriter, r *http.Request) {
	if _, err := ops.DeleteList(h.db, ops.DeleteListInput{ID: r.PathValue("id")}); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// HandleExport returns the handler of GET /lists/{id}/export.<format>.
// Without a configured public URL, the PDF QR code points at this server.
func (h *Handlers) HandleExport(format ops.Format) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := *h.cfg
		if cfg.PublicBaseURL == "" {
			cfg.PublicBaseURL = requestBaseURL(r)
		}

		out, err := ops.Export(h.db, &cfg, ops.ExportInput{ID: r.PathValue("id"), Format: format})
		if err != nil {
			h.renderer.renderError(w, r, err)
			return
		}

		disposition := "attachment"
		if format == ops.FormatHTML {
			disposition = "inline"
			// Standalone document with its own inline print style
			w.Header().Set("Content-Security-Policy", "default-src 'none'; style-src 'unsafe-inline'")
		}
		w.Header().Set("Content-Type", out.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, out.Filename))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(out.Content)
	}
}

// SectionView is one category block of the list page.
type SectionView struct {
	Title   string
	Caption string
	Items   []ItemView
}

// ItemView is one row of the list page.
type ItemView struct {
	ID      string
	Text    string
	Checked bool
}

func sectionViews(l packing.PackingList, checked []string) []SectionView {
	isChecked := make(map[string]bool, len(checked))
	for _, id := range checked {
		isChecked[id] = true
	}

	var out []SectionView
	for _, c := range packing.Categories() {
		items := l.ByCategory(c)
		if len(items) == 0 {
			continue
		}
		s := SectionView{Title: c.Title(), Caption: l.CategorySummary(c)}
		for _, it := range items {
			s.Items = append(s.Items, ItemView{ID: it.ID, Text: export.ItemText(it), Checked: isChecked[it.ID]})
		}
		out = append(out, s)
	}
	return out
}

// percent is the packed share rounded down, 0 for an empty list.
func percent(p ops.Progress) int {
	if p.Total == 0 {
		return 0
	}
	return p.Completed * 100 / p.Total
}

// toneClass is the header CSS class of a weather tone.
func toneClass(tone string) string {
	if tone == "" {
		return "tone-none"
	}
	return "tone-" + tone
}

// requestBaseURL is the scheme and host the request was made to.
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// parseIntParam parses an integer query parameter with a default value.
func parseIntParam(r *http.Request, name string, defaultVal int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

// parseBoolParam parses a boolean query parameter.
func parseBoolParam(r *http.Request, name string) bool {
	s := r.URL.Query().Get(name)
	return s == "true" || s == "1"
}

package web

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/hpungsan/satchel/internal/errors"
	"github.com/hpungsan/satchel/internal/logging"
	"github.com/hpungsan/satchel/internal/ops"
	"github.com/hpungsan/satchel/internal/packing"
)

// maxBodySize bounds JSON request bodies.
const maxBodySize = 1 << 20

// generateError is the error body of POST /api/generate.
type generateError struct {
	Error   string             `json:"error"`
	Details errors.FieldErrors `json:"details,omitempty"`
}

// HandleGenerate handles POST /api/generate. It answers with the bare
// packing list, or {"error":"Invalid input","details":{field:[msgs]}}.
func (h *Handlers) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var req ops.GenerateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		renderJSON(w, http.StatusBadRequest, generateError{Error: "Invalid input", Details: errors.FieldErrors{}})
		return
	}

	out, err := ops.Generate(r.Context(), ops.GenerateDeps{
		Weather:        h.weather,
		WeatherTimeout: h.cfg.WeatherTimeout(),
		Logger:         h.log,
	}, req)
	if err != nil {
		if fields := errors.Fields(err); fields != nil {
			renderJSON(w, http.StatusBadRequest, generateError{Error: "Invalid input", Details: fields})
			return
		}
		h.log.Error("generate failed", zap.String(logging.KeyRequestID, RequestID(r.Context())), zap.Error(err))
		renderJSON(w, http.StatusInternalServerError, generateError{Error: "Internal server error"})
		return
	}

	renderJSON(w, http.StatusOK, out.List)
}

// HandlePlaces handles GET /api/places?q=: destination suggestions.
func (h *Handlers) HandlePlaces(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, h.places.Suggest(r.Context(), r.URL.Query().Get("q")))
}

// HandlePlaceDetails handles GET /api/places/{id}.
func (h *Handlers) HandlePlaceDetails(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	d := h.places.Details(r.Context(), id)
	if d == nil {
		h.apiError(w, r, errors.NewNotFound("place", id))
		return
	}
	renderJSON(w, http.StatusOK, d)
}

// saveListRequest is the body of POST /api/lists.
type saveListRequest struct {
	List    packing.PackingList    `json:"list"`
	Input   *packing.GenerateInput `json:"input,omitempty"`
	Checked []string               `json:"checked,omitempty"`
}

// HandleSaveList handles POST /api/lists. 201 when a list was created,
// 200 when a saved list for the same destination was replaced.
func (h *Handlers) HandleSaveList(w http.ResponseWriter, r *http.Request) {
	var req saveListRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.apiError(w, r, errors.NewInvalidRequest("request body must be valid JSON"))
		return
	}

	out, err := ops.SaveList(h.db, ops.SaveListInput{List: req.List, Input: req.Input, Checked: req.Checked})
	if err != nil {
		h.apiError(w, r, err)
		return
	}

	status := http.StatusOK
	if out.Created {
		status = http.StatusCreated
	}
	renderJSON(w, status, out)
}

// HandleListSaved handles GET /api/lists.
func (h *Handlers) HandleListSaved(w http.ResponseWriter, r *http.Request) {
	out, err := ops.ListSaved(h.db, ops.ListSavedInput{
		Limit:  parseIntParam(r, "limit", ops.DefaultListLimit),
		Offset: parseIntParam(r, "offset", 0),
	})
	if err != nil {
		h.apiError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleFetchList handles GET /api/lists/{id}.
func (h *Handlers) HandleFetchList(w http.ResponseWriter, r *http.Request) {
	out, err := ops.FetchList(h.db, ops.FetchListInput{
		ID:         r.PathValue("id"),
		HidePacked: parseBoolParam(r, "hide_packed"),
	})
	if err != nil {
		h.apiError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleDeleteList handles DELETE /api/lists/{id}.
func (h *Handlers) HandleDeleteList(w http.ResponseWriter, r *http.Request) {
	out, err := ops.DeleteList(h.db, ops.DeleteListInput{ID: r.PathValue("id")})
	if err != nil {
		h.apiError(w, r, err)
		return
	}
	renderJSON(w, http.StatusOK, out)
}

// HandleCheck returns the handler of PUT (checked) or DELETE (unchecked)
// /api/lists/{id}/items/{item}/check.
func (h *Handlers) HandleCheck(checked bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := ops.SetChecked(h.db, ops.SetCheckedInput{
			ListID:  r.PathValue("id"),
			ItemID:  r.PathValue("item"),
			Checked: checked,
		})
		if err != nil {
			h.apiError(w, r, err)
			return
		}
		renderJSON(w, http.StatusOK, out)
	}
}

// apiError writes err as JSON and logs internal failures.
func (h *Handlers) apiError(w http.ResponseWriter, r *http.Request, err error) {
	sErr := errors.As(err)
	if sErr.Code == errors.ErrInternal {
		h.log.Error("request failed",
			zap.String(logging.KeyRequestID, RequestID(r.Context())),
			zap.Any("details", sErr.Details))
	}
	writeAPIError(w, sErr)
}

// writeAPIError writes {"error":{"code","message","status"[,"details"]}}.
// Internal details never reach the client.
func writeAPIError(w http.ResponseWriter, err error) {
	sErr := errors.As(err)
	body := map[string]any{
		"code":    string(sErr.Code),
		"message": sErr.Message,
		"status":  sErr.Status,
	}
	if fields := errors.Fields(sErr); fields != nil {
		body["details"] = map[string]any{"fields": fields}
	}
	renderJSON(w, sErr.Status, map[string]any{"error": body})
}

// decodeJSON reads a size-limited JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)
	return json.NewDecoder(r.Body).Decode(v)
}

package mcp

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/hpungsan/satchel/internal/config"
	"github.com/hpungsan/satchel/internal/errors"
	"github.com/hpungsan/satchel/internal/logging"
	"github.com/hpungsan/satchel/internal/ops"
	"github.com/hpungsan/satchel/internal/packing"
	"github.com/hpungsan/satchel/internal/places"
	"github.com/hpungsan/satchel/internal/weather"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db         *sql.DB
	cfg        *config.Config
	weather    weather.Provider
	places     *places.Service
	log        *zap.Logger
	exportsDir string
}

// NewHandlers creates a new Handlers instance.
func NewHandlers(deps Deps) *Handlers {
	cfg := deps.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	p := deps.Places
	if p == nil {
		p = places.NewService(nil, deps.Logger)
	}
	return &Handlers{
		db:         deps.DB,
		cfg:        cfg,
		weather:    deps.Weather,
		places:     p,
		log:        logging.Component(deps.Logger, "mcp"),
		exportsDir: deps.ExportsDir,
	}
}

// Request types for each tool

// PlacesRequest represents the arguments for packing_places.
type PlacesRequest struct {
	Query   string `json:"query,omitempty"`
	PlaceID string `json:"place_id,omitempty"`
}

// SaveRequest represents the arguments for list_save.
type SaveRequest struct {
	List    packing.PackingList    `json:"list"`
	Input   *packing.GenerateInput `json:"input,omitempty"`
	Checked []string               `json:"checked,omitempty"`
}

// FetchRequest represents the arguments for list_fetch.
type FetchRequest struct {
	ID         string `json:"id"`
	HidePacked bool   `json:"hide_packed,omitempty"`
}

// IndexRequest represents the arguments for list_index.
type IndexRequest struct {
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// CheckRequest represents the arguments for list_check.
type CheckRequest struct {
	ListID  string `json:"list_id"`
	ItemID  string `json:"item_id"`
	Checked *bool  `json:"checked,omitempty"` // default true
}

// DeleteRequest represents the arguments for list_delete.
type DeleteRequest struct {
	ID string `json:"id"`
}

// ExportRequest represents the arguments for list_export.
type ExportRequest struct {
	ID     string `json:"id"`
	Format string `json:"format,omitempty"`
	Path   string `json:"path,omitempty"`
}

// PlacesOutput is the result of a suggestion query.
type PlacesOutput struct {
	Suggestions []places.Suggestion `json:"suggestions"`
}

// ExportOutput is the result of list_export. Content is set for inline
// exports, Path and Bytes for exports written to a file.
type ExportOutput struct {
	ID          string     `json:"id"`
	Format      ops.Format `json:"format"`
	Filename    string     `json:"filename"`
	ContentType string     `json:"content_type"`
	Content     string     `json:"content,omitempty"`
	Path        string     `json:"path,omitempty"`
	Bytes       int        `json:"bytes,omitempty"`
}

// Handler implementations

// HandleGenerate handles the packing_generate tool call.
func (h *Handlers) HandleGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ops.GenerateRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.Generate(ctx, ops.GenerateDeps{
		Weather:        h.weather,
		WeatherTimeout: h.cfg.WeatherTimeout(),
		Logger:         h.log,
	}, input)
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandlePlaces handles the packing_places tool call.
func (h *Handlers) HandlePlaces(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[PlacesRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	if input.PlaceID != "" {
		d := h.places.Details(ctx, input.PlaceID)
		if d == nil {
			return errorResult(errors.NewNotFound("place", input.PlaceID)), nil
		}
		return successResult(d)
	}

	return successResult(PlacesOutput{Suggestions: h.places.Suggest(ctx, input.Query)})
}

// HandleSave handles the list_save tool call.
func (h *Handlers) HandleSave(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[SaveRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.SaveList(h.db, ops.SaveListInput{
		List:    input.List,
		Input:   input.Input,
		Checked: input.Checked,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleFetch handles the list_fetch tool call.
func (h *Handlers) HandleFetch(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[FetchRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.FetchList(h.db, ops.FetchListInput{
		ID:         input.ID,
		HidePacked: input.HidePacked,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleIndex handles the list_index tool call.
func (h *Handlers) HandleIndex(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[IndexRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.ListSaved(h.db, ops.ListSavedInput{
		Limit:  input.Limit,
		Offset: input.Offset,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleCheck handles the list_check tool call.
func (h *Handlers) HandleCheck(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[CheckRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	checked := true
	if input.Checked != nil {
		checked = *input.Checked
	}

	result, err := ops.SetChecked(h.db, ops.SetCheckedInput{
		ListID:  input.ListID,
		ItemID:  input.ItemID,
		Checked: checked,
	})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleDelete handles the list_delete tool call.
func (h *Handlers) HandleDelete(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[DeleteRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	result, err := ops.DeleteList(h.db, ops.DeleteListInput{ID: input.ID})
	if err != nil {
		return errorResult(err), nil
	}

	return successResult(result)
}

// HandleExport handles the list_export tool call.
func (h *Handlers) HandleExport(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ExportRequest](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}

	format := ops.FormatMarkdown
	if input.Format != "" {
		if format, err = ops.ParseFormat(input.Format); err != nil {
			return errorResult(err), nil
		}
	}

	doc, err := ops.Export(h.db, h.cfg, ops.ExportInput{ID: input.ID, Format: format})
	if err != nil {
		return errorResult(err), nil
	}

	out := ExportOutput{
		ID:          doc.ID,
		Format:      doc.Format,
		Filename:    doc.Filename,
		ContentType: doc.ContentType,
	}

	if input.Path == "" && format != ops.FormatPDF {
		out.Content = string(doc.Content)
		return successResult(out)
	}

	if h.exportsDir == "" {
		return errorResult(errors.NewInvalidRequest("file exports are not available: no exports directory configured")), nil
	}
	written, err := ops.WriteExport(doc, input.Path, h.exportsDir, time.Now())
	if err != nil {
		return errorResult(err), nil
	}
	out.Path = written.Path
	out.Bytes = written.Bytes

	return successResult(out)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Internal error details are never exposed.
func errorResult(err error) *mcp.CallToolResult {
	sErr := errors.As(err)

	errorObj := map[string]any{
		"code":    sErr.Code,
		"message": sErr.Message,
		"status":  sErr.Status,
	}
	if sErr.Code != errors.ErrInternal && sErr.Details != nil {
		errorObj["details"] = sErr.Details
	}

	content, _ := json.Marshal(map[string]any{"error": errorObj})
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}

// Package mcp exposes packing list generation and saved lists as MCP tools over stdio.
package mcp

import (
	"database/sql"
	"maps"
	"slices"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/hpungsan/satchel/internal/config"
	"github.com/hpungsan/satchel/internal/places"
	"github.com/hpungsan/satchel/internal/weather"
)

// Tool types. disabled_types switches off every tool of a type.
const (
	TypePacking = "packing"
	TypeList    = "list"
)

// KnownTypes lists the tool types in display order.
var KnownTypes = []string{TypePacking, TypeList}

type toolEntry struct {
	kind    string
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry is keyed by tool name.
var toolRegistry = map[string]toolEntry{
	"packing_generate": {TypePacking, generateToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleGenerate }},
	"packing_places":   {TypePacking, placesToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandlePlaces }},
	"list_save":        {TypeList, saveToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleSave }},
	"list_fetch":       {TypeList, fetchToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleFetch }},
	"list_index":       {TypeList, indexToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleIndex }},
	"list_check":       {TypeList, checkToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleCheck }},
	"list_delete":      {TypeList, deleteToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleDelete }},
	"list_export":      {TypeList, exportToolDef, func(h *Handlers) server.ToolHandlerFunc { return h.HandleExport }},
}

// AllToolNames returns every tool name, sorted.
func AllToolNames() []string {
	return slices.Sorted(maps.Keys(toolRegistry))
}

// ToolType returns the type of a registered tool, or "" for an unknown name.
func ToolType(name string) string {
	return toolRegistry[name].kind
}

// ValidateDisabledTools returns the names that are not tools.
func ValidateDisabledTools(names []string) []string {
	unknown := []string{}
	for _, name := range names {
		if ToolType(name) == "" {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// ValidateDisabledTypes returns the names that are not tool types.
func ValidateDisabledTypes(names []string) []string {
	unknown := []string{}
	for _, name := range names {
		if !slices.Contains(KnownTypes, name) {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// ExpandTypesToTools returns the sorted names of all tools of the given types.
func ExpandTypesToTools(types []string) []string {
	if len(types) == 0 {
		return nil
	}
	var tools []string
	for _, name := range AllToolNames() {
		if slices.Contains(types, ToolType(name)) {
			tools = append(tools, name)
		}
	}
	return tools
}

// enabledTools returns the tool names left after cfg's disabled_tools and disabled_types.
func enabledTools(cfg *config.Config) []string {
	off := ExpandTypesToTools(cfg.DisabledTypes)
	off = append(off, cfg.DisabledTools...)

	var names []string
	for _, name := range AllToolNames() {
		if !slices.Contains(off, name) {
			names = append(names, name)
		}
	}
	return names
}

// Deps are the collaborators of the tool handlers. Only DB is required.
type Deps struct {
	DB      *sql.DB
	Config  *config.Config
	Weather weather.Provider
	Places  *places.Service
	Logger  *zap.Logger

	// ExportsDir is where list_export writes files.
	ExportsDir string
}

// NewServer creates an MCP server with the enabled Satchel tools registered.
// Unknown names in disabled_tools or disabled_types are logged and ignored.
func NewServer(deps Deps, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"satchel",
		version,
		server.WithToolCapabilities(true),
	)

	h := NewHandlers(deps)
	if unknown := ValidateDisabledTools(h.cfg.DisabledTools); len(unknown) > 0 {
		h.log.Warn("ignoring unknown disabled_tools", zap.Strings("names", unknown))
	}
	if unknown := ValidateDisabledTypes(h.cfg.DisabledTypes); len(unknown) > 0 {
		h.log.Warn("ignoring unknown disabled_types", zap.Strings("names", unknown))
	}

	for _, name := range enabledTools(h.cfg) {
		entry := toolRegistry[name]
		s.AddTool(entry.def, entry.handler(h))
	}
	return s
}

// Run serves the tools over stdio until stdin closes.
func Run(deps Deps, version string) error {
	return server.ServeStdio(NewServer(deps, version))
}

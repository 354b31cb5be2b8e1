package mcp

import "github.com/mark3labs/mcp-go/mcp"

var basicsSchema = map[string]any{
	"destination": map[string]any{"type": "string", "description": "Trip destination, e.g. \"Bali, Indonesia\""},
	"startDate":   map[string]any{"type": "string", "description": "First day, YYYY-MM-DD"},
	"endDate":     map[string]any{"type": "string", "description": "Last day, YYYY-MM-DD, after startDate"},
	"purpose":     map[string]any{"type": "string", "enum": []string{"leisure", "work", "event", "adventure"}},
}

var styleSchema = map[string]any{
	"party":     map[string]any{"type": "string", "enum": []string{"solo", "couple", "family"}},
	"packStyle": map[string]any{"type": "string", "enum": []string{"light", "medium", "heavy"}},
	"needs": map[string]any{
		"type": "object",
		"properties": map[string]any{
			"kids":        map[string]any{"type": "boolean"},
			"pets":        map[string]any{"type": "boolean"},
			"meds":        map[string]any{"type": "boolean"},
			"instruments": map[string]any{"type": "boolean"},
		},
	},
}

var weatherSchema = map[string]any{
	"climate":    map[string]any{"type": "string", "enum": []string{"cold", "mild", "warm", "tropical", "changeable"}},
	"avgHighC":   map[string]any{"type": "number"},
	"avgLowC":    map[string]any{"type": "number"},
	"rainChance": map[string]any{"type": "number", "minimum": 0, "maximum": 1},
}

var generateToolDef = mcp.NewTool("packing_generate",
	mcp.WithDescription("Generate a packing checklist for a trip. When no weather is given, a best-effort forecast is looked up. The result is not saved; pass list and input to list_save to keep it."),
	mcp.WithObject("basics", mcp.Required(), mcp.Description("Where, when and why"), mcp.Properties(basicsSchema)),
	mcp.WithObject("style", mcp.Required(), mcp.Description("Who travels and how they pack"), mcp.Properties(styleSchema)),
	mcp.WithObject("weather", mcp.Description("Optional forecast summary; skips the lookup"), mcp.Properties(weatherSchema)),
	mcp.WithReadOnlyHintAnnotation(true),
)

var placesToolDef = mcp.NewTool("packing_places",
	mcp.WithDescription("Suggest destinations for a partial name, or resolve a place id to its details."),
	mcp.WithString("query", mcp.Description("Partial destination name")),
	mcp.WithString("place_id", mcp.Description("Place id from a previous suggestion")),
	mcp.WithReadOnlyHintAnnotation(true),
)

var saveToolDef = mcp.NewTool("list_save",
	mcp.WithDescription("Save a generated list. A saved list for the same destination (case and spacing ignored) is replaced; it keeps its id and the check-state of items still present."),
	mcp.WithObject("list", mcp.Required(), mcp.Description("The list returned by packing_generate")),
	mcp.WithObject("input", mcp.Description("The input returned by packing_generate")),
	mcp.WithArray("checked", mcp.Description("Item ids already packed"), mcp.Items(map[string]any{"type": "string"})),
)

var fetchToolDef = mcp.NewTool("list_fetch",
	mcp.WithDescription("Fetch a saved list with its packed items and progress."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Saved list id")),
	mcp.WithBoolean("hide_packed", mcp.Description("Leave packed items out of the list (progress still counts them)")),
	mcp.WithReadOnlyHintAnnotation(true),
)

var indexToolDef = mcp.NewTool("list_index",
	mcp.WithDescription("List saved lists, most recently updated first."),
	mcp.WithNumber("limit", mcp.Description("Page size, default 20, max 100")),
	mcp.WithNumber("offset", mcp.Description("Items to skip")),
	mcp.WithReadOnlyHintAnnotation(true),
)

var checkToolDef = mcp.NewTool("list_check",
	mcp.WithDescription("Mark an item of a saved list as packed or unpacked. Repeating a call is a no-op."),
	mcp.WithString("list_id", mcp.Required(), mcp.Description("Saved list id")),
	mcp.WithString("item_id", mcp.Required(), mcp.Description("Item id, e.g. \"passport\"")),
	mcp.WithBoolean("checked", mcp.Description("New state, default true")),
)

var deleteToolDef = mcp.NewTool("list_delete",
	mcp.WithDescription("Permanently delete a saved list and its check-state."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Saved list id")),
	mcp.WithDestructiveHintAnnotation(true),
)

var exportToolDef = mcp.NewTool("list_export",
	mcp.WithDescription("Export a saved list as markdown, HTML or PDF. Markdown and HTML are returned inline unless a path is given; PDF is always written to a file (default: the exports directory)."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Saved list id")),
	mcp.WithString("format", mcp.Description("md (default), html or pdf"), mcp.Enum("md", "html", "pdf")),
	mcp.WithString("path", mcp.Description("Output file inside the exports directory; extension must match the format")),
)

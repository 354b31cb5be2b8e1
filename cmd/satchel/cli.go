package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v2"

	"github.com/hpungsan/satchel/internal/errors"
	"github.com/hpungsan/satchel/internal/ops"
	"github.com/hpungsan/satchel/internal/packing"
	"github.com/hpungsan/satchel/internal/web"
)

// maxStdinBytes bounds JSON read from stdin.
const maxStdinBytes = 1 << 20

// newCLIApp creates the CLI application with all commands.
// e is nil when only help or version output is needed.
func newCLIApp(e *env) *cli.App {
	app := &cli.App{
		Name:    "satchel",
		Usage:   "Packing checklists from your trip details",
		Version: Version,
		Commands: []*cli.Command{
			generateCmd(e),
			placesCmd(e),
			saveCmd(e),
			showCmd(e),
			listsCmd(e),
			checkCmd(e, true),
			checkCmd(e, false),
			deleteCmd(e),
			exportCmd(e),
			serveCmd(e),
		},
	}
	// Disable default exit error handler to allow proper error return in tests
	app.ExitErrHandler = func(_ *cli.Context, _ error) {}
	return app
}

// generateCmd creates the generate command.
func generateCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Generate a packing list (from flags, or a JSON request on stdin)",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "destination", Aliases: []string{"d"}, Usage: "Where the trip goes"},
			&cli.StringFlag{Name: "start", Usage: "Start date (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "end", Usage: "End date (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "purpose", Value: "leisure", Usage: "leisure|work|event|adventure"},
			&cli.StringFlag{Name: "party", Value: "solo", Usage: "solo|couple|family"},
			&cli.StringFlag{Name: "pack-style", Value: "medium", Usage: "light|medium|heavy"},
			&cli.BoolFlag{Name: "kids", Usage: "Travelling with kids"},
			&cli.BoolFlag{Name: "pets", Usage: "Travelling with pets"},
			&cli.BoolFlag{Name: "meds", Usage: "Needs medication"},
			&cli.BoolFlag{Name: "instruments", Usage: "Carrying instruments"},
			&cli.StringFlag{Name: "climate", Usage: "Weather: cold|mild|warm|tropical|changeable"},
			&cli.Float64Flag{Name: "high", Usage: "Weather: average high (°C)"},
			&cli.Float64Flag{Name: "low", Usage: "Weather: average low (°C)"},
			&cli.Float64Flag{Name: "rain", Usage: "Weather: rain chance (0-1)"},
			&cli.BoolFlag{Name: "no-weather", Usage: "Do not look up weather"},
			&cli.BoolFlag{Name: "save", Usage: "Save the generated list"},
		},
		Action: func(c *cli.Context) error {
			req, err := generateRequest(c)
			if err != nil {
				return outputError(err)
			}

			deps := ops.GenerateDeps{
				WeatherTimeout: e.cfg.WeatherTimeout(),
				Logger:         e.log,
			}
			if !c.Bool("no-weather") {
				deps.Weather = e.weather
			}

			out, err := ops.Generate(c.Context, deps, req)
			if err != nil {
				return outputError(err)
			}

			if !c.Bool("save") {
				return outputJSON(c.App.Writer, out)
			}

			input := out.Input
			saved, err := ops.SaveList(e.db, ops.SaveListInput{List: out.List, Input: &input})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, generateSavedOutput{GenerateOutput: out, Saved: saved})
		},
	}
}

type generateSavedOutput struct {
	*ops.GenerateOutput
	Saved *ops.SaveListOutput `json:"saved"`
}

// generateRequest reads a JSON request from stdin when one is piped, and
// builds it from flags otherwise.
func generateRequest(c *cli.Context) (ops.GenerateRequest, error) {
	var req ops.GenerateRequest

	if stdinHasData(c.App.Reader) {
		text, err := readStdin(c.App.Reader, maxStdinBytes)
		if err != nil {
			return req, errors.NewInvalidRequest(err.Error())
		}
		if text != "" {
			if err := json.Unmarshal([]byte(text), &req); err != nil {
				return req, errors.NewInvalidRequest(fmt.Sprintf("invalid request JSON: %v", err))
			}
			return req, nil
		}
	}

	req.Basics = ops.BasicsRequest{
		Destination: c.String("destination"),
		StartDate:   c.String("start"),
		EndDate:     c.String("end"),
		Purpose:     c.String("purpose"),
	}
	req.Style = ops.StyleRequest{
		Party:     c.String("party"),
		PackStyle: c.String("pack-style"),
		Needs: packing.Needs{
			Kids:        c.Bool("kids"),
			Pets:        c.Bool("pets"),
			Meds:        c.Bool("meds"),
			Instruments: c.Bool("instruments"),
		},
	}
	req.Weather = weatherFromFlags(c)
	return req, nil
}

// weatherFromFlags returns nil when no weather flag is set.
func weatherFromFlags(c *cli.Context) *packing.WeatherSummary {
	if !c.IsSet("climate") && !c.IsSet("high") && !c.IsSet("low") && !c.IsSet("rain") {
		return nil
	}
	w := &packing.WeatherSummary{Climate: c.String("climate")}
	if c.IsSet("high") {
		v := c.Float64("high")
		w.AvgHighC = &v
	}
	if c.IsSet("low") {
		v := c.Float64("low")
		w.AvgLowC = &v
	}
	if c.IsSet("rain") {
		v := c.Float64("rain")
		w.RainChance = &v
	}
	return w
}

// placesCmd creates the places command.
func placesCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "places",
		Usage:     "Suggest destinations, or show one place with --id",
		ArgsUsage: "[query]",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "id", Usage: "Place id to look up"},
		},
		Action: func(c *cli.Context) error {
			if id := c.String("id"); id != "" {
				details := e.places.Details(c.Context, id)
				if details == nil {
					return outputError(errors.NewNotFound("place", id))
				}
				return outputJSON(c.App.Writer, details)
			}

			query := strings.Join(c.Args().Slice(), " ")
			if strings.TrimSpace(query) == "" {
				return outputError(errors.NewInvalidRequest("query is required"))
			}
			return outputJSON(c.App.Writer, e.places.Suggest(c.Context, query))
		},
	}
}

// saveInput is what save accepts on stdin: the output of generate, or a bare list.
type saveInput struct {
	List    packing.PackingList    `json:"list"`
	Input   *packing.GenerateInput `json:"input,omitempty"`
	Checked []string               `json:"checked,omitempty"`
}

// saveCmd creates the save command.
func saveCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "save",
		Usage: "Save a generated list (reads JSON from stdin)",
		Action: func(c *cli.Context) error {
			if !stdinHasData(c.App.Reader) {
				return outputError(errors.NewInvalidRequest("list must be piped via stdin"))
			}
			text, err := readStdin(c.App.Reader, maxStdinBytes)
			if err != nil {
				return outputError(errors.NewInvalidRequest(err.Error()))
			}
			if text == "" {
				return outputError(errors.NewInvalidRequest("list is required"))
			}

			var in saveInput
			if gjson.Get(text, "list").IsObject() {
				err = json.Unmarshal([]byte(text), &in)
			} else {
				err = json.Unmarshal([]byte(text), &in.List)
			}
			if err != nil {
				return outputError(errors.NewInvalidRequest(fmt.Sprintf("invalid list JSON: %v", err)))
			}

			out, err := ops.SaveList(e.db, ops.SaveListInput{List: in.List, Input: in.Input, Checked: in.Checked})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, out)
		},
	}
}

// showCmd creates the show command.
func showCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show a saved list with its packed items",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "hide-packed", Usage: "Leave out packed items"},
		},
		Action: func(c *cli.Context) error {
			out, err := ops.FetchList(e.db, ops.FetchListInput{
				ID:         c.Args().First(),
				HidePacked: c.Bool("hide-packed"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, out)
		},
	}
}

// listsCmd creates the lists command.
func listsCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "lists",
		Usage: "List saved lists, most recently updated first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"l"}, Value: 20, Usage: "Maximum items to return"},
			&cli.IntFlag{Name: "offset", Aliases: []string{"o"}, Value: 0, Usage: "Items to skip"},
		},
		Action: func(c *cli.Context) error {
			out, err := ops.ListSaved(e.db, ops.ListSavedInput{
				Limit:  c.Int("limit"),
				Offset: c.Int("offset"),
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, out)
		},
	}
}

// checkCmd creates the check command, or uncheck when checked is false.
func checkCmd(e *env, checked bool) *cli.Command {
	name, usage := "check", "Mark an item packed"
	if !checked {
		name, usage = "uncheck", "Mark an item not packed"
	}
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<id> <item>",
		Action: func(c *cli.Context) error {
			out, err := ops.SetChecked(e.db, ops.SetCheckedInput{
				ListID:  c.Args().Get(0),
				ItemID:  c.Args().Get(1),
				Checked: checked,
			})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, out)
		},
	}
}

// deleteCmd creates the delete command.
func deleteCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Usage:     "Permanently delete a saved list",
		ArgsUsage: "<id>",
		Action: func(c *cli.Context) error {
			out, err := ops.DeleteList(e.db, ops.DeleteListInput{ID: c.Args().First()})
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, out)
		},
	}
}

// exportCmd creates the export command.
func exportCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:      "export",
		Usage:     "Export a saved list as markdown, HTML or PDF",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format", Aliases: []string{"f"}, Value: "md", Usage: "md|html|pdf"},
			&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "Output file (default: stdout for md/html, ~/.satchel/exports for pdf)"},
		},
		Action: func(c *cli.Context) error {
			format, err := ops.ParseFormat(c.String("format"))
			if err != nil {
				return outputError(err)
			}

			out, err := ops.Export(e.db, e.cfg, ops.ExportInput{ID: c.Args().First(), Format: format})
			if err != nil {
				return outputError(err)
			}

			path := c.String("out")
			if path == "" && format != ops.FormatPDF {
				_, err := c.App.Writer.Write(out.Content)
				return err
			}

			allowedDir := ""
			if path == "" {
				allowedDir = ops.DefaultExportsDir(e.baseDir)
			}
			written, err := ops.WriteExport(out, path, allowedDir, time.Now())
			if err != nil {
				return outputError(err)
			}
			return outputJSON(c.App.Writer, written)
		},
	}
}

// serveCmd creates the serve command.
func serveCmd(e *env) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API and list pages",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "bind", Usage: "Address to bind (default from config)"},
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "Port to listen on (default from config)"},
		},
		Action: func(c *cli.Context) error {
			cfg := *e.cfg
			if c.IsSet("bind") {
				cfg.Bind = c.String("bind")
			}
			if c.IsSet("port") {
				cfg.Port = c.Int("port")
			}

			srv := web.NewServer(web.Deps{
				DB:      e.db,
				Config:  &cfg,
				Places:  e.places,
				Weather: e.weather,
				Logger:  e.log,
				Version: Version,
			})
			return web.Run(srv, e.log)
		},
	}
}

// Helper functions

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputError formats error for CLI.
func outputError(err error) error {
	e := errors.As(err)
	if fields := errors.Fields(err); len(fields) > 0 {
		return cli.Exit(fmt.Sprintf("[%s] %s (%s)", e.Code, e.Message, formatFields(fields)), 1)
	}
	return cli.Exit(fmt.Sprintf("[%s] %s", e.Code, e.Message), 1)
}

// formatFields renders field errors as "field: msg; field: msg".
func formatFields(fields errors.FieldErrors) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+strings.Join(fields[k], ", "))
	}
	return strings.Join(parts, "; ")
}

// stdinHasData returns true if r has piped data. Readers that are not files
// (tests) always count as piped.
func stdinHasData(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return r != nil
	}
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) == 0
}

// readStdin reads at most limit bytes from r.
func readStdin(r io.Reader, limit int64) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return "", err
	}
	if int64(len(data)) > limit {
		return "", fmt.Errorf("input exceeds %d bytes", limit)
	}
	return strings.TrimSpace(string(data)), nil
}

// Package export renders a saved packing list as a printable document.
package export

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/hpungsan/satchel/internal/packing"
)

// Document is the list state being printed.
type Document struct {
	List    packing.PackingList
	Checked map[string]bool

	// URL links back to the list; when set the PDF carries a QR code for it.
	URL string
}

// Progress returns the packed and total item counts.
// Checked ids that are not in the list are ignored.
func (d Document) Progress() (completed, total int) {
	for _, it := range d.List.Items {
		if d.Checked[it.ID] {
			completed++
		}
	}
	return completed, len(d.List.Items)
}

// Header is "<destination> - <days> days".
func (d Document) Header() string {
	return fmt.Sprintf("%s - %d days", d.List.Summary.Destination, d.List.Summary.Days)
}

// ProgressLine is "Progress: c/t items packed".
func (d Document) ProgressLine() string {
	c, t := d.Progress()
	return fmt.Sprintf("Progress: %d/%d items packed", c, t)
}

// ItemText is the printed label with " × qty" for quantities above one.
func ItemText(it packing.ListItem) string {
	if it.Qty > 1 {
		return fmt.Sprintf("%s × %d", it.Label, it.Qty)
	}
	return it.Label
}

// SectionTitle is the category name with its first letter upper-cased.
func SectionTitle(c packing.Category) string {
	s := string(c)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// Section is one non-empty category of a document.
type Section struct {
	Category packing.Category
	Items    []packing.ListItem
}

// Sections returns the non-empty categories in display order.
func (d Document) Sections() []Section {
	var out []Section
	for _, c := range packing.Categories() {
		items := d.List.ByCategory(c)
		if len(items) == 0 {
			continue
		}
		out = append(out, Section{Category: c, Items: items})
	}
	return out
}

// Markdown renders the document as a markdown checklist. Packed items are struck through.
func Markdown(d Document) string {
	var b strings.Builder
	b.WriteString("# Packing List\n\n")
	b.WriteString(escapeMarkdown(d.Header()))
	b.WriteString("\n\n")
	b.WriteString(d.ProgressLine())
	b.WriteString("\n")

	for _, s := range d.Sections() {
		fmt.Fprintf(&b, "\n## %s\n\n", SectionTitle(s.Category))
		for _, it := range s.Items {
			line := "☐ " + escapeMarkdown(ItemText(it))
			if d.Checked[it.ID] {
				line = "~~" + line + "~~"
			}
			fmt.Fprintf(&b, "- %s\n", line)
		}
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "~", `\~`, "`", "\\`",
	"[", `\[`, "]", `\]`, "<", `\<`, "#", `\#`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

var md = goldmark.New(goldmark.WithExtensions(extension.Strikethrough))

// HTML renders the markdown checklist as a standalone HTML page.
func HTML(d Document) ([]byte, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(d)), &body); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "<title>Packing List - %s</title>\n", html.EscapeString(d.List.Summary.Destination))
	buf.WriteString(printStyle)
	buf.WriteString("</head>\n<body>\n")
	buf.Write(body.Bytes())
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}

const printStyle = `<style>
body { font-family: Arial, sans-serif; margin: 20px; }
ul { list-style: none; padding-left: 0; }
li { margin: 5px 0; }
del { color: #666; }
</style>
`

package ops

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hpungsan/satchel/internal/config"
	"github.com/hpungsan/satchel/internal/errors"
)

func TestParseFormat(t *testing.T) {
	tests := map[string]Format{"md": FormatMarkdown, "Markdown": FormatMarkdown, " HTML ": FormatHTML, "pdf": FormatPDF}
	for in, want := range tests {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseFormat("docx")
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest))
}

func TestExport_Markdown(t *testing.T) {
	database := openTestDB(t)
	list, _ := generatedList(t, "Bali, Indonesia")
	saved, err := SaveList(database, SaveListInput{List: list, Checked: []string{"passport"}})
	require.NoError(t, err)

	out, err := Export(database, config.DefaultConfig(), ExportInput{ID: saved.ID})
	require.NoError(t, err)

	assert.Equal(t, FormatMarkdown, out.Format)
	assert.Equal(t, "bali-indonesia-packing-list.md", out.Filename)
	assert.Equal(t, "text/markdown; charset=utf-8", out.ContentType)

	md := string(out.Content)
	assert.Contains(t, md, "Bali, Indonesia - 3 days")
	assert.Contains(t, md, fmt.Sprintf("Progress: 1/%d items packed", len(list.Items)))
	assert.Contains(t, md, "- ~~☐ Passport/ID~~")
	assert.Contains(t, md, "- ☐ T-shirts × 2")
}

func TestExport_PDFWithLink(t *testing.T) {
	database := openTestDB(t)
	list, _ := generatedList(t, "Oslo")
	saved, err := SaveList(database, SaveListInput{List: list})
	require.NoError(t, err)

	cfg := config.DefaultConfig()
	cfg.PublicBaseURL = "https://satchel.example/"

	out, err := Export(database, cfg, ExportInput{ID: saved.ID, Format: FormatPDF})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out.Content, []byte("%PDF-")))
	assert.Equal(t, "application/pdf", out.ContentType)
}

func TestExport_NotFound(t *testing.T) {
	database := openTestDB(t)

	_, err := Export(database, nil, ExportInput{ID: "01NOTREAL", Format: FormatHTML})
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}

func TestListURL(t *testing.T) {
	assert.Equal(t, "https://x.example/lists/01A", ListURL("https://x.example/", "01A"))
	assert.Equal(t, "http://localhost:8484/lists/01A", ListURL("http://localhost:8484", "01A"))
}

func TestWriteExport_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	out := &ExportOutput{Format: FormatMarkdown, Filename: "oslo-packing-list.md", Content: []byte("# hi\n")}

	path := filepath.Join(dir, "mine.md")
	res, err := WriteExport(out, path, "", time.Now())
	require.NoError(t, err)
	assert.Equal(t, path, res.Path)
	assert.Equal(t, 5, res.Bytes)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# hi\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file should be renamed away")
}

func TestWriteExport_DefaultPathInAllowedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	out := &ExportOutput{Format: FormatPDF, Filename: "oslo-packing-list.pdf", Content: []byte("%PDF-1.3")}
	now := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	res, err := WriteExport(out, "", dir, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "oslo-packing-list-2026-03-01T093000.pdf"), res.Path)
	_, err = os.Stat(res.Path)
	assert.NoError(t, err)
}

func TestWriteExport_Rejections(t *testing.T) {
	dir := t.TempDir()
	out := &ExportOutput{Format: FormatHTML, Filename: "x.html", Content: []byte("<p>x</p>")}

	_, err := WriteExport(out, "", "", time.Now())
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest), "no path and no dir")

	_, err = WriteExport(out, filepath.Join(dir, "x.md"), "", time.Now())
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest), "wrong extension")

	_, err = WriteExport(out, filepath.Join(t.TempDir(), "x.html"), dir, time.Now())
	assert.True(t, errors.Is(err, errors.ErrInvalidRequest), "outside allowed dir")
}

package ops

import (
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/hpungsan/satchel/internal/config"
	"github.com/hpungsan/satchel/internal/db"
	"github.com/hpungsan/satchel/internal/errors"
	"github.com/hpungsan/satchel/internal/export"
	"github.com/hpungsan/satchel/internal/packing"
)

// Format is an export document format.
type Format string

const (
	FormatMarkdown Format = "md"
	FormatHTML     Format = "html"
	FormatPDF      Format = "pdf"
)

// ParseFormat accepts md, markdown, html or pdf (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "md", "markdown":
		return FormatMarkdown, nil
	case "html":
		return FormatHTML, nil
	case "pdf":
		return FormatPDF, nil
	}
	return "", errors.NewInvalidRequest("format must be one of: md, html, pdf")
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatMarkdown:
		return "text/markdown; charset=utf-8"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	}
	return "application/octet-stream"
}

// ExportInput contains parameters for the Export operation.
type ExportInput struct {
	ID     string // required
	Format Format // default: md
}

// ExportOutput contains a rendered document.
type ExportOutput struct {
	ID          string `json:"id"`
	Format      Format `json:"format"`
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	Content     []byte `json:"-"`
}

// Export renders a saved list with its check-state. When cfg has a public
// base URL, the document links back to the list page.
func Export(database *sql.DB, cfg *config.Config, input ExportInput) (*ExportOutput, error) {
	id, err := requireID("id", input.ID)
	if err != nil {
		return nil, err
	}
	format := input.Format
	if format == "" {
		format = FormatMarkdown
	}

	l, err := db.GetByID(database, id)
	if err != nil {
		return nil, err
	}
	checked, err := db.CheckedItems(database, id)
	if err != nil {
		return nil, err
	}

	doc := export.Document{List: l.List, Checked: checked}
	if cfg != nil && cfg.PublicBaseURL != "" {
		doc.URL = ListURL(cfg.PublicBaseURL, id)
	}

	var content []byte
	switch format {
	case FormatMarkdown:
		content = []byte(export.Markdown(doc))
	case FormatHTML:
		content, err = export.HTML(doc)
	case FormatPDF:
		content, err = export.PDF(doc)
	default:
		return nil, errors.NewInvalidRequest("format must be one of: md, html, pdf")
	}
	if err != nil {
		return nil, errors.NewInternal(err)
	}

	return &ExportOutput{
		ID:          id,
		Format:      format,
		Filename:    exportFilename(l.DestinationNorm, format),
		ContentType: format.ContentType(),
		Content:     content,
	}, nil
}

// ListURL is the public page of a saved list.
func ListURL(baseURL, id string) string {
	return strings.TrimRight(baseURL, "/") + "/lists/" + id
}

// exportFilename is "<destination>-packing-list.<ext>" with the destination made filename-safe.
func exportFilename(destinationNorm string, format Format) string {
	name := SanitizeForFilename(packing.NormalizeDestination(destinationNorm))
	name = strings.NewReplacer(" ", "-", ",", "").Replace(name)
	return fmt.Sprintf("%s-packing-list.%s", name, format)
}

// WriteExportOutput contains the result of WriteExport.
type WriteExportOutput struct {
	Path  string `json:"path"`
	Bytes int    `json:"bytes"`
}

// WriteExport writes a rendered document to path. An empty path means a
// timestamped file in allowedDir. When allowedDir is set the path must be
// directly inside it. The file is written to a temp name and renamed into
// place, so an existing file survives a failed write.
func WriteExport(out *ExportOutput, path, allowedDir string, now time.Time) (*WriteExportOutput, error) {
	if path == "" {
		if allowedDir == "" {
			return nil, errors.NewInvalidRequest("path is required")
		}
		base := strings.TrimSuffix(out.Filename, "."+string(out.Format))
		path = filepath.Join(allowedDir, fmt.Sprintf("%s-%s.%s", base, now.Format("2006-01-02T150405"), out.Format))
	}

	if allowedDir != "" {
		if err := os.MkdirAll(allowedDir, 0700); err != nil {
			return nil, errors.NewInternal(fmt.Errorf("failed to create export directory: %w", err))
		}
	}

	if err := ValidateExportPath(path, out.Format, allowedDir); err != nil {
		return nil, err
	}

	randBytes := make([]byte, 8)
	if _, err := rand.Read(randBytes); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to generate temp file name: %w", err))
	}
	tempPath := path + "." + hex.EncodeToString(randBytes) + ".tmp"
	file, err := openFileNoFollow(tempPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to create export file: %w", err))
	}

	success := false
	defer func() {
		if file != nil {
			file.Close()
		}
		if !success {
			os.Remove(tempPath)
		}
	}()

	if _, err := file.Write(out.Content); err != nil {
		return nil, errors.NewInternal(err)
	}
	if err := file.Sync(); err != nil {
		return nil, errors.NewInternal(err)
	}

	// Close before rename (required on Windows; fine elsewhere).
	if err := file.Close(); err != nil {
		return nil, errors.NewInternal(fmt.Errorf("failed to close export file: %w", err))
	}
	file = nil

	// os.Rename would follow a symlink placed at the destination meanwhile
	if info, err := os.Lstat(path); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return nil, errors.NewInvalidRequest("path must not be a symlink")
	}

	// On Windows os.Rename fails if the destination exists; the existing file is kept.
	if err := os.Rename(tempPath, path); err != nil {
		if runtime.GOOS == "windows" {
			if _, statErr := os.Stat(path); statErr == nil {
				return nil, errors.NewInvalidRequest("export destination already exists; overwriting is not supported on Windows (choose a new path or delete the existing file)")
			}
		}
		return nil, errors.NewInternal(fmt.Errorf("failed to finalize export: %w", err))
	}

	success = true
	return &WriteExportOutput{Path: path, Bytes: len(out.Content)}, nil
}

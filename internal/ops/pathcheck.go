package ops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hpungsan/satchel/internal/errors"
)

// ValidateExportPath checks a destination for an exported document.
// It checks:
// 1. Path traversal (.. sequences)
// 2. Extension matches the format (.md, .html, .pdf)
// 3. When allowedDir is set, the file must be DIRECTLY in it (no subdirectories)
// 4. Symlink safety (the file must not be a symlink; neither may its parent when restricted)
//
// The "no subdirectories" rule closes the race where an intermediate directory
// is swapped for a symlink between validation and open.
func ValidateExportPath(path string, format Format, allowedDir string) error {
	if path == "" {
		return errors.NewInvalidRequest("path is required")
	}

	if containsTraversal(path) {
		return errors.NewInvalidRequest("path must not contain directory traversal (..)")
	}

	cleaned := filepath.Clean(path)
	if want := "." + string(format); filepath.Ext(cleaned) != want {
		return errors.NewInvalidRequest(fmt.Sprintf("path must have %s extension", want))
	}

	absPath, err := filepath.Abs(cleaned)
	if err != nil {
		return errors.NewInvalidRequest(fmt.Sprintf("invalid path: %v", err))
	}

	if allowedDir != "" {
		allowed, err := resolveDir(allowedDir)
		if err != nil {
			return err
		}
		parentDir := filepath.Dir(absPath)
		if filepath.Clean(parentDir) != allowed {
			return errors.NewInvalidRequest(
				fmt.Sprintf("file must be directly in %s (no subdirectories)", allowed))
		}
		if info, err := os.Lstat(parentDir); err == nil && info.Mode()&os.ModeSymlink != 0 {
			return errors.NewInvalidRequest("parent directory must not be a symlink")
		}
	}

	// O_NOFOLLOW would catch this at open time too; rejecting here gives a clearer error.
	if info, err := os.Lstat(absPath); err == nil && info.Mode()&os.ModeSymlink != 0 {
		return errors.NewInvalidRequest("path must not be a symlink")
	}

	return nil
}

// resolveDir returns dir as an absolute path, following it if it is itself a symlink.
func resolveDir(dir string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(dir))
	if err != nil {
		return "", errors.NewInvalidRequest(fmt.Sprintf("invalid export directory: %v", err))
	}
	if info, err := os.Lstat(abs); err == nil && info.Mode()&os.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(abs)
		if err != nil {
			return "", errors.NewInvalidRequest(fmt.Sprintf("cannot resolve export directory: %v", err))
		}
		abs = resolved
	}
	return abs, nil
}

// DefaultExportsDir returns the default exports directory (<baseDir>/exports).
func DefaultExportsDir(baseDir string) string {
	return filepath.Join(baseDir, "exports")
}

// containsTraversal checks if path contains ".." directory traversal.
func containsTraversal(path string) bool {
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if part == ".." {
			return true
		}
	}
	// Also check for forward slashes on all platforms (e.g., user input)
	if filepath.Separator != '/' {
		for _, part := range strings.Split(path, "/") {
			if part == ".." {
				return true
			}
		}
	}
	return false
}

// SanitizeForFilename sanitizes a string for safe use in a filename.
// Removes/replaces characters that could be used for path traversal or injection.
func SanitizeForFilename(s string) string {
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, "..", "-")

	// Remove null bytes and other control characters
	var result strings.Builder
	for _, r := range s {
		if r >= 32 && r != 127 {
			result.WriteRune(r)
		}
	}
	s = result.String()

	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	s = strings.Trim(s, "-")

	if s == "" {
		s = "unnamed"
	}
	return s
}

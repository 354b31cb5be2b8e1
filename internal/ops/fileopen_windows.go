//go:build windows

package ops

import "os"

// openFileNoFollow has no O_NOFOLLOW on Windows; WriteExport relies on
// ValidateExportPath having rejected symlinks.
func openFileNoFollow(path string, flag int, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(path, flag, perm)
}

//go:build !windows

package ops

import (
	stderrors "errors"
	"os"
	"syscall"

	"github.com/hpungsan/satchel/internal/errors"
)

// openFileNoFollow refuses to open path when its last component is a symlink.
func openFileNoFollow(path string, flag int, perm os.FileMode) (*os.File, error) {
	fd, err := syscall.Open(path, flag|syscall.O_NOFOLLOW|syscall.O_CLOEXEC, uint32(perm))
	if stderrors.Is(err, syscall.ELOOP) {
		return nil, errors.NewInvalidRequest("export path must not be a symlink")
	}
	if err != nil {
		return nil, err
	}
	return os.NewFile(uintptr(fd), path), nil
}

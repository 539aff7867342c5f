package filesystem

import (
	"fmt"
	"io/fs"

	"github.com/arthur-debert/attachlink/pkg/logging"
	"github.com/arthur-debert/attachlink/pkg/types"
)

// MoveFile moves src to dst. When the rename fails (for example across
// devices) it falls back to copying and removing the source.
func MoveFile(fsys types.FS, src, dst string) error {
	logger := logging.GetLogger("filesystem.move")

	renameErr := fsys.Rename(src, dst)
	if renameErr == nil {
		return nil
	}

	logger.Debug().
		Err(renameErr).
		Str("src", src).
		Str("dst", dst).
		Msg("Rename failed, falling back to copy and delete")

	if _, err := fsys.Stat(dst); err == nil {
		return fmt.Errorf("destination already exists: %s: %w", dst, renameErr)
	}

	if err := copyFile(fsys, src, dst); err != nil {
		return fmt.Errorf("rename failed (%v) and copy failed: %w", renameErr, err)
	}

	if err := fsys.Remove(src); err != nil {
		// The copy is in place; the stale source only wastes space.
		logger.Warn().Err(err).Str("src", src).Msg("Failed to remove source after copy")
	}
	return nil
}

func copyFile(fsys types.FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &fs.PathError{Op: "copy", Path: src, Err: fs.ErrInvalid}
	}

	data, err := fsys.ReadFile(src)
	if err != nil {
		return err
	}
	return fsys.WriteFile(dst, data, info.Mode().Perm())
}

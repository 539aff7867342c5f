// Package uniquename picks a filename that does not collide with anything
// already present in a directory.
package uniquename

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/attachlink/pkg/errors"
	"github.com/arthur-debert/attachlink/pkg/logging"
	"github.com/arthur-debert/attachlink/pkg/sanitize"
	"github.com/arthur-debert/attachlink/pkg/types"
)

// Uniquify returns filename unchanged when dir/filename does not exist.
// Otherwise it returns the first "{base} ({n}).{ext}" with n = 1, 2, ...
// that is free, checking the filesystem again on every attempt. Names
// without an extension become "{base} ({n})".
func Uniquify(fsys types.FS, dir, filename string) (string, error) {
	logger := logging.GetLogger("uniquename")

	free, err := isFree(fsys, filepath.Join(dir, filename))
	if err != nil {
		return "", err
	}
	if free {
		return filename, nil
	}

	base, ext := sanitize.SplitExtension(filename)
	for n := 1; ; n++ {
		candidate := Candidate(base, ext, n)
		free, err := isFree(fsys, filepath.Join(dir, candidate))
		if err != nil {
			return "", err
		}
		if free {
			logger.Debug().
				Str("dir", dir).
				Str("requested", filename).
				Str("chosen", candidate).
				Msg("Filename taken, using numbered variant")
			return candidate, nil
		}
	}
}

// Candidate formats the n-th numbered variant of base.ext
func Candidate(base, ext string, n int) string {
	if ext == "" {
		return fmt.Sprintf("%s (%d)", base, n)
	}
	return fmt.Sprintf("%s (%d).%s", base, n, ext)
}

func isFree(fsys types.FS, path string) (bool, error) {
	_, err := fsys.Stat(path)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to check %s", path)
}

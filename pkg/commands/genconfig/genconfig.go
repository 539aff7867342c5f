package genconfig

import (
	"path/filepath"

	"github.com/arthur-debert/attachlink/pkg/config"
	"github.com/arthur-debert/attachlink/pkg/errors"
	"github.com/arthur-debert/attachlink/pkg/filesystem"
	"github.com/arthur-debert/attachlink/pkg/logging"
	"github.com/arthur-debert/attachlink/pkg/types"
)

// Options holds options for the genconfig command
type Options struct {
	// Write writes the file to Target instead of only returning it
	Write  bool
	Target string

	// Effective renders the loaded configuration instead of the
	// commented defaults
	Effective *config.Config

	FileSystem types.FS
}

// GenConfig outputs or writes a configuration file
func GenConfig(opts Options) (*types.GenConfigResult, error) {
	logger := logging.GetLogger("commands.genconfig")

	content := config.GenerateConfigContent()
	if opts.Effective != nil {
		rendered, err := config.RenderEffective(opts.Effective)
		if err != nil {
			return nil, err
		}
		content = rendered
	}

	result := &types.GenConfigResult{
		ConfigContent: content,
		FilesWritten:  []string{},
	}

	if !opts.Write {
		logger.Debug().Msg("Outputting config to stdout")
		return result, nil
	}

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}
	if opts.Target == "" {
		return nil, errors.New(errors.ErrInvalidInput, "no target file given")
	}

	if _, err := fs.Stat(opts.Target); err == nil {
		logger.Warn().Str("path", opts.Target).Msg("Config file already exists, skipping")
		return result, nil
	}
	if err := fs.MkdirAll(filepath.Dir(opts.Target), 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory for %s", opts.Target)
	}
	if err := fs.WriteFile(opts.Target, []byte(content), 0644); err != nil {
		return result, errors.Wrapf(err, errors.ErrFileWrite, "failed to write config to %s", opts.Target)
	}

	logger.Info().Str("path", opts.Target).Msg("Written config file")
	result.FilesWritten = append(result.FilesWritten, opts.Target)
	return result, nil
}

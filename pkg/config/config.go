package config

import (
	"path/filepath"
	"time"

	"github.com/arthur-debert/attachlink/pkg/errors"
	"github.com/arthur-debert/attachlink/pkg/types"
)

// Config holds every user setting
type Config struct {
	SyncTitles    bool         `koanf:"sync_filename_and_title" toml:"sync_filename_and_title"`
	BaseDir       string       `koanf:"base_attachment_path" toml:"base_attachment_path"`
	PathSeparator string       `koanf:"path_separator" toml:"path_separator"`
	RenameMemory  RenameMemory `koanf:"rename_memory" toml:"rename_memory"`
	Library       Library      `koanf:"library" toml:"library"`

	// Source is the config file that was loaded, if any
	Source string `koanf:"-" toml:"-"`
}

// RenameMemory bounds the table of recent renames
type RenameMemory struct {
	Capacity int           `koanf:"capacity" toml:"capacity"`
	TTL      time.Duration `koanf:"ttl" toml:"ttl"`
}

// Library locates the library database and storage
type Library struct {
	Path string `koanf:"path" toml:"path"`
}

var _ types.Preferences = (*Config)(nil)

// SyncFilenameAndTitle implements types.Preferences
func (c *Config) SyncFilenameAndTitle() bool {
	return c.SyncTitles
}

// BaseAttachmentPath implements types.Preferences
func (c *Config) BaseAttachmentPath() string {
	return c.BaseDir
}

// Separator returns the configured path separator, defaulting to the OS one
func (c *Config) Separator() string {
	if c.PathSeparator == "" {
		return string(filepath.Separator)
	}
	return c.PathSeparator
}

// Validate checks settings that would otherwise fail later
func (c *Config) Validate() error {
	switch c.PathSeparator {
	case "", "/", `\`:
	default:
		return errors.Newf(errors.ErrConfigValid, "path_separator must be \"/\" or \"\\\", got %q", c.PathSeparator).
			WithDetail("key", "path_separator")
	}
	if c.RenameMemory.Capacity <= 0 {
		return errors.Newf(errors.ErrConfigValid, "rename_memory.capacity must be positive, got %d", c.RenameMemory.Capacity).
			WithDetail("key", "rename_memory.capacity")
	}
	if c.RenameMemory.TTL <= 0 {
		return errors.Newf(errors.ErrConfigValid, "rename_memory.ttl must be positive, got %s", c.RenameMemory.TTL).
			WithDetail("key", "rename_memory.ttl")
	}
	return nil
}

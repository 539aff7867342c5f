package config

import (
	"strings"

	"github.com/arthur-debert/attachlink/pkg/errors"
	"github.com/pelletier/go-toml/v2"
)

// GenerateConfigContent returns the default configuration with every
// value commented out, ready to be written as a starting config file
func GenerateConfigContent() string {
	return commentOutConfigValues(GetDefaultsContent())
}

// commentOutConfigValues takes the TOML content and comments out all
// non-comment, non-blank lines that contain configuration values
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	var result []string

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			result = append(result, line)
			continue
		}

		// Section headers stay active
		if strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") {
			result = append(result, line)
			continue
		}

		result = append(result, "# "+line)
	}

	return strings.Join(result, "\n")
}

type effectiveConfig struct {
	SyncTitles    bool   `toml:"sync_filename_and_title"`
	BaseDir       string `toml:"base_attachment_path"`
	PathSeparator string `toml:"path_separator"`
	RenameMemory  struct {
		Capacity int    `toml:"capacity"`
		TTL      string `toml:"ttl"`
	} `toml:"rename_memory"`
	Library Library `toml:"library"`
}

// RenderEffective renders cfg as TOML, as it would have to be written to
// reproduce the loaded settings
func RenderEffective(cfg *Config) (string, error) {
	out := effectiveConfig{
		SyncTitles:    cfg.SyncTitles,
		BaseDir:       cfg.BaseDir,
		PathSeparator: cfg.PathSeparator,
		Library:       cfg.Library,
	}
	out.RenameMemory.Capacity = cfg.RenameMemory.Capacity
	out.RenameMemory.TTL = cfg.RenameMemory.TTL.String()

	data, err := toml.Marshal(out)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return string(data), nil
}

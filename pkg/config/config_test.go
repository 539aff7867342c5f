// pkg/config/config_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: temp config files, environment
// PURPOSE: Test layered configuration loading and validation

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/attachlink/pkg/errors"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the default config location at an empty temp dir
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ATTACHLINK_CONFIG_DIR", dir)
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(Options{})
	require.NoError(t, err)

	assert.True(t, cfg.SyncFilenameAndTitle())
	assert.Empty(t, cfg.BaseAttachmentPath())
	assert.Equal(t, string(filepath.Separator), cfg.Separator())
	assert.Equal(t, 256, cfg.RenameMemory.Capacity)
	assert.Equal(t, 2*time.Minute, cfg.RenameMemory.TTL)
	assert.Empty(t, cfg.Library.Path)
	assert.Empty(t, cfg.Source)
}

func TestLoad_DefaultFileLocation(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, `base_attachment_path = "/lib"`)

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "/lib", cfg.BaseDir)
	assert.Equal(t, path, cfg.Source)
}

func TestLoad_ExplicitFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), `
sync_filename_and_title = false
path_separator = "\\"

[rename_memory]
capacity = 10
ttl = "30s"
`)

	cfg, err := Load(Options{ConfigFile: path})
	require.NoError(t, err)
	assert.False(t, cfg.SyncFilenameAndTitle())
	assert.Equal(t, `\`, cfg.Separator())
	assert.Equal(t, 10, cfg.RenameMemory.Capacity)
	assert.Equal(t, 30*time.Second, cfg.RenameMemory.TTL)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	isolate(t)
	_, err := Load(Options{ConfigFile: "/does/not/exist.toml"})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	assert.True(t, errors.IsConfigError(err))
}

func TestLoad_ParseError(t *testing.T) {
	isolate(t)
	path := writeConfig(t, t.TempDir(), `base_attachment_path = `)
	_, err := Load(Options{ConfigFile: path})
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestLoad_EnvironmentBeatsFile(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `base_attachment_path = "/from-file"`)
	t.Setenv("ATTACHLINK_BASE_ATTACHMENT_PATH", "/from-env")
	t.Setenv("ATTACHLINK_SYNC_FILENAME_AND_TITLE", "false")
	t.Setenv("ATTACHLINK_RENAME_MEMORY__TTL", "5m")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, "/from-env", cfg.BaseDir)
	assert.False(t, cfg.SyncTitles)
	assert.Equal(t, 5*time.Minute, cfg.RenameMemory.TTL)
}

func TestLoad_OverridesWin(t *testing.T) {
	isolate(t)
	t.Setenv("ATTACHLINK_BASE_ATTACHMENT_PATH", "/from-env")

	cfg, err := Load(Options{Overrides: map[string]interface{}{"base_attachment_path": "/from-flag"}})
	require.NoError(t, err)
	assert.Equal(t, "/from-flag", cfg.BaseDir)
}

func TestLoad_ExpandsHome(t *testing.T) {
	isolate(t)
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("ATTACHLINK_BASE_ATTACHMENT_PATH", "~/Papers")

	cfg, err := Load(Options{})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "Papers"), cfg.BaseDir)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{RenameMemory: RenameMemory{Capacity: 1, TTL: time.Second}}
	}
	assert.NoError(t, valid().Validate())

	c := valid()
	c.PathSeparator = ":"
	assert.True(t, errors.IsErrorCode(c.Validate(), errors.ErrConfigValid))

	c = valid()
	c.RenameMemory.Capacity = 0
	assert.True(t, errors.IsErrorCode(c.Validate(), errors.ErrConfigValid))

	c = valid()
	c.RenameMemory.TTL = 0
	assert.True(t, errors.IsErrorCode(c.Validate(), errors.ErrConfigValid))
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "base_attachment_path", envKey("ATTACHLINK_BASE_ATTACHMENT_PATH"))
	assert.Equal(t, "rename_memory.capacity", envKey("ATTACHLINK_RENAME_MEMORY__CAPACITY"))
	assert.Equal(t, "", envKey("ATTACHLINK_DATA_DIR"))
}

func TestGenerateConfigContent(t *testing.T) {
	content := GenerateConfigContent()

	assert.Contains(t, content, "# sync_filename_and_title = true")
	assert.Contains(t, content, "[rename_memory]")
	assert.NotContains(t, content, "\nsync_filename_and_title")

	// Commented out, the file parses to nothing but sections
	k := koanf.New(".")
	require.NoError(t, k.Load(&rawBytesProvider{bytes: []byte(content)}, toml.Parser()))
	assert.False(t, k.Exists("sync_filename_and_title"))
}

func TestRenderEffective(t *testing.T) {
	cfg := &Config{
		SyncTitles:   true,
		BaseDir:      "/lib",
		RenameMemory: RenameMemory{Capacity: 8, TTL: 90 * time.Second},
	}
	out, err := RenderEffective(cfg)
	require.NoError(t, err)

	k := koanf.New(".")
	require.NoError(t, k.Load(&rawBytesProvider{bytes: []byte(out)}, toml.Parser()))
	assert.Equal(t, "/lib", k.String("base_attachment_path"))
	assert.Equal(t, "1m30s", k.String("rename_memory.ttl"))
	assert.Equal(t, int64(8), k.Int64("rename_memory.capacity"))
	assert.True(t, k.Bool("sync_filename_and_title"))
}

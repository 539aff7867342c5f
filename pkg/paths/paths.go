// Package paths provides centralized path handling for attachlink.
// It follows the XDG Base Directory layout, with environment overrides
// for each directory.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/attachlink/pkg/errors"
)

// Environment variable names
const (
	// EnvDataDir overrides the XDG data directory (library database and storage)
	EnvDataDir = "ATTACHLINK_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory
	EnvConfigDir = "ATTACHLINK_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory (log file)
	EnvStateDir = "ATTACHLINK_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names inside the attachlink directories
const (
	AppDirName       = "attachlink"
	ConfigFileName   = "config.toml"
	DatabaseFileName = "library.sqlite"
	StorageDirName   = "storage"
	LogFileName      = "attachlink.log"
)

// Paths locates attachlink's files
type Paths interface {
	DataDir() string
	ConfigDir() string
	StateDir() string
	ConfigFile() string
	DatabasePath() string
	StorageDir() string
	LogFilePath() string
}

type paths struct {
	dataDir   string
	configDir string
	stateDir  string
}

// New resolves the directory layout. A non-empty dataDir (the library.path
// setting) takes precedence over the environment and XDG defaults.
func New(dataDir string) (Paths, error) {
	p := &paths{
		dataDir:   resolveDir(EnvDataDir, xdg.DataHome),
		configDir: resolveDir(EnvConfigDir, xdg.ConfigHome),
		stateDir:  resolveDir(EnvStateDir, stateHome()),
	}
	if dataDir != "" {
		p.dataDir = ExpandHome(dataDir)
	}

	abs, err := filepath.Abs(p.dataDir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", p.dataDir)
	}
	p.dataDir = abs
	return p, nil
}

func resolveDir(env, xdgHome string) string {
	if dir := os.Getenv(env); dir != "" {
		return ExpandHome(dir)
	}
	return filepath.Join(xdgHome, AppDirName)
}

// stateHome is XDG_STATE_HOME or its default
func stateHome() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return dir
	}
	if xdg.StateHome != "" {
		return xdg.StateHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state")
}

func (p *paths) DataDir() string      { return p.dataDir }
func (p *paths) ConfigDir() string    { return p.configDir }
func (p *paths) StateDir() string     { return p.stateDir }
func (p *paths) ConfigFile() string   { return filepath.Join(p.configDir, ConfigFileName) }
func (p *paths) DatabasePath() string { return filepath.Join(p.dataDir, DatabaseFileName) }
func (p *paths) StorageDir() string   { return filepath.Join(p.dataDir, StorageDirName) }
func (p *paths) LogFilePath() string  { return filepath.Join(p.stateDir, LogFileName) }

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(homeDir, path[2:])
	}
	// ~user is not expanded
	return path
}

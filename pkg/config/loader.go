package config

import (
	"os"
	"strings"

	"github.com/arthur-debert/attachlink/pkg/errors"
	"github.com/arthur-debert/attachlink/pkg/logging"
	"github.com/arthur-debert/attachlink/pkg/paths"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment overrides
const EnvPrefix = "ATTACHLINK_"

// Reserved environment variables that are not settings
var reservedEnv = map[string]bool{
	"data_dir":   true,
	"config_dir": true,
	"state_dir":  true,
}

// Options controls where configuration is loaded from
type Options struct {
	// ConfigFile is an explicit config file; it must exist. When empty the
	// default location is used if present.
	ConfigFile string

	// Overrides are applied last, keyed by dotted setting name
	Overrides map[string]interface{}
}

// Load builds the configuration: embedded defaults, then the config file,
// then ATTACHLINK_* environment variables, then explicit overrides.
func Load(opts Options) (*Config, error) {
	logger := logging.GetLogger("config")
	k := koanf.New(".")

	// 1. Defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Config file
	source, err := configFilePath(opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if source != "" {
		if err := k.Load(file.Provider(source), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", source).
				WithDetail("path", source)
		}
		logger.Debug().Str("path", source).Msg("Config file loaded")
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment")
	}

	// 4. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				expandHomeHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to unmarshal configuration")
	}
	cfg.Source = source

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps ATTACHLINK_RENAME_MEMORY__TTL to rename_memory.ttl. Reserved
// directory variables map to "" and are dropped.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	if reservedEnv[key] {
		return ""
	}
	return strings.ReplaceAll(key, "__", ".")
}

func configFilePath(explicit string) (string, error) {
	if explicit != "" {
		path := paths.ExpandHome(explicit)
		if _, err := os.Stat(path); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not readable", path).
				WithDetail("path", path)
		}
		return path, nil
	}

	p, err := paths.New("")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrConfigLoad, "failed to resolve config directory")
	}
	if _, err := os.Stat(p.ConfigFile()); err != nil {
		return "", nil
	}
	return p.ConfigFile(), nil
}

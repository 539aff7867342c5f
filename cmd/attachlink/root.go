// Package attachlink builds the attachlink command tree
package attachlink

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/arthur-debert/attachlink/internal/version"
	"github.com/arthur-debert/attachlink/pkg/app"
	"github.com/arthur-debert/attachlink/pkg/cobrax/topics"
	"github.com/arthur-debert/attachlink/pkg/config"
	"github.com/arthur-debert/attachlink/pkg/logging"
	"github.com/arthur-debert/attachlink/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

//go:embed topics/*.md
var topicFiles embed.FS

// rootOptions holds the global flags shared by every command
type rootOptions struct {
	verbosity  int
	dryRun     bool
	configFile string
	format     string
	libraryDir string
	sets       []string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "attachlink",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			logging.LogCommand(cmd.CommandPath(), args)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf(MsgNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	flags.StringVarP(&opts.configFile, "config", "c", "", MsgFlagConfig)
	flags.StringVarP(&opts.format, "format", "f", "auto", MsgFlagFormat)
	flags.StringVar(&opts.libraryDir, "library", "", MsgFlagLibrary)
	flags.StringArrayVar(&opts.sets, "set", nil, MsgFlagSet)

	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return ui.FormatNames(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "library", Title: "LIBRARY:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newConvertCmd(opts))
	rootCmd.AddCommand(newRenameCmd(opts))
	rootCmd.AddCommand(newSyncTitlesCmd(opts))
	rootCmd.AddCommand(newAddCmd(opts))
	rootCmd.AddCommand(newListCmd(opts))
	rootCmd.AddCommand(newCreateCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newTopicsCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	source, err := fs.Sub(topicFiles, "topics")
	if err == nil {
		topicOpts := topics.Options{
			Extensions: []string{".md"},
			Renderer:   topics.NewGlamourRenderer(),
		}
		if _, err := topics.Initialize(rootCmd, source, topicOpts); err != nil {
			log.Warn().Err(err).Msg("Help topics unavailable")
		}
	}

	return rootCmd
}

// overrides turns --library and --set flags into config overrides
func (o *rootOptions) overrides() (map[string]interface{}, error) {
	overrides := make(map[string]interface{})
	for _, set := range o.sets {
		key, value, ok := strings.Cut(set, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf(MsgErrSetFormat, set)
		}
		overrides[key] = value
	}
	if o.libraryDir != "" {
		overrides["library.path"] = o.libraryDir
	}
	return overrides, nil
}

func (o *rootOptions) loadConfig() (*config.Config, error) {
	overrides, err := o.overrides()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(config.Options{ConfigFile: o.configFile, Overrides: overrides})
	if err != nil {
		return nil, fmt.Errorf(MsgErrConfig, err)
	}
	return cfg, nil
}

// openApp loads configuration and opens the library. Callers close the app.
func (o *rootOptions) openApp() (*app.App, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	a, err := app.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf(MsgErrOpen, err)
	}
	return a, nil
}

func (o *rootOptions) renderer(cmd *cobra.Command) (ui.Renderer, error) {
	format, err := ui.ParseFormat(o.format)
	if err != nil {
		return nil, err
	}
	return ui.NewRenderer(format, cmd.OutOrStdout())
}

// render writes a command result in the selected format
func (o *rootOptions) render(cmd *cobra.Command, result interface{}) error {
	r, err := o.renderer(cmd)
	if err != nil {
		return err
	}
	return r.RenderResult(result)
}

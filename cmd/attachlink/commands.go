package attachlink

import (
	"context"
	"fmt"
	"os"

	"github.com/arthur-debert/attachlink/internal/version"
	"github.com/arthur-debert/attachlink/pkg/commands/add"
	"github.com/arthur-debert/attachlink/pkg/commands/convert"
	"github.com/arthur-debert/attachlink/pkg/commands/create"
	"github.com/arthur-debert/attachlink/pkg/commands/genconfig"
	"github.com/arthur-debert/attachlink/pkg/commands/list"
	"github.com/arthur-debert/attachlink/pkg/commands/rename"
	"github.com/arthur-debert/attachlink/pkg/commands/synctitles"
	"github.com/arthur-debert/attachlink/pkg/paths"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// itemKeysCompletion completes item keys from the library, showing titles
// as descriptions
func itemKeysCompletion(opts *rootOptions) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		a, err := opts.openApp()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		defer func() { _ = a.Close() }()

		items, err := list.Items(context.Background(), a, list.Options{})
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		taken := make(map[string]bool, len(args))
		for _, arg := range args {
			taken[arg] = true
		}
		var keys []string
		for _, listed := range items {
			if !taken[listed.Item.Key] {
				keys = append(keys, listed.Item.Key+"\t"+listed.Item.Title)
			}
		}
		return keys, cobra.ShellCompDirectiveNoFileComp
	}
}

// collectionKeysCompletion completes collection keys, described by path
func collectionKeysCompletion(opts *rootOptions) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		a, err := opts.openApp()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		defer func() { _ = a.Close() }()

		listed, err := list.Collections(context.Background(), a)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		var keys []string
		for _, c := range listed {
			keys = append(keys, c.Collection.Key+"\t"+c.Path)
		}
		return keys, cobra.ShellCompDirectiveNoFileComp
	}
}

func newConvertCmd(opts *rootOptions) *cobra.Command {
	var collection string

	cmd := &cobra.Command{
		Use:               "convert [item keys...]",
		Short:             MsgConvertShort,
		Long:              MsgConvertLong,
		Example:           MsgConvertExample,
		GroupID:           "core",
		ValidArgsFunction: itemKeysCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			log.Info().
				Strs("items", args).
				Str("collection", collection).
				Bool("dry_run", opts.dryRun).
				Msg("Converting attachments")

			result, err := convert.Convert(cmd.Context(), a, convert.Options{
				ItemKeys:      args,
				CollectionKey: collection,
				DryRun:        opts.dryRun,
			})
			if err != nil {
				return err
			}
			return opts.render(cmd, result)
		},
	}

	cmd.Flags().StringVar(&collection, "collection", "", MsgFlagCollection)
	_ = cmd.RegisterFlagCompletionFunc("collection", collectionKeysCompletion(opts))
	return cmd
}

func newRenameCmd(opts *rootOptions) *cobra.Command {
	var unique, overwrite bool

	cmd := &cobra.Command{
		Use:               "rename <item key> <new name>",
		Short:             MsgRenameShort,
		Long:              MsgRenameLong,
		Example:           MsgRenameExample,
		GroupID:           "core",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: itemKeysCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			result, err := rename.Rename(cmd.Context(), a, rename.Options{
				ItemKey:   args[0],
				NewName:   args[1],
				Unique:    unique,
				Overwrite: overwrite,
			})
			if err != nil {
				return err
			}
			return opts.render(cmd, result)
		},
	}

	cmd.Flags().BoolVar(&unique, "unique", false, MsgFlagUnique)
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, MsgFlagOverwrite)
	cmd.MarkFlagsMutuallyExclusive("unique", "overwrite")
	return cmd
}

func newSyncTitlesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "sync-titles [item keys...]",
		Short:             MsgSyncTitlesShort,
		Long:              MsgSyncTitlesLong,
		GroupID:           "core",
		ValidArgsFunction: itemKeysCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			result, err := synctitles.SyncTitles(cmd.Context(), a, synctitles.Options{ItemKeys: args})
			if err != nil {
				return err
			}
			return opts.render(cmd, result)
		},
	}
}

func newAddCmd(opts *rootOptions) *cobra.Command {
	var addOpts add.Options

	cmd := &cobra.Command{
		Use:     "add <file>",
		Short:   MsgAddShort,
		Long:    MsgAddLong,
		GroupID: "library",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			addOpts.Path = args[0]
			result, err := add.Add(cmd.Context(), a, addOpts)
			if err != nil {
				return err
			}
			return opts.render(cmd, result)
		},
	}

	cmd.Flags().StringVar(&addOpts.ParentKey, "parent", "", MsgFlagParent)
	cmd.Flags().StringVar(&addOpts.CollectionKey, "collection", "", MsgFlagAddColl)
	cmd.Flags().StringVar(&addOpts.Title, "title", "", MsgFlagTitle)
	cmd.MarkFlagsMutuallyExclusive("parent", "collection")
	_ = cmd.RegisterFlagCompletionFunc("parent", itemKeysCompletion(opts))
	_ = cmd.RegisterFlagCompletionFunc("collection", collectionKeysCompletion(opts))
	return cmd
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var (
		listOpts    list.Options
		collections bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "library",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			if collections {
				listed, err := list.Collections(cmd.Context(), a)
				if err != nil {
					return err
				}
				return opts.render(cmd, listed)
			}

			items, err := list.Items(cmd.Context(), a, listOpts)
			if err != nil {
				return err
			}
			return opts.render(cmd, items)
		},
	}

	cmd.Flags().BoolVar(&collections, "collections", false, MsgFlagCollections)
	cmd.Flags().StringVarP(&listOpts.Match, "match", "m", "", MsgFlagMatch)
	cmd.Flags().BoolVarP(&listOpts.AttachmentsOnly, "attachments", "a", false, MsgFlagAttachments)
	return cmd
}

func newCreateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create",
		Short:   MsgCreateShort,
		GroupID: "library",
	}

	var itemCollection string
	itemCmd := &cobra.Command{
		Use:   "item <title>",
		Short: MsgCreateItemShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			item, err := create.NewItem(cmd.Context(), a, args[0], itemCollection)
			if err != nil {
				return err
			}
			return opts.render(cmd, item)
		},
	}
	itemCmd.Flags().StringVar(&itemCollection, "collection", "", MsgFlagAddColl)
	_ = itemCmd.RegisterFlagCompletionFunc("collection", collectionKeysCompletion(opts))

	var parent string
	collectionCmd := &cobra.Command{
		Use:   "collection <name>",
		Short: MsgCreateCollShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer func() { _ = a.Close() }()

			c, err := create.NewCollection(cmd.Context(), a, args[0], parent)
			if err != nil {
				return err
			}
			return opts.render(cmd, c)
		},
	}
	collectionCmd.Flags().StringVar(&parent, "parent", "", MsgFlagParent)
	_ = collectionCmd.RegisterFlagCompletionFunc("parent", collectionKeysCompletion(opts))

	cmd.AddCommand(itemCmd, collectionCmd)
	return cmd
}

func newGenConfigCmd(opts *rootOptions) *cobra.Command {
	var write, effective bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			genOpts := genconfig.Options{Write: write}

			if effective {
				cfg, err := opts.loadConfig()
				if err != nil {
					return err
				}
				genOpts.Effective = cfg
			}

			if write {
				genOpts.Target = opts.configFile
				if genOpts.Target == "" {
					p, err := paths.New("")
					if err != nil {
						return err
					}
					genOpts.Target = p.ConfigFile()
				}
			}

			result, err := genconfig.GenConfig(genOpts)
			if err != nil {
				return err
			}
			if write {
				if len(result.FilesWritten) == 0 {
					fmt.Fprintf(cmd.ErrOrStderr(), MsgConfigExists, genOpts.Target)
					return nil
				}
				fmt.Fprintf(cmd.ErrOrStderr(), MsgConfigWritten, genOpts.Target)
				return nil
			}
			return opts.render(cmd, result)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&effective, "effective", false, MsgFlagEffective)
	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil && helpCmd.Run != nil {
				helpCmd.Run(helpCmd, []string{"topics"})
				return nil
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// ManHeader is the header used for generated man pages
func ManHeader() *doc.GenManHeader {
	return &doc.GenManHeader{
		Title:   "ATTACHLINK",
		Section: "1",
		Source:  "attachlink " + version.Version,
		Manual:  "attachlink manual",
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				return doc.GenMan(cmd.Root(), ManHeader(), cmd.OutOrStdout())
			}
			if err := os.MkdirAll(dir, 0755); err != nil {
				return err
			}
			return doc.GenManTree(cmd.Root(), ManHeader(), dir)
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", MsgFlagManDir)
	return cmd
}

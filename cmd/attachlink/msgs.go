package attachlink

import (
	_ "embed"
	"strings"
)

// Short messages
const (
	MsgRootShort       = "Keep library attachments as linked files named like their titles"
	MsgConvertShort    = "Move attachments into the collection folder tree as linked files"
	MsgRenameShort     = "Rename an attachment's file"
	MsgSyncTitlesShort = "Set attachment titles from their filenames"
	MsgAddShort        = "Import a file as a stored attachment"
	MsgListShort       = "List items or collections"
	MsgCreateShort     = "Create items and collections"
	MsgCreateItemShort = "Create a regular item"
	MsgCreateCollShort = "Create a collection"
	MsgGenConfigShort  = "Print or write a configuration file"
	MsgVersionShort    = "Print version information"
	MsgTopicsShort     = "Display available documentation topics"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"
	MsgDryRunNotice    = "DRY RUN - no changes were made"
	MsgConfigWritten   = "Config written to %s\n"
	MsgConfigExists    = "%s already exists, not overwritten\n"
	MsgNoCommand       = "no command specified"
	MsgVersionFormat   = "attachlink version %s\n  commit: %s\n  built:  %s\n"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun      = "Preview changes without executing them"
	MsgFlagConfig      = "Config file (default $XDG_CONFIG_HOME/attachlink/config.toml)"
	MsgFlagFormat      = "Output format: auto, term, text or json"
	MsgFlagSet         = "Override a setting, e.g. --set base_attachment_path=~/Papers (repeatable)"
	MsgFlagLibrary     = "Library data directory"
	MsgFlagCollection  = "Collection whose folder receives the files"
	MsgFlagUnique      = "Number the new name if it is taken"
	MsgFlagOverwrite   = "Replace an existing file with the new name"
	MsgFlagParent      = "Key of the parent item"
	MsgFlagTitle       = "Attachment title"
	MsgFlagAddColl     = "Collection to file the item in"
	MsgFlagCollections = "List the collection tree instead of items"
	MsgFlagMatch       = "Only items whose title fuzzily matches"
	MsgFlagAttachments = "Only attachments"
	MsgFlagWrite       = "Write the config file instead of printing it"
	MsgFlagEffective   = "Print the configuration as loaded"
	MsgFlagManDir      = "Write one man page per command into this directory"

	// Error messages
	MsgErrConfig    = "failed to load configuration: %w"
	MsgErrOpen      = "failed to open library: %w"
	MsgErrSetFormat = "invalid --set %q, want key=value"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/convert-long.txt
	msgConvertLongRaw string
	MsgConvertLong    = strings.TrimSpace(msgConvertLongRaw)

	//go:embed msgs/convert-example.txt
	msgConvertExampleRaw string
	MsgConvertExample    = strings.TrimRight(msgConvertExampleRaw, "\n")

	//go:embed msgs/rename-long.txt
	msgRenameLongRaw string
	MsgRenameLong    = strings.TrimSpace(msgRenameLongRaw)

	//go:embed msgs/rename-example.txt
	msgRenameExampleRaw string
	MsgRenameExample    = strings.TrimRight(msgRenameExampleRaw, "\n")

	//go:embed msgs/sync-titles-long.txt
	msgSyncTitlesLongRaw string
	MsgSyncTitlesLong    = strings.TrimSpace(msgSyncTitlesLongRaw)

	//go:embed msgs/add-long.txt
	msgAddLongRaw string
	MsgAddLong    = strings.TrimSpace(msgAddLongRaw)

	//go:embed msgs/list-long.txt
	msgListLongRaw string
	MsgListLong    = strings.TrimSpace(msgListLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw) + "\n"
)

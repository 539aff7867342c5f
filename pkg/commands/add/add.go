// Package add imports files into the library as managed attachments
package add

import (
	"context"

	"github.com/arthur-debert/attachlink/pkg/app"
	"github.com/arthur-debert/attachlink/pkg/datastore"
	"github.com/arthur-debert/attachlink/pkg/logging"
	"github.com/arthur-debert/attachlink/pkg/paths"
	"github.com/arthur-debert/attachlink/pkg/types"
)

// Options holds options for the add command
type Options struct {
	Path          string
	ParentKey     string
	CollectionKey string

	// Title overrides the automatic attachment title
	Title string
}

// Add imports a file. Without an explicit title the attachment gets the
// automatic title, which follows the filename while sync is enabled.
func Add(ctx context.Context, a *app.App, opts Options) (*types.ImportResult, error) {
	logger := logging.GetLogger("commands.add")

	importOpts := datastore.ImportOptions{
		Title:         opts.Title,
		CollectionKey: opts.CollectionKey,
	}
	if opts.ParentKey != "" {
		parent, err := a.Library.ItemByKey(ctx, opts.ParentKey)
		if err != nil {
			return nil, err
		}
		importOpts.ParentID = parent.ID
	}

	item, err := a.Library.ImportFile(ctx, paths.ExpandHome(opts.Path), importOpts)
	if err != nil {
		return nil, err
	}

	if opts.Title == "" {
		if err := a.AutoTitler.SetAutoAttachmentTitle(ctx, item); err != nil {
			logger.Warn().Err(err).Str("item", item.Key).Msg("Failed to set attachment title")
		}
	}

	current, err := a.Library.Get(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	path, err := a.Library.FilePath(ctx, current)
	if err != nil {
		return nil, err
	}
	return &types.ImportResult{Item: current, Path: path}, nil
}

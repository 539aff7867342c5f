// Package rename implements renaming an attachment's file through the
// observed attachment renamer, so the title follows the new filename.
package rename

import (
	"context"

	"github.com/arthur-debert/attachlink/pkg/app"
	"github.com/arthur-debert/attachlink/pkg/errors"
	"github.com/arthur-debert/attachlink/pkg/logging"
	"github.com/arthur-debert/attachlink/pkg/sanitize"
	"github.com/arthur-debert/attachlink/pkg/types"
)

// Options holds options for the rename command
type Options struct {
	ItemKey string
	NewName string

	// Unique numbers the new name instead of refusing when it is taken
	Unique bool

	// Overwrite replaces an existing file with the new name
	Overwrite bool
}

// Rename renames the attachment's file. A new name without an extension
// keeps the current one.
func Rename(ctx context.Context, a *app.App, opts Options) (*types.RenameResult, error) {
	logger := logging.GetLogger("commands.rename")

	item, err := a.Library.ItemByKey(ctx, opts.ItemKey)
	if err != nil {
		return nil, err
	}
	if !item.IsAttachment() {
		return nil, errors.Newf(errors.ErrInvalidInput, "item %s is not an attachment", item.Key)
	}

	oldPath, err := a.Library.FilePath(ctx, item)
	if err != nil {
		return nil, err
	}
	newName := withExtension(sanitize.Name(opts.NewName), oldPath)
	if newName == "" {
		return nil, errors.New(errors.ErrInvalidInput, "new name is empty")
	}

	renamed, err := a.AttachmentRenamer.RenameAttachmentFile(ctx, item, newName, types.RenameOptions{
		Unique:    opts.Unique,
		Overwrite: opts.Overwrite,
	})
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileRename, "failed to rename %s", oldPath)
	}

	current, err := a.Library.Get(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	newPath, err := a.Library.FilePath(ctx, current)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("item", item.Key).
		Str("from", oldPath).
		Str("to", newPath).
		Bool("renamed", renamed).
		Msg("Attachment rename")
	return &types.RenameResult{
		ItemID:  item.ID,
		OldPath: oldPath,
		NewPath: newPath,
		Renamed: renamed,
		Title:   current.Title,
	}, nil
}

func withExtension(name, oldPath string) string {
	if name == "" {
		return ""
	}
	if _, ext := sanitize.SplitExtension(name); ext != "" {
		return name
	}
	if _, ext := sanitize.SplitExtension(sanitize.BaseName(oldPath)); ext != "" {
		return name + "." + ext
	}
	return name
}

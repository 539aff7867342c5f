// Package synctitles re-applies the title-sync policy to existing
// attachments by dispatching refresh notifications for them.
package synctitles

import (
	"context"

	"github.com/arthur-debert/attachlink/pkg/app"
	"github.com/arthur-debert/attachlink/pkg/logging"
	"github.com/arthur-debert/attachlink/pkg/types"
	"github.com/arthur-debert/attachlink/pkg/walker"
)

// Options holds options for the sync-titles command
type Options struct {
	// ItemKeys limits the refresh to these items and the attachments
	// below them. Empty means every attachment in the library.
	ItemKeys []string
}

// SyncTitles dispatches one refresh event for the selected attachments and
// reports which titles changed as a result
func SyncTitles(ctx context.Context, a *app.App, opts Options) (*types.SyncTitlesResult, error) {
	logger := logging.GetLogger("commands.synctitles")

	attachments, err := selectAttachments(ctx, a, opts)
	if err != nil {
		return nil, err
	}

	result := &types.SyncTitlesResult{Checked: len(attachments)}
	if len(attachments) == 0 {
		return result, nil
	}

	before := make(map[types.ItemID]string, len(attachments))
	ids := make([]types.ItemID, 0, len(attachments))
	for _, item := range attachments {
		before[item.ID] = item.Title
		ids = append(ids, item.ID)
	}

	a.Bus.Notify(ctx, types.Event{Type: types.EventItem, Action: types.ActionRefresh, IDs: ids})

	for _, id := range ids {
		item, err := a.Library.Get(ctx, id)
		if err != nil {
			logger.Warn().Err(err).Int64("item", int64(id)).Msg("Item vanished during sync")
			continue
		}
		if item.Title != before[id] {
			result.Changed = append(result.Changed, id)
		}
	}

	logger.Info().
		Int("checked", result.Checked).
		Int("changed", len(result.Changed)).
		Bool("sync_enabled", a.Config.SyncFilenameAndTitle()).
		Msg("Titles synced")
	return result, nil
}

func selectAttachments(ctx context.Context, a *app.App, opts Options) ([]*types.Item, error) {
	var roots []*types.Item
	if len(opts.ItemKeys) == 0 {
		all, err := a.Library.ListItems(ctx)
		if err != nil {
			return nil, err
		}
		for _, item := range all {
			if item.IsAttachment() {
				roots = append(roots, item)
			}
		}
		return roots, nil
	}

	for _, key := range opts.ItemKeys {
		item, err := a.Library.ItemByKey(ctx, key)
		if err != nil {
			return nil, err
		}
		roots = append(roots, item)
	}
	leaves, err := walker.Expand(ctx, a.Library, roots)
	if err != nil {
		logger := logging.GetLogger("commands.synctitles")
		logger.Warn().Err(err).Msg("Item tree was not fully walked")
	}
	return leaves, nil
}

// Package titlesync keeps an attachment's title equal to its filename
// without the extension, reacting to item modify and refresh events.
package titlesync

import (
	"context"

	"github.com/arthur-debert/attachlink/pkg/errors"
	"github.com/arthur-debert/attachlink/pkg/logging"
	"github.com/arthur-debert/attachlink/pkg/sanitize"
	"github.com/arthur-debert/attachlink/pkg/types"
	"github.com/rs/zerolog"
)

// RenameMemory is the part of rename.Memory the policy needs
type RenameMemory interface {
	Consume(id types.ItemID, path string) bool
}

// Policy decides, per modified attachment, whether its title follows its
// filename. It implements types.Observer.
type Policy struct {
	store  types.ItemStore
	memory RenameMemory
	prefs  types.Preferences
}

// New returns a Policy
func New(store types.ItemStore, memory RenameMemory, prefs types.Preferences) *Policy {
	return &Policy{store: store, memory: memory, prefs: prefs}
}

var _ types.Observer = (*Policy)(nil)

// Actions are the item events the policy reacts to
var Actions = []types.EventAction{types.ActionModify, types.ActionRefresh}

// Register subscribes the policy to notifier and returns the unsubscribe func
func (p *Policy) Register(notifier types.Notifier) func() {
	return notifier.Subscribe(p, Actions...)
}

// Notify implements types.Observer. Failures are logged per item and do
// not stop the remaining ids from being processed.
func (p *Policy) Notify(ctx context.Context, event types.Event) {
	if event.Type != types.EventItem {
		return
	}
	if event.Action != types.ActionModify && event.Action != types.ActionRefresh {
		return
	}

	logger := logging.GetLogger("titlesync")
	for _, id := range event.IDs {
		if _, err := p.Sync(ctx, id); err != nil {
			logger.Warn().Err(err).Int64("item", int64(id)).Msg("Title sync failed")
		}
	}
}

// Sync applies the policy to one item and reports whether the title was written
func (p *Policy) Sync(ctx context.Context, id types.ItemID) (bool, error) {
	logger := logging.GetLogger("titlesync").With().Int64("item", int64(id)).Logger()

	item, err := p.store.Get(ctx, id)
	if err != nil {
		return false, err
	}
	if !item.IsAttachment() {
		logger.Trace().Msg("Not an attachment, skipping")
		return false, nil
	}

	path, err := p.store.FilePath(ctx, item)
	if err != nil {
		return false, err
	}
	if path == "" {
		logger.Trace().Msg("Attachment has no file, skipping")
		return false, nil
	}

	filename := sanitize.BaseName(path)
	renamed := p.memory.Consume(id, path)
	if !renamed && filename == item.Title {
		logger.Trace().Msg("No filename change")
		return false, nil
	}

	return p.handleFilenameChange(ctx, logger, item, filename)
}

// handleFilenameChange writes the stripped filename as title when sync is
// enabled. A title that already matches is left alone, which is what ends
// the modify -> save -> modify chain.
func (p *Policy) handleFilenameChange(ctx context.Context, logger zerolog.Logger, item *types.Item, filename string) (bool, error) {
	if !p.prefs.SyncFilenameAndTitle() {
		logger.Debug().Str("filename", filename).Msg("Filename changed, sync disabled")
		return false, nil
	}

	title := sanitize.StripExtension(filename)
	if title == item.Title {
		return false, nil
	}

	if err := p.store.SetTitle(ctx, item.ID, title); err != nil {
		return false, errors.Wrapf(err, errors.ErrTitleSave, "failed to save title of item %d", item.ID)
	}

	logger.Info().
		Str("from", item.Title).
		Str("to", title).
		Msg("Title updated to match filename")
	return true, nil
}

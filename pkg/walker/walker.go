// Package walker flattens a selection of library items into the
// attachments it contains.
package walker

import (
	"context"
	stderrors "errors"

	"github.com/arthur-debert/attachlink/pkg/errors"
	"github.com/arthur-debert/attachlink/pkg/logging"
	"github.com/arthur-debert/attachlink/pkg/types"
	"github.com/rs/zerolog"
)

type walk struct {
	ctx     context.Context
	store   types.ItemStore
	logger  zerolog.Logger
	visited map[types.ItemID]bool
	active  map[types.ItemID]bool
	leaves  []*types.Item
	errs    []error
}

// Expand returns the attachments reachable from items, depth-first and in
// host child order. Attachments are yielded once even when listed more
// than once. Notes are ignored. A container that is reached again while
// it is still being descended is reported as an ErrItemCycle error; the
// returned list is complete either way.
func Expand(ctx context.Context, store types.ItemStore, items []*types.Item) ([]*types.Item, error) {
	w := &walk{
		ctx:     ctx,
		store:   store,
		logger:  logging.GetLogger("walker"),
		visited: make(map[types.ItemID]bool),
		active:  make(map[types.ItemID]bool),
	}

	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return w.leaves, err
		}
		w.visit(item)
	}

	w.logger.Debug().
		Int("selected", len(items)).
		Int("attachments", len(w.leaves)).
		Int("problems", len(w.errs)).
		Msg("Selection expanded")
	return w.leaves, stderrors.Join(w.errs...)
}

func (w *walk) visit(item *types.Item) {
	switch item.Kind {
	case types.KindAttachment:
		if w.visited[item.ID] {
			w.logger.Debug().Int64("item", int64(item.ID)).Msg("Attachment already collected")
			return
		}
		w.visited[item.ID] = true
		w.leaves = append(w.leaves, item)

	case types.KindRegular:
		if w.active[item.ID] {
			w.errs = append(w.errs, errors.Newf(errors.ErrItemCycle,
				"item %d contains itself", item.ID))
			w.logger.Error().Int64("item", int64(item.ID)).Msg("Item hierarchy cycle")
			return
		}
		if w.visited[item.ID] {
			return
		}
		w.visited[item.ID] = true
		w.active[item.ID] = true
		defer delete(w.active, item.ID)

		children, err := w.store.Children(w.ctx, item.ID)
		if err != nil {
			w.errs = append(w.errs, errors.Wrapf(err, errors.ErrStore,
				"failed to list children of item %d", item.ID))
			return
		}
		for _, child := range children {
			w.visit(child)
		}

	default:
		w.logger.Trace().
			Int64("item", int64(item.ID)).
			Str("kind", string(item.Kind)).
			Msg("Skipping item without attachments")
	}
}

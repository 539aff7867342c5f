package rename

import (
	"context"
	"time"

	"github.com/arthur-debert/attachlink/pkg/errors"
	"github.com/arthur-debert/attachlink/pkg/logging"
	"github.com/arthur-debert/attachlink/pkg/sanitize"
	"github.com/arthur-debert/attachlink/pkg/types"
)

// ObservedFileRenamer wraps the low-level file rename. Every call is
// recorded, successful or not: the resulting name, or the file's original
// name when the rename did not happen.
type ObservedFileRenamer struct {
	next     types.FileRenamer
	observer Observer
}

// NewObservedFileRenamer wraps next
func NewObservedFileRenamer(next types.FileRenamer, observer Observer) *ObservedFileRenamer {
	return &ObservedFileRenamer{next: next, observer: observer}
}

var _ types.FileRenamer = (*ObservedFileRenamer)(nil)

// RenameFile implements types.FileRenamer
func (r *ObservedFileRenamer) RenameFile(ctx context.Context, path, newName string) (string, error) {
	result, err := r.next.RenameFile(ctx, path, newName)

	filename := result
	if filename == "" {
		filename = sanitize.BaseName(path)
	}
	r.observer.RenameObserved(types.RenameEvent{
		Path:     sanitize.DirName(path) + filename,
		Filename: filename,
		At:       time.Now(),
	})

	logger := logging.GetLogger("rename.file")

	logger.Debug().
		Str("path", path).
		Str("requested", newName).
		Str("result", result).
		Err(err).
		Msg("File rename observed")
	return result, err
}

// ObservedAttachmentRenamer wraps the attachment rename entry point
type ObservedAttachmentRenamer struct {
	next     types.AttachmentRenamer
	store    types.ItemStore
	observer Observer
}

// NewObservedAttachmentRenamer wraps next. store resolves paths and saves titles.
func NewObservedAttachmentRenamer(next types.AttachmentRenamer, store types.ItemStore, observer Observer) *ObservedAttachmentRenamer {
	return &ObservedAttachmentRenamer{next: next, store: store, observer: observer}
}

var _ types.AttachmentRenamer = (*ObservedAttachmentRenamer)(nil)

// RenameAttachmentFile implements types.AttachmentRenamer.
//
// A request for the name the file already has still relinks the file and
// re-saves the title so that a modify notification fires, and reports
// success without calling the wrapped renamer. Any other request is
// delegated and recorded only when it succeeds. Observers run
// synchronously, so the event is recorded before the save it describes and
// withdrawn if the rename does not happen.
func (r *ObservedAttachmentRenamer) RenameAttachmentFile(ctx context.Context, item *types.Item, newName string, opts types.RenameOptions) (bool, error) {
	logger := logging.GetLogger("rename.attachment")

	origPath, err := r.store.FilePath(ctx, item)
	if err != nil {
		return false, err
	}
	if origPath == "" {
		logger.Debug().Int64("item", int64(item.ID)).Msg("Attachment file not found")
		return false, nil
	}

	if sanitize.BaseName(origPath) == newName {
		ev := types.RenameEvent{ItemID: item.ID, Path: origPath, Filename: newName, At: time.Now()}
		r.observer.RenameObserved(ev)

		if err := r.next.RelinkAttachmentFile(ctx, item, origPath); err != nil {
			r.observer.RenameAbandoned(ev)
			return false, err
		}
		// Re-read: observers of the relink may already have changed the title.
		current, err := r.store.Get(ctx, item.ID)
		if err != nil {
			r.observer.RenameAbandoned(ev)
			return false, err
		}
		if err := r.store.SetTitle(ctx, item.ID, current.Title); err != nil {
			r.observer.RenameAbandoned(ev)
			return false, errors.Wrapf(err, errors.ErrTitleSave, "failed to save item %d", item.ID)
		}
		item.Title = current.Title

		logger.Debug().
			Int64("item", int64(item.ID)).
			Str("filename", newName).
			Msg("Filename unchanged, forced modification")
		return true, nil
	}

	ev := types.RenameEvent{
		ItemID:   item.ID,
		Path:     sanitize.DirName(origPath) + newName,
		Filename: newName,
		At:       time.Now(),
	}
	r.observer.RenameObserved(ev)

	ok, err := r.next.RenameAttachmentFile(ctx, item, newName, opts)
	if err != nil || !ok {
		r.observer.RenameAbandoned(ev)
		return ok, err
	}

	logger.Debug().
		Int64("item", int64(item.ID)).
		Str("from", origPath).
		Str("to", ev.Path).
		Msg("Attachment renamed")
	return true, nil
}

// RelinkAttachmentFile implements types.AttachmentRenamer
func (r *ObservedAttachmentRenamer) RelinkAttachmentFile(ctx context.Context, item *types.Item, path string) error {
	return r.next.RelinkAttachmentFile(ctx, item, path)
}

// SyncingAutoTitler replaces the host's automatic attachment title with
// "filename minus extension" while filename/title sync is enabled.
type SyncingAutoTitler struct {
	next  types.AutoTitler
	store types.ItemStore
	prefs types.Preferences
}

// NewSyncingAutoTitler wraps next
func NewSyncingAutoTitler(next types.AutoTitler, store types.ItemStore, prefs types.Preferences) *SyncingAutoTitler {
	return &SyncingAutoTitler{next: next, store: store, prefs: prefs}
}

var _ types.AutoTitler = (*SyncingAutoTitler)(nil)

// SetAutoAttachmentTitle implements types.AutoTitler
func (a *SyncingAutoTitler) SetAutoAttachmentTitle(ctx context.Context, item *types.Item) error {
	logger := logging.GetLogger("rename.autotitle")

	if !a.prefs.SyncFilenameAndTitle() {
		return a.next.SetAutoAttachmentTitle(ctx, item)
	}

	path, err := a.store.FilePath(ctx, item)
	if err != nil {
		return err
	}
	filename := sanitize.BaseName(path)
	if filename == "" {
		return nil
	}

	title := sanitize.StripExtension(filename)
	if err := a.store.SetTitle(ctx, item.ID, title); err != nil {
		return errors.Wrapf(err, errors.ErrTitleSave, "failed to save title of item %d", item.ID)
	}
	item.Title = title

	logger.Debug().
		Int64("item", int64(item.ID)).
		Str("title", title).
		Msg("Title set from filename")
	return nil
}

// Package relocate moves a managed attachment's file into a destination
// directory and replaces the attachment record with a linked one.
package relocate

import (
	"context"
	"strings"

	"github.com/arthur-debert/attachlink/pkg/errors"
	"github.com/arthur-debert/attachlink/pkg/filesystem"
	"github.com/arthur-debert/attachlink/pkg/logging"
	"github.com/arthur-debert/attachlink/pkg/sanitize"
	"github.com/arthur-debert/attachlink/pkg/types"
	"github.com/arthur-debert/attachlink/pkg/uniquename"
	"github.com/rs/zerolog"
)

// Skip reasons
const (
	ReasonNoPath      = "attachment has no file path"
	ReasonFileMissing = "attachment file does not exist"
	ReasonInPlace     = "file is already in the destination directory"
)

// Relocator performs the move, link and erase sequence for one attachment
type Relocator struct {
	fs         types.FS
	store      types.ItemStore
	autoTitler types.AutoTitler
}

// New returns a Relocator. autoTitler runs on every newly linked record.
func New(fs types.FS, store types.ItemStore, autoTitler types.AutoTitler) *Relocator {
	return &Relocator{fs: fs, store: store, autoTitler: autoTitler}
}

// TargetDir joins the base directory and the collection path, always
// ending in sep and never doubling it.
func TargetDir(baseDir, collectionPath, sep string) string {
	dir := EnsureTrailingSeparator(baseDir, sep)
	if collectionPath == "" {
		return dir
	}
	return dir + strings.Trim(collectionPath, sep) + sep
}

// EnsureTrailingSeparator appends sep to dir unless dir already ends with it
func EnsureTrailingSeparator(dir, sep string) string {
	if dir == "" || strings.HasSuffix(dir, sep) {
		return dir
	}
	return dir + sep
}

// Plan computes where item would be moved without touching anything
func (r *Relocator) Plan(ctx context.Context, item *types.Item, baseDir, collectionPath, sep string) (*types.RelocateResult, error) {
	result, source, err := r.check(ctx, item)
	if err != nil || result.Outcome == types.OutcomeSkipped {
		return result, err
	}

	dir := TargetDir(baseDir, collectionPath, sep)
	if inPlace(source, dir) {
		return skip(result, ReasonInPlace), nil
	}
	filename, err := uniquename.Uniquify(r.fs, dir, sanitize.BaseName(source))
	if err != nil {
		return fail(result, err)
	}

	result.Outcome = types.OutcomeSuccess
	result.Destination = dir + filename
	return result, nil
}

// inPlace reports whether source already sits directly in dir
func inPlace(source, dir string) bool {
	return source == dir+sanitize.BaseName(source)
}

// Relocate moves item's file to baseDir/collectionPath under a free name,
// links the moved file as a new attachment with the same parent and
// library, and erases the original record. A missing file or path is
// reported as skipped with nothing changed.
//
// Once the file has moved nothing is rolled back: a failure to link
// leaves the file at its destination and the original record pointing at
// a missing file, and is reported with LINK_CREATE.
func (r *Relocator) Relocate(ctx context.Context, item *types.Item, baseDir, collectionPath, sep string) (*types.RelocateResult, error) {
	logger := logging.GetLogger("relocate").With().Int64("item", int64(item.ID)).Logger()

	result, source, err := r.check(ctx, item)
	if err != nil {
		return result, err
	}
	if result.Outcome == types.OutcomeSkipped {
		logger.Info().Str("reason", result.Reason).Msg("Attachment skipped")
		return result, nil
	}

	dir := TargetDir(baseDir, collectionPath, sep)
	if inPlace(source, dir) {
		logger.Info().Str("reason", ReasonInPlace).Msg("Attachment skipped")
		return skip(result, ReasonInPlace), nil
	}
	filename, err := uniquename.Uniquify(r.fs, dir, sanitize.BaseName(source))
	if err != nil {
		return fail(result, err)
	}
	dest := dir + filename
	result.Destination = dest

	if err := r.fs.MkdirAll(dir, 0755); err != nil {
		return fail(result, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir))
	}

	if err := filesystem.MoveFile(r.fs, source, dest); err != nil {
		return fail(result, errors.Wrapf(err, errors.ErrFileMove, "failed to move %s to %s", source, dest))
	}
	logger.Debug().Str("from", source).Str("to", dest).Msg("File moved")

	linked, err := r.store.LinkFromFile(ctx, types.LinkedFileRecord{
		Path:         dest,
		ParentItemID: item.ParentID,
		LibraryID:    item.LibraryID,
		ContentType:  item.ContentType,
		Replaces:     item.ID,
	})
	if err != nil {
		return fail(result, errors.Wrapf(err, errors.ErrLinkCreate, "failed to link %s", dest).
			WithDetail("destination", dest))
	}
	result.NewItemID = linked.ID

	r.applyAutoTitle(ctx, logger, linked)

	if err := r.store.Erase(ctx, item.ID); err != nil {
		return fail(result, errors.Wrapf(err, errors.ErrItemErase, "failed to erase item %d", item.ID).
			WithDetail("linked_item", linked.ID))
	}

	result.Outcome = types.OutcomeSuccess
	logger.Info().
		Str("from", source).
		Str("to", dest).
		Int64("linked_item", int64(linked.ID)).
		Msg("Attachment converted to linked file")
	return result, nil
}

// check resolves the source path and decides whether the item is skipped
func (r *Relocator) check(ctx context.Context, item *types.Item) (*types.RelocateResult, string, error) {
	result := &types.RelocateResult{ItemID: item.ID, Title: item.Title}

	source, err := r.store.FilePath(ctx, item)
	if err != nil {
		res, err := fail(result, errors.Wrapf(err, errors.ErrStore, "failed to resolve path of item %d", item.ID))
		return res, "", err
	}
	result.Source = source
	if source == "" {
		return skip(result, ReasonNoPath), "", nil
	}

	exists, err := r.store.FileExists(ctx, item)
	if err != nil {
		res, err := fail(result, errors.Wrapf(err, errors.ErrFileAccess, "failed to check %s", source))
		return res, "", err
	}
	if !exists {
		return skip(result, ReasonFileMissing), "", nil
	}
	return result, source, nil
}

// applyAutoTitle runs the auto-title pathway on a freshly linked record.
// The conversion has already happened, so failures are only logged.
func (r *Relocator) applyAutoTitle(ctx context.Context, logger zerolog.Logger, linked *types.Item) {
	if r.autoTitler == nil {
		return
	}
	if err := r.autoTitler.SetAutoAttachmentTitle(ctx, linked); err != nil {
		logger.Warn().Err(err).Int64("linked_item", int64(linked.ID)).Msg("Failed to set attachment title")
	}
}

func skip(result *types.RelocateResult, reason string) *types.RelocateResult {
	result.Outcome = types.OutcomeSkipped
	result.Reason = reason
	return result
}

func fail(result *types.RelocateResult, err error) (*types.RelocateResult, error) {
	result.Outcome = types.OutcomeFailed
	result.Reason = err.Error()
	result.Err = err
	return result, err
}

// Package convert implements the batch conversion of attachments into
// linked files under the collection-mirroring directory tree.
package convert

import (
	"context"
	stderrors "errors"

	"github.com/arthur-debert/attachlink/pkg/app"
	"github.com/arthur-debert/attachlink/pkg/errors"
	"github.com/arthur-debert/attachlink/pkg/logging"
	"github.com/arthur-debert/attachlink/pkg/relocate"
	"github.com/arthur-debert/attachlink/pkg/types"
	"github.com/arthur-debert/attachlink/pkg/walker"
	"github.com/rs/zerolog"
)

// Options holds options for the convert command
type Options struct {
	// ItemKeys are the selected items. When empty, the items filed in
	// CollectionKey are converted.
	ItemKeys []string

	// CollectionKey is the collection whose path the files are placed
	// under. Empty means directly under the base directory.
	CollectionKey string

	DryRun bool
}

// Convert moves every attachment reachable from the selection to
// <base>/<collection path>/ and replaces it with a linked attachment.
// Configuration problems and collection cycles abort before any item is
// touched; failures of single attachments are recorded in the result.
func Convert(ctx context.Context, a *app.App, opts Options) (*types.ConvertResult, error) {
	logger := logging.GetLogger("commands.convert")
	done := logging.LogOperationStart(logger, "convert")
	defer done()

	baseDir := a.Config.BaseAttachmentPath()
	if baseDir == "" {
		return nil, errors.New(errors.ErrBaseDirUnset, "linked attachment base directory is not set").
			WithDetail("key", "base_attachment_path")
	}
	sep := a.Config.Separator()
	baseDir = relocate.EnsureTrailingSeparator(baseDir, sep)
	logger.Info().Str("base_dir", baseDir).Msg("Base directory")

	collection, err := loadCollection(ctx, a, opts.CollectionKey)
	if err != nil {
		return nil, err
	}
	collectionPath, err := a.Resolver.Resolve(ctx, collection, sep)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("collection_path", collectionPath).Msg("Collection path")

	selection, err := selectItems(ctx, a, opts)
	if err != nil {
		return nil, err
	}
	logger.Info().Interface("items", ids(selection)).Msg("Selected items")

	leaves, walkErr := walker.Expand(ctx, a.Library, selection)
	if walkErr != nil {
		logger.Warn().Err(walkErr).Int("attachments", len(leaves)).Msg("Item tree was not fully walked")
	}

	result := &types.ConvertResult{
		BaseDir:        baseDir,
		CollectionPath: collectionPath,
		DryRun:         opts.DryRun,
	}
	for _, item := range leaves {
		if err := ctx.Err(); err != nil {
			logConvert(logger, opts, result, err)
			return result, err
		}

		var res *types.RelocateResult
		if opts.DryRun {
			res, err = a.Relocator.Plan(ctx, item, baseDir, collectionPath, sep)
		} else {
			res, err = a.Relocator.Relocate(ctx, item, baseDir, collectionPath, sep)
		}
		if err != nil {
			logger.Error().Err(err).Int64("item", int64(item.ID)).Msg("Error converting attachment")
		}
		result.Results = append(result.Results, *res)
	}

	logConvert(logger, opts, result, nil)
	return result, nil
}

func loadCollection(ctx context.Context, a *app.App, key string) (*types.Collection, error) {
	if key == "" {
		return nil, nil
	}
	return a.Library.GetCollection(ctx, key)
}

func selectItems(ctx context.Context, a *app.App, opts Options) ([]*types.Item, error) {
	if len(opts.ItemKeys) == 0 {
		if opts.CollectionKey == "" {
			return nil, errors.New(errors.ErrInvalidInput, "nothing selected: give item keys or a collection")
		}
		return a.Library.CollectionItems(ctx, opts.CollectionKey)
	}

	var items []*types.Item
	var errs []error
	for _, key := range opts.ItemKeys {
		item, err := a.Library.ItemByKey(ctx, key)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		items = append(items, item)
	}
	if len(errs) > 0 {
		return nil, stderrors.Join(errs...)
	}
	return items, nil
}

func ids(items []*types.Item) []types.ItemID {
	out := make([]types.ItemID, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

// logConvert logs the convert command execution
func logConvert(logger zerolog.Logger, opts Options, result *types.ConvertResult, err error) {
	event := logger.Info()
	if err != nil {
		event = logger.Error().Err(err)
	}

	event.
		Str("command", "convert").
		Strs("items", opts.ItemKeys).
		Str("collection", opts.CollectionKey).
		Bool("dry_run", opts.DryRun).
		Int("converted", result.Count(types.OutcomeSuccess)).
		Int("skipped", result.Count(types.OutcomeSkipped)).
		Int("failed", result.Count(types.OutcomeFailed)).
		Msg("Conversion to linked files completed")
}

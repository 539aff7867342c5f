// Package list reports the library's items and collection tree
package list

import (
	"context"

	"github.com/arthur-debert/attachlink/pkg/app"
	"github.com/arthur-debert/attachlink/pkg/collections"
	"github.com/arthur-debert/attachlink/pkg/datastore"
	"github.com/arthur-debert/attachlink/pkg/types"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// Options holds options for the list command
type Options struct {
	// Match keeps items whose title fuzzily matches
	Match string

	// AttachmentsOnly drops regular items and notes
	AttachmentsOnly bool
}

// Items lists items in creation order with their resolved file paths
func Items(ctx context.Context, a *app.App, opts Options) ([]types.ListedItem, error) {
	items, err := a.Library.ListItems(ctx)
	if err != nil {
		return nil, err
	}

	var out []types.ListedItem
	for _, item := range items {
		if opts.AttachmentsOnly && !item.IsAttachment() {
			continue
		}
		if opts.Match != "" && !fuzzy.MatchNormalizedFold(opts.Match, item.Title) {
			continue
		}

		listed := types.ListedItem{Item: item}
		if item.IsAttachment() {
			if listed.Path, err = a.Library.FilePath(ctx, item); err != nil {
				return nil, err
			}
			if info, err := a.FS.Stat(listed.Path); err == nil && listed.Path != "" {
				listed.Exists = true
				listed.Size = info.Size()
			}
		}
		out = append(out, listed)
	}
	return out, nil
}

// Collections lists the collection tree depth-first, each collection with
// the path conversion would place its files under
func Collections(ctx context.Context, a *app.App) ([]types.ListedCollection, error) {
	tree, err := a.Resolver.BuildTree(ctx, datastore.DefaultLibraryID)
	if err != nil {
		return nil, err
	}

	sep := a.Config.Separator()
	var out []types.ListedCollection
	seen := make(map[string]bool)

	var walk func(parent string, depth int) error
	walk = func(parent string, depth int) error {
		for _, key := range tree.Children[parent] {
			if seen[key] {
				continue
			}
			seen[key] = true

			path, err := collections.PathFor(tree, key, sep)
			if err != nil {
				return err
			}
			out = append(out, types.ListedCollection{
				Collection: tree.Collections[key],
				Path:       path,
				Depth:      depth,
			})
			if err := walk(key, depth+1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(types.RootKey, 0); err != nil {
		return nil, err
	}
	return out, nil
}

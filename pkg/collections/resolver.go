// Package collections turns a collection's position in the library's
// collection graph into a relative directory path.
package collections

import (
	"context"
	"strings"

	"github.com/arthur-debert/attachlink/pkg/errors"
	"github.com/arthur-debert/attachlink/pkg/logging"
	"github.com/arthur-debert/attachlink/pkg/sanitize"
	"github.com/arthur-debert/attachlink/pkg/types"
)

// Resolver builds collection paths from a CollectionStore
type Resolver struct {
	store types.CollectionStore
}

// NewResolver returns a Resolver reading from store
func NewResolver(store types.CollectionStore) *Resolver {
	return &Resolver{store: store}
}

// BuildTree materializes every collection reachable from the library's
// roots. A collection listed under more than one parent gets one edge per
// listing but is only expanded the first time it is reached.
func (r *Resolver) BuildTree(ctx context.Context, libraryID types.LibraryID) (*types.CollectionTree, error) {
	logger := logging.GetLogger("collections")

	roots, err := r.store.RootCollections(ctx, libraryID)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStore, "failed to list root collections of library %d", libraryID)
	}

	tree := types.NewCollectionTree()
	for _, root := range roots {
		if err := r.expand(ctx, tree, types.RootKey, root); err != nil {
			return nil, err
		}
	}

	logger.Debug().
		Int64("library", int64(libraryID)).
		Int("collections", tree.Len()).
		Msg("Collection tree built")
	return tree, nil
}

func (r *Resolver) expand(ctx context.Context, tree *types.CollectionTree, parentKey string, c *types.Collection) error {
	if !tree.Add(parentKey, c) {
		return nil
	}

	children, err := r.store.ChildCollections(ctx, c.Key)
	if err != nil {
		return errors.Wrapf(err, errors.ErrStore, "failed to list children of collection %s", c.Key)
	}
	for _, child := range children {
		if err := r.expand(ctx, tree, c.Key, child); err != nil {
			return err
		}
	}
	return nil
}

// Resolve returns the separator-joined, sanitized path from the library
// root down to collection. A nil collection resolves to "". See PathFor
// for how gaps and cycles are handled.
func (r *Resolver) Resolve(ctx context.Context, collection *types.Collection, sep string) (string, error) {
	if collection == nil {
		return "", nil
	}

	tree, err := r.BuildTree(ctx, collection.LibraryID)
	if err != nil {
		return "", err
	}
	return PathFor(tree, collection.Key, sep)
}

// PathFor ascends from key to the root of tree. A key missing from the
// tree stops the ascent and the path built so far is returned. Reaching a
// key twice returns the partial path with an ErrCollectionCycle error.
func PathFor(tree *types.CollectionTree, key, sep string) (string, error) {
	var segments []string
	visited := make(map[string]bool)

	current := key
	for current != types.RootKey {
		if visited[current] {
			return join(segments, sep), errors.Newf(errors.ErrCollectionCycle,
				"collection %s is its own ancestor", current).
				WithDetail("key", key)
		}
		visited[current] = true

		c, ok := tree.Collections[current]
		if !ok {
			break
		}
		segments = append(segments, sanitize.Name(c.Name))

		parent, ok := tree.ParentOf(current)
		if !ok {
			break
		}
		current = parent
	}
	return join(segments, sep), nil
}

// join reverses the leaf-first segments and joins them root-first
func join(segments []string, sep string) string {
	out := make([]string, len(segments))
	for i, s := range segments {
		out[len(segments)-1-i] = s
	}
	return strings.Join(out, sep)
}

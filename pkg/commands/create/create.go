// Package create adds regular items and collections to the library
package create

import (
	"context"

	"github.com/arthur-debert/attachlink/pkg/app"
	"github.com/arthur-debert/attachlink/pkg/logging"
	"github.com/arthur-debert/attachlink/pkg/types"
)

// NewItem creates a regular item, filed in collectionKey when given
func NewItem(ctx context.Context, a *app.App, title, collectionKey string) (*types.Item, error) {
	item, err := a.Library.CreateItem(ctx, title, collectionKey)
	if err != nil {
		return nil, err
	}
	logger := logging.GetLogger("commands.create")
	logger.Info().
		Str("key", item.Key).
		Str("collection", collectionKey).
		Msg("Item created")
	return item, nil
}

// NewCollection creates a collection under parentKey, or at the top level
// when parentKey is empty
func NewCollection(ctx context.Context, a *app.App, name, parentKey string) (*types.Collection, error) {
	c, err := a.Library.CreateCollection(ctx, name, parentKey)
	if err != nil {
		return nil, err
	}
	logger := logging.GetLogger("commands.create")
	logger.Info().
		Str("key", c.Key).
		Str("parent", parentKey).
		Msg("Collection created")
	return c, nil
}

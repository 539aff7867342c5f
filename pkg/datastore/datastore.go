package datastore

import (
	"context"

	"github.com/arthur-debert/attachlink/pkg/types"
)

// Library is everything the commands need from the host
type Library interface {
	types.ItemStore
	types.CollectionStore
	types.FileRenamer
	types.AttachmentRenamer
	types.AutoTitler

	ImportFile(ctx context.Context, src string, opts ImportOptions) (*types.Item, error)
	CreateItem(ctx context.Context, title string, collectionKey string) (*types.Item, error)
	CreateCollection(ctx context.Context, name, parentKey string) (*types.Collection, error)
	AddToCollection(ctx context.Context, collectionKey string, id types.ItemID) error
	CollectionItems(ctx context.Context, collectionKey string) ([]*types.Item, error)
	ListItems(ctx context.Context) ([]*types.Item, error)
	ItemByKey(ctx context.Context, key string) (*types.Item, error)

	SetNotifier(n types.Notifier)
	SetFileRenamer(r types.FileRenamer)
	Close() error
}

// ImportOptions controls how ImportFile attaches a file
type ImportOptions struct {
	ParentID      types.ItemID
	Title         string
	CollectionKey string
}

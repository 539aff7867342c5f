package types

import (
	"context"
	"io/fs"
)

// FS is the filesystem interface required for attachlink operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Other operations
	Rename(oldpath, newpath string) error
	Remove(name string) error
	RemoveAll(path string) error
}

// ItemStore is the host's item database as seen by the conversion and
// title-sync logic. Mutating calls commit before they return and publish
// a notification afterwards.
type ItemStore interface {
	Get(ctx context.Context, id ItemID) (*Item, error)

	// Children returns an item's child items in host order
	Children(ctx context.Context, id ItemID) ([]*Item, error)

	// FilePath resolves the absolute path of an attachment's file. It
	// returns "" when the item has no resolvable path.
	FilePath(ctx context.Context, item *Item) (string, error)
	FileExists(ctx context.Context, item *Item) (bool, error)

	SetTitle(ctx context.Context, id ItemID, title string) error
	LinkFromFile(ctx context.Context, rec LinkedFileRecord) (*Item, error)
	Erase(ctx context.Context, id ItemID) error
}

// CollectionStore exposes the library's collection graph
type CollectionStore interface {
	GetCollection(ctx context.Context, key string) (*Collection, error)
	RootCollections(ctx context.Context, libraryID LibraryID) ([]*Collection, error)
	ChildCollections(ctx context.Context, key string) ([]*Collection, error)
}

// FileRenamer is the low-level file rename primitive. It returns the
// resulting filename, or "" when the rename did not take place.
type FileRenamer interface {
	RenameFile(ctx context.Context, path, newName string) (string, error)
}

// RenameOptions are passed through to the host's attachment rename
type RenameOptions struct {
	Overwrite bool
	Unique    bool
}

// AttachmentRenamer renames the file backing an attachment item
type AttachmentRenamer interface {
	RenameAttachmentFile(ctx context.Context, item *Item, newName string, opts RenameOptions) (bool, error)

	// RelinkAttachmentFile points the item at path and saves it
	RelinkAttachmentFile(ctx context.Context, item *Item, path string) error
}

// AutoTitler sets an attachment's title from host defaults
type AutoTitler interface {
	SetAutoAttachmentTitle(ctx context.Context, item *Item) error
}

// Preferences are the user settings the feature reads
type Preferences interface {
	SyncFilenameAndTitle() bool
	BaseAttachmentPath() string
}

// Observer receives change notifications
type Observer interface {
	Notify(ctx context.Context, event Event)
}

// ObserverFunc adapts a function to the Observer interface
type ObserverFunc func(ctx context.Context, event Event)

// Notify calls f(ctx, event)
func (f ObserverFunc) Notify(ctx context.Context, event Event) {
	f(ctx, event)
}

// Notifier dispatches post-commit notifications to registered observers
type Notifier interface {
	// Subscribe registers an observer for item events with the given
	// actions (all actions when none are given) and returns a function
	// that removes the registration.
	Subscribe(observer Observer, actions ...EventAction) (unsubscribe func())
	Notify(ctx context.Context, event Event)
}

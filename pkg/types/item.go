package types

import "strings"

// ItemID identifies an item within the library database
type ItemID int64

// LibraryID identifies the library an item or collection belongs to
type LibraryID int64

// ItemKind distinguishes regular items, attachments and notes
type ItemKind string

const (
	KindRegular    ItemKind = "regular"
	KindAttachment ItemKind = "attachment"
	KindNote       ItemKind = "note"
)

// LinkMode describes how an attachment's file is stored
type LinkMode string

const (
	// LinkModeImported is a managed file owned by the library storage
	LinkModeImported LinkMode = "imported_file"

	// LinkModeLinked is an external file referenced by absolute path
	LinkModeLinked LinkMode = "linked_file"
)

// StoragePrefix marks a stored path as relative to the item's storage directory
const StoragePrefix = "storage:"

// Item is a library record. Attachments carry a stored path; regular items
// act as containers for their child attachments.
type Item struct {
	ID          ItemID
	Key         string
	LibraryID   LibraryID
	Kind        ItemKind
	ParentID    ItemID
	Title       string
	LinkMode    LinkMode
	Path        string
	ContentType string
}

// IsAttachment reports whether the item is an attachment
func (i *Item) IsAttachment() bool {
	return i.Kind == KindAttachment
}

// IsRegular reports whether the item is a regular (container) item
func (i *Item) IsRegular() bool {
	return i.Kind == KindRegular
}

// IsTopLevel reports whether the item has no parent
func (i *Item) IsTopLevel() bool {
	return i.ParentID == 0
}

// IsManaged reports whether the attachment's file lives in library storage
func (i *Item) IsManaged() bool {
	return i.LinkMode == LinkModeImported || strings.HasPrefix(i.Path, StoragePrefix)
}

// LinkedFileRecord is what the relocator hands to the host to create a
// linked attachment for a file that has already been moved.
type LinkedFileRecord struct {
	Path         string
	ParentItemID ItemID
	LibraryID    LibraryID
	Title        string
	ContentType  string

	// Replaces is the record the linked file takes over from. The host
	// files the new record in the same collections.
	Replaces ItemID
}

package types

import "time"

// EventType is the kind of record a notification refers to
type EventType string

const (
	EventItem       EventType = "item"
	EventCollection EventType = "collection"
)

// EventAction is what happened to the records in a notification
type EventAction string

const (
	ActionAdd     EventAction = "add"
	ActionModify  EventAction = "modify"
	ActionRefresh EventAction = "refresh"
	ActionDelete  EventAction = "delete"
)

// Event is a post-commit change notification
type Event struct {
	Type   EventType
	Action EventAction
	IDs    []ItemID
}

// RenameEvent records a rename observed on one of the rename pathways.
// ItemID is zero for low-level file renames that are not tied to an item.
type RenameEvent struct {
	ItemID   ItemID
	Path     string
	Filename string
	At       time.Time
}

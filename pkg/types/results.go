package types

// RelocateOutcome classifies what happened to one attachment
type RelocateOutcome string

const (
	OutcomeSuccess RelocateOutcome = "success"
	OutcomeSkipped RelocateOutcome = "skipped"
	OutcomeFailed  RelocateOutcome = "failed"
)

// RelocateResult describes the handling of a single attachment
type RelocateResult struct {
	ItemID      ItemID
	Title       string
	Outcome     RelocateOutcome
	Source      string
	Destination string
	NewItemID   ItemID
	Reason      string
	Err         error
}

// ConvertResult is the outcome of a batch conversion
type ConvertResult struct {
	BaseDir        string
	CollectionPath string
	DryRun         bool
	Results        []RelocateResult
}

// Count returns the number of results with the given outcome
func (r *ConvertResult) Count(outcome RelocateOutcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}

// RenameResult is returned by the rename command
type RenameResult struct {
	ItemID  ItemID
	OldPath string
	NewPath string
	Renamed bool
	Title   string
}

// SyncTitlesResult is returned by the sync-titles command
type SyncTitlesResult struct {
	Checked int
	Changed []ItemID
}

// ImportResult is returned by the add command
type ImportResult struct {
	Item *Item
	Path string
}

// ListedItem pairs an item with its resolved file path. Size is only
// meaningful when Exists is true.
type ListedItem struct {
	Item   *Item
	Path   string
	Exists bool
	Size   int64
}

// ListedCollection pairs a collection with its resolved destination path
type ListedCollection struct {
	Collection *Collection
	Path       string
	Depth      int
}

// GenConfigResult holds the result of the genconfig command
type GenConfigResult struct {
	ConfigContent string
	FilesWritten  []string
}

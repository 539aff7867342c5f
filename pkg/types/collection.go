package types

// RootKey is the sentinel parent key for top-level collections
const RootKey = ""

// Collection is a named, hierarchical grouping of items
type Collection struct {
	Key       string
	Name      string
	LibraryID LibraryID
	ParentKey string
}

// IsTopLevel reports whether the collection sits directly under the library root
func (c *Collection) IsTopLevel() bool {
	return c.ParentKey == RootKey
}

// CollectionTree is a materialized snapshot of a library's collection graph.
// It is rebuilt for each conversion run and discarded afterwards.
type CollectionTree struct {
	Collections map[string]*Collection
	Children    map[string][]string

	// parentRank numbers parent keys in the order they were first seen so
	// that lookups over multiply-listed collections are deterministic.
	parentRank  map[string]int
	firstParent map[string]string
}

// NewCollectionTree returns an empty tree
func NewCollectionTree() *CollectionTree {
	return &CollectionTree{
		Collections: make(map[string]*Collection),
		Children:    make(map[string][]string),
		parentRank:  make(map[string]int),
		firstParent: make(map[string]string),
	}
}

// Add records a collection under the given parent key. It reports whether
// the collection was new to the tree.
func (t *CollectionTree) Add(parentKey string, c *Collection) bool {
	rank, ok := t.parentRank[parentKey]
	if !ok {
		rank = len(t.parentRank)
		t.parentRank[parentKey] = rank
	}
	t.Children[parentKey] = append(t.Children[parentKey], c.Key)

	if current, listed := t.firstParent[c.Key]; !listed || rank < t.parentRank[current] {
		t.firstParent[c.Key] = parentKey
	}

	if _, seen := t.Collections[c.Key]; seen {
		return false
	}
	t.Collections[c.Key] = c
	return true
}

// ParentOf returns the first recorded parent key whose child list contains
// key. ok is false when no parent lists it.
func (t *CollectionTree) ParentOf(key string) (parent string, ok bool) {
	parent, ok = t.firstParent[key]
	return parent, ok
}

// Len returns the number of distinct collections in the tree
func (t *CollectionTree) Len() int {
	return len(t.Collections)
}

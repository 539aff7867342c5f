package testutil

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/arthur-debert/attachlink/pkg/errors"
	"github.com/arthur-debert/attachlink/pkg/sanitize"
	"github.com/arthur-debert/attachlink/pkg/types"
)

// MockLibrary is an in-memory host library backed by a types.FS. It
// implements ItemStore, CollectionStore and the three rename entry points,
// publishes to Notifier after each mutation when one is set, and records
// every call.
type MockLibrary struct {
	mu sync.Mutex

	FS         types.FS
	StorageDir string
	Notifier   types.Notifier

	// Renamer is used by RenameAttachmentFile for the file rename. It
	// defaults to the library itself.
	Renamer types.FileRenamer

	items           map[types.ItemID]*types.Item
	itemOrder       []types.ItemID
	collections     map[string]*types.Collection
	collectionOrder []string
	nextID          types.ItemID
	nextKey         int

	calls         []string
	errorOn       string
	errorToReturn error
}

// NewMockLibrary creates an empty library whose managed files live under storageDir on fsys
func NewMockLibrary(fsys types.FS, storageDir string) *MockLibrary {
	return &MockLibrary{
		FS:          fsys,
		StorageDir:  storageDir,
		items:       make(map[types.ItemID]*types.Item),
		collections: make(map[string]*types.Collection),
	}
}

// SetError makes the named method return err
func (m *MockLibrary) SetError(method string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorOn = method
	m.errorToReturn = err
}

// Calls returns the recorded calls
func (m *MockLibrary) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// CountCalls returns how many recorded calls start with prefix
func (m *MockLibrary) CountCalls(prefix string) int {
	n := 0
	for _, c := range m.Calls() {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (m *MockLibrary) record(method string, args ...interface{}) error {
	m.calls = append(m.calls, fmt.Sprintf("%s%v", method, args))
	if m.errorOn == method {
		return m.errorToReturn
	}
	return nil
}

func (m *MockLibrary) newKey() string {
	m.nextKey++
	return fmt.Sprintf("K%07d", m.nextKey)
}

func (m *MockLibrary) insert(item *types.Item) *types.Item {
	m.nextID++
	item.ID = m.nextID
	if item.Key == "" {
		item.Key = m.newKey()
	}
	if item.LibraryID == 0 {
		item.LibraryID = 1
	}
	m.items[item.ID] = item
	m.itemOrder = append(m.itemOrder, item.ID)
	return cloneItem(item)
}

func (m *MockLibrary) publish(ctx context.Context, action types.EventAction, ids ...types.ItemID) {
	if m.Notifier != nil {
		m.Notifier.Notify(ctx, types.Event{Type: types.EventItem, Action: action, IDs: ids})
	}
}

func cloneItem(item *types.Item) *types.Item {
	c := *item
	return &c
}

// AddRegular adds a regular item
func (m *MockLibrary) AddRegular(title string) *types.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insert(&types.Item{Kind: types.KindRegular, Title: title})
}

// AddNote adds a note under parent (0 for top level)
func (m *MockLibrary) AddNote(parent types.ItemID, title string) *types.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insert(&types.Item{Kind: types.KindNote, ParentID: parent, Title: title})
}

// AddManaged adds a managed attachment and writes its file into storage
func (m *MockLibrary) AddManaged(parent types.ItemID, filename, title, content string) *types.Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.newKey()
	dir := filepath.Join(m.StorageDir, key)
	_ = m.FS.MkdirAll(dir, 0755)
	_ = m.FS.WriteFile(filepath.Join(dir, filename), []byte(content), 0644)

	return m.insert(&types.Item{
		Key:         key,
		Kind:        types.KindAttachment,
		ParentID:    parent,
		Title:       title,
		LinkMode:    types.LinkModeImported,
		Path:        types.StoragePrefix + filename,
		ContentType: "application/pdf",
	})
}

// AddLinked adds a linked attachment pointing at path. The file is not created.
func (m *MockLibrary) AddLinked(parent types.ItemID, path, title string) *types.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.insert(&types.Item{
		Kind:     types.KindAttachment,
		ParentID: parent,
		Title:    title,
		LinkMode: types.LinkModeLinked,
		Path:     path,
	})
}

// Attach re-parents an existing item under parent, appending it to the
// parent's children. Used to build odd hierarchies in tests.
func (m *MockLibrary) Attach(parent, child types.ItemID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item, ok := m.items[child]; ok {
		item.ParentID = parent
	}
}

// AddCollection adds a collection under parentKey (types.RootKey for top level)
func (m *MockLibrary) AddCollection(parentKey, name string) *types.Collection {
	m.mu.Lock()
	defer m.mu.Unlock()

	c := &types.Collection{Key: m.newKey(), Name: name, LibraryID: 1, ParentKey: parentKey}
	m.collections[c.Key] = c
	m.collectionOrder = append(m.collectionOrder, c.Key)
	cc := *c
	return &cc
}

// Item returns a copy of the stored item, or nil
func (m *MockLibrary) Item(id types.ItemID) *types.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	if item, ok := m.items[id]; ok {
		return cloneItem(item)
	}
	return nil
}

// Items returns copies of all items in insertion order
func (m *MockLibrary) Items() []*types.Item {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*types.Item, 0, len(m.itemOrder))
	for _, id := range m.itemOrder {
		out = append(out, cloneItem(m.items[id]))
	}
	return out
}

// ResolvePath returns the absolute path of an attachment's file
func (m *MockLibrary) ResolvePath(item *types.Item) string {
	if item.Path == "" {
		return ""
	}
	if strings.HasPrefix(item.Path, types.StoragePrefix) {
		return filepath.Join(m.StorageDir, item.Key, strings.TrimPrefix(item.Path, types.StoragePrefix))
	}
	return item.Path
}

// Get implements types.ItemStore
func (m *MockLibrary) Get(ctx context.Context, id types.ItemID) (*types.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("Get", id); err != nil {
		return nil, err
	}
	item, ok := m.items[id]
	if !ok {
		return nil, errors.Newf(errors.ErrItemNotFound, "item %d not found", id)
	}
	return cloneItem(item), nil
}

// Children implements types.ItemStore
func (m *MockLibrary) Children(ctx context.Context, id types.ItemID) ([]*types.Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("Children", id); err != nil {
		return nil, err
	}
	var out []*types.Item
	for _, cid := range m.itemOrder {
		if m.items[cid].ParentID == id {
			out = append(out, cloneItem(m.items[cid]))
		}
	}
	return out, nil
}

// FilePath implements types.ItemStore
func (m *MockLibrary) FilePath(ctx context.Context, item *types.Item) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("FilePath", item.ID); err != nil {
		return "", err
	}
	return m.ResolvePath(item), nil
}

// FileExists implements types.ItemStore
func (m *MockLibrary) FileExists(ctx context.Context, item *types.Item) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("FileExists", item.ID); err != nil {
		return false, err
	}
	path := m.ResolvePath(item)
	if path == "" {
		return false, nil
	}
	_, err := m.FS.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// SetTitle implements types.ItemStore
func (m *MockLibrary) SetTitle(ctx context.Context, id types.ItemID, title string) error {
	m.mu.Lock()
	if err := m.record("SetTitle", id, title); err != nil {
		m.mu.Unlock()
		return err
	}
	item, ok := m.items[id]
	if !ok {
		m.mu.Unlock()
		return errors.Newf(errors.ErrItemNotFound, "item %d not found", id)
	}
	item.Title = title
	m.mu.Unlock()

	m.publish(ctx, types.ActionModify, id)
	return nil
}

// LinkFromFile implements types.ItemStore
func (m *MockLibrary) LinkFromFile(ctx context.Context, rec types.LinkedFileRecord) (*types.Item, error) {
	m.mu.Lock()
	if err := m.record("LinkFromFile", rec.Path, rec.Replaces); err != nil {
		m.mu.Unlock()
		return nil, err
	}
	title := rec.Title
	if title == "" {
		title = sanitize.BaseName(rec.Path)
	}
	item := m.insert(&types.Item{
		Kind:        types.KindAttachment,
		LibraryID:   rec.LibraryID,
		ParentID:    rec.ParentItemID,
		Title:       title,
		LinkMode:    types.LinkModeLinked,
		Path:        rec.Path,
		ContentType: rec.ContentType,
	})
	m.mu.Unlock()

	m.publish(ctx, types.ActionAdd, item.ID)
	return item, nil
}

// Erase implements types.ItemStore
func (m *MockLibrary) Erase(ctx context.Context, id types.ItemID) error {
	m.mu.Lock()
	if err := m.record("Erase", id); err != nil {
		m.mu.Unlock()
		return err
	}
	if _, ok := m.items[id]; !ok {
		m.mu.Unlock()
		return errors.Newf(errors.ErrItemNotFound, "item %d not found", id)
	}
	delete(m.items, id)
	for i, oid := range m.itemOrder {
		if oid == id {
			m.itemOrder = append(m.itemOrder[:i:i], m.itemOrder[i+1:]...)
			break
		}
	}
	m.mu.Unlock()

	m.publish(ctx, types.ActionDelete, id)
	return nil
}

// GetCollection implements types.CollectionStore
func (m *MockLibrary) GetCollection(ctx context.Context, key string) (*types.Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("GetCollection", key); err != nil {
		return nil, err
	}
	c, ok := m.collections[key]
	if !ok {
		return nil, errors.Newf(errors.ErrCollectionNotFound, "collection %s not found", key)
	}
	cc := *c
	return &cc, nil
}

// RootCollections implements types.CollectionStore
func (m *MockLibrary) RootCollections(ctx context.Context, libraryID types.LibraryID) ([]*types.Collection, error) {
	return m.childCollections("RootCollections", types.RootKey)
}

// ChildCollections implements types.CollectionStore
func (m *MockLibrary) ChildCollections(ctx context.Context, key string) ([]*types.Collection, error) {
	return m.childCollections("ChildCollections", key)
}

func (m *MockLibrary) childCollections(method, parent string) ([]*types.Collection, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record(method, parent); err != nil {
		return nil, err
	}
	var out []*types.Collection
	for _, key := range m.collectionOrder {
		if c := m.collections[key]; c.ParentKey == parent {
			cc := *c
			out = append(out, &cc)
		}
	}
	return out, nil
}

// RenameFile implements types.FileRenamer. It returns "" without error
// when the destination already exists.
func (m *MockLibrary) RenameFile(ctx context.Context, path, newName string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.record("RenameFile", path, newName); err != nil {
		return "", err
	}
	dst := filepath.Join(filepath.Dir(path), newName)
	if dst == path {
		return newName, nil
	}
	if _, err := m.FS.Stat(dst); err == nil {
		return "", nil
	}
	if err := m.FS.Rename(path, dst); err != nil {
		return "", err
	}
	return newName, nil
}

// RenameAttachmentFile implements types.AttachmentRenamer
func (m *MockLibrary) RenameAttachmentFile(ctx context.Context, item *types.Item, newName string, opts types.RenameOptions) (bool, error) {
	m.mu.Lock()
	if err := m.record("RenameAttachmentFile", item.ID, newName); err != nil {
		m.mu.Unlock()
		return false, err
	}
	stored, ok := m.items[item.ID]
	if !ok {
		m.mu.Unlock()
		return false, errors.Newf(errors.ErrItemNotFound, "item %d not found", item.ID)
	}
	path := m.ResolvePath(stored)
	renamer := m.Renamer
	m.mu.Unlock()

	if path == "" {
		return false, nil
	}
	if renamer == nil {
		renamer = m
	}
	result, err := renamer.RenameFile(ctx, path, newName)
	if err != nil || result == "" {
		return false, err
	}

	m.mu.Lock()
	if strings.HasPrefix(stored.Path, types.StoragePrefix) {
		stored.Path = types.StoragePrefix + result
	} else {
		stored.Path = filepath.Join(filepath.Dir(path), result)
	}
	m.mu.Unlock()

	m.publish(ctx, types.ActionModify, item.ID)
	return true, nil
}

// RelinkAttachmentFile implements types.AttachmentRenamer
func (m *MockLibrary) RelinkAttachmentFile(ctx context.Context, item *types.Item, path string) error {
	m.mu.Lock()
	if err := m.record("RelinkAttachmentFile", item.ID, path); err != nil {
		m.mu.Unlock()
		return err
	}
	stored, ok := m.items[item.ID]
	if !ok {
		m.mu.Unlock()
		return errors.Newf(errors.ErrItemNotFound, "item %d not found", item.ID)
	}
	if strings.HasPrefix(stored.Path, types.StoragePrefix) {
		stored.Path = types.StoragePrefix + filepath.Base(path)
	} else {
		stored.Path = path
	}
	m.mu.Unlock()

	m.publish(ctx, types.ActionModify, item.ID)
	return nil
}

// SetAutoAttachmentTitle implements types.AutoTitler with the host default
func (m *MockLibrary) SetAutoAttachmentTitle(ctx context.Context, item *types.Item) error {
	m.mu.Lock()
	if err := m.record("SetAutoAttachmentTitle", item.ID); err != nil {
		m.mu.Unlock()
		return err
	}
	stored, ok := m.items[item.ID]
	if !ok {
		m.mu.Unlock()
		return errors.Newf(errors.ErrItemNotFound, "item %d not found", item.ID)
	}
	stored.Title = types.AutoTitleFor(stored.ContentType, filepath.Base(m.ResolvePath(stored)))
	item.Title = stored.Title
	m.mu.Unlock()

	m.publish(ctx, types.ActionModify, item.ID)
	return nil
}

package datastore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"

	"github.com/arthur-debert/attachlink/pkg/errors"
	"github.com/arthur-debert/attachlink/pkg/logging"
	"github.com/arthur-debert/attachlink/pkg/sanitize"
	"github.com/arthur-debert/attachlink/pkg/types"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// DefaultLibraryID is the id of the user's own library
const DefaultLibraryID types.LibraryID = 1

const itemColumns = `id, key, library_id, kind, parent_id, title, link_mode, path, content_type`

type sqliteStore struct {
	db         *sql.DB
	fs         types.FS
	storageDir string

	mu       sync.RWMutex
	notifier types.Notifier
	renamer  types.FileRenamer
}

// Open opens (creating if needed) the library database at dbPath. Managed
// files are stored under storageDir on fsys.
func Open(dbPath, storageDir string, fsys types.FS) (Library, error) {
	logger := logging.GetLogger("datastore")

	if err := fsys.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory for %s", dbPath)
	}
	if err := fsys.MkdirAll(storageDir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create storage directory %s", storageDir)
	}

	db, err := openDBAt(dbPath)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStore, "failed to open library %s", dbPath)
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, errors.ErrStore, "failed to initialize library %s", dbPath)
	}

	logger.Debug().Str("db", dbPath).Str("storage", storageDir).Msg("Library opened")
	return &sqliteStore{db: db, fs: fsys, storageDir: storageDir}, nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

// SetNotifier sets where committed mutations are published
func (s *sqliteStore) SetNotifier(n types.Notifier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.notifier = n
}

// SetFileRenamer replaces the file renamer used by RenameAttachmentFile,
// so that attachment renames pass through the same (possibly wrapped)
// primitive as direct file renames.
func (s *sqliteStore) SetFileRenamer(r types.FileRenamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.renamer = r
}

func (s *sqliteStore) fileRenamer() types.FileRenamer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.renamer == nil {
		return s
	}
	return s.renamer
}

func (s *sqliteStore) publish(ctx context.Context, action types.EventAction, ids ...types.ItemID) {
	s.mu.RLock()
	n := s.notifier
	s.mu.RUnlock()
	if n != nil {
		n.Notify(ctx, types.Event{Type: types.EventItem, Action: action, IDs: ids})
	}
}

func newKey() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*types.Item, error) {
	var (
		item      types.Item
		kind      string
		linkMode  string
		id        int64
		libraryID int64
		parentID  int64
	)
	if err := row.Scan(&id, &item.Key, &libraryID, &kind, &parentID, &item.Title, &linkMode, &item.Path, &item.ContentType); err != nil {
		return nil, err
	}
	item.ID = types.ItemID(id)
	item.LibraryID = types.LibraryID(libraryID)
	item.ParentID = types.ItemID(parentID)
	item.Kind = types.ItemKind(kind)
	item.LinkMode = types.LinkMode(linkMode)
	return &item, nil
}

func (s *sqliteStore) queryItems(ctx context.Context, query string, args ...any) ([]*types.Item, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrStore, "failed to query items")
	}
	defer func() { _ = rows.Close() }()

	var items []*types.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrStore, "failed to read item")
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrStore, "failed to read items")
	}
	return items, nil
}

func (s *sqliteStore) insertItem(ctx context.Context, item *types.Item) (*types.Item, error) {
	if item.Key == "" {
		item.Key = newKey()
	}
	if item.LibraryID == 0 {
		item.LibraryID = DefaultLibraryID
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO items (key, library_id, kind, parent_id, title, link_mode, path, content_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		item.Key, int64(item.LibraryID), string(item.Kind), int64(item.ParentID),
		item.Title, string(item.LinkMode), item.Path, item.ContentType,
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrStore, "failed to insert item")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrStore, "failed to read item id")
	}
	item.ID = types.ItemID(id)
	return item, nil
}

func (s *sqliteStore) updateItem(ctx context.Context, id types.ItemID, column string, value string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE items SET `+column+` = ? WHERE id = ?`, value, int64(id))
	if err != nil {
		return errors.Wrapf(err, errors.ErrStore, "failed to update %s of item %d", column, id)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Newf(errors.ErrItemNotFound, "item %d not found", id)
	}
	return nil
}

// Get implements types.ItemStore
func (s *sqliteStore) Get(ctx context.Context, id types.ItemID) (*types.Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, int64(id))
	item, err := scanItem(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.Newf(errors.ErrItemNotFound, "item %d not found", id)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStore, "failed to load item %d", id)
	}
	return item, nil
}

// ItemByKey looks an item up by its key
func (s *sqliteStore) ItemByKey(ctx context.Context, key string) (*types.Item, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE key = ?`, strings.ToUpper(key))
	item, err := scanItem(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.Newf(errors.ErrItemNotFound, "item %s not found", key)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStore, "failed to load item %s", key)
	}
	return item, nil
}

// Children implements types.ItemStore
func (s *sqliteStore) Children(ctx context.Context, id types.ItemID) ([]*types.Item, error) {
	return s.queryItems(ctx, `SELECT `+itemColumns+` FROM items WHERE parent_id = ? ORDER BY id`, int64(id))
}

// ListItems returns every item in creation order
func (s *sqliteStore) ListItems(ctx context.Context) ([]*types.Item, error) {
	return s.queryItems(ctx, `SELECT `+itemColumns+` FROM items ORDER BY id`)
}

// CollectionItems returns the items filed directly in a collection
func (s *sqliteStore) CollectionItems(ctx context.Context, collectionKey string) ([]*types.Item, error) {
	if _, err := s.GetCollection(ctx, collectionKey); err != nil {
		return nil, err
	}
	return s.queryItems(ctx,
		`SELECT `+prefixed("i", itemColumns)+` FROM items i
		 JOIN collection_items ci ON ci.item_id = i.id
		 WHERE ci.collection_key = ? ORDER BY i.id`, collectionKey)
}

func prefixed(alias, columns string) string {
	parts := strings.Split(columns, ", ")
	for i, p := range parts {
		parts[i] = alias + "." + p
	}
	return strings.Join(parts, ", ")
}

// FilePath implements types.ItemStore
func (s *sqliteStore) FilePath(ctx context.Context, item *types.Item) (string, error) {
	return s.resolvePath(item), nil
}

func (s *sqliteStore) resolvePath(item *types.Item) string {
	if !item.IsAttachment() || item.Path == "" {
		return ""
	}
	if strings.HasPrefix(item.Path, types.StoragePrefix) {
		return filepath.Join(s.storageDir, item.Key, strings.TrimPrefix(item.Path, types.StoragePrefix))
	}
	return item.Path
}

// FileExists implements types.ItemStore
func (s *sqliteStore) FileExists(ctx context.Context, item *types.Item) (bool, error) {
	path := s.resolvePath(item)
	if path == "" {
		return false, nil
	}
	info, err := s.fs.Stat(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", path)
	}
	return !info.IsDir(), nil
}

// SetTitle implements types.ItemStore
func (s *sqliteStore) SetTitle(ctx context.Context, id types.ItemID, title string) error {
	if err := s.updateItem(ctx, id, "title", title); err != nil {
		return err
	}
	s.publish(ctx, types.ActionModify, id)
	return nil
}

// LinkFromFile implements types.ItemStore
func (s *sqliteStore) LinkFromFile(ctx context.Context, rec types.LinkedFileRecord) (*types.Item, error) {
	if !filepath.IsAbs(rec.Path) {
		return nil, errors.Newf(errors.ErrInvalidInput, "linked file path must be absolute: %s", rec.Path)
	}
	if rec.ParentItemID != 0 {
		if _, err := s.Get(ctx, rec.ParentItemID); err != nil {
			return nil, err
		}
	}

	title := rec.Title
	if title == "" {
		title = sanitize.BaseName(rec.Path)
	}
	contentType := rec.ContentType
	if contentType == "" {
		contentType = contentTypeFor(rec.Path)
	}

	item, err := s.insertItem(ctx, &types.Item{
		LibraryID:   rec.LibraryID,
		Kind:        types.KindAttachment,
		ParentID:    rec.ParentItemID,
		Title:       title,
		LinkMode:    types.LinkModeLinked,
		Path:        rec.Path,
		ContentType: contentType,
	})
	if err != nil {
		return nil, err
	}
	if rec.Replaces != 0 {
		if err := s.copyMemberships(ctx, rec.Replaces, item.ID); err != nil {
			_, _ = s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, int64(item.ID))
			return nil, err
		}
	}

	logger := logging.GetLogger("datastore")
	logger.Debug().
		Int64("item", int64(item.ID)).
		Int64("replaces", int64(rec.Replaces)).
		Str("path", rec.Path).
		Msg("Linked attachment created")
	s.publish(ctx, types.ActionAdd, item.ID)
	return item, nil
}

// copyMemberships files to in every collection from is filed in
func (s *sqliteStore) copyMemberships(ctx context.Context, from, to types.ItemID) error {
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO collection_items (collection_key, item_id)
		 SELECT collection_key, ? FROM collection_items WHERE item_id = ?`,
		int64(to), int64(from),
	); err != nil {
		return errors.Wrapf(err, errors.ErrStore, "failed to copy collections of item %d", from)
	}
	return nil
}

// Erase implements types.ItemStore. Child items are erased with their
// parent, and a managed attachment's storage directory is removed.
func (s *sqliteStore) Erase(ctx context.Context, id types.ItemID) error {
	item, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	erased, err := s.eraseTree(ctx, item, map[types.ItemID]bool{})
	if err != nil {
		return err
	}
	s.publish(ctx, types.ActionDelete, erased...)
	return nil
}

func (s *sqliteStore) eraseTree(ctx context.Context, item *types.Item, seen map[types.ItemID]bool) ([]types.ItemID, error) {
	if seen[item.ID] {
		return nil, nil
	}
	seen[item.ID] = true

	var erased []types.ItemID
	children, err := s.Children(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	for _, child := range children {
		ids, err := s.eraseTree(ctx, child, seen)
		if err != nil {
			return nil, err
		}
		erased = append(erased, ids...)
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, int64(item.ID)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrItemErase, "failed to erase item %d", item.ID)
	}
	if item.IsAttachment() && item.IsManaged() {
		dir := filepath.Join(s.storageDir, item.Key)
		if err := s.fs.RemoveAll(dir); err != nil {
			logger := logging.GetLogger("datastore")
			logger.Warn().Err(err).Str("dir", dir).Msg("Failed to remove storage directory")
		}
	}
	return append(erased, item.ID), nil
}

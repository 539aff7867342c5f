package datastore

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/arthur-debert/attachlink/pkg/errors"
	"github.com/arthur-debert/attachlink/pkg/types"
)

func scanCollection(row rowScanner) (*types.Collection, error) {
	var (
		c         types.Collection
		libraryID int64
	)
	if err := row.Scan(&c.Key, &libraryID, &c.Name, &c.ParentKey); err != nil {
		return nil, err
	}
	c.LibraryID = types.LibraryID(libraryID)
	return &c, nil
}

func (s *sqliteStore) queryCollections(ctx context.Context, query string, args ...any) ([]*types.Collection, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrStore, "failed to query collections")
	}
	defer func() { _ = rows.Close() }()

	var out []*types.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrStore, "failed to read collection")
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, errors.ErrStore, "failed to read collections")
	}
	return out, nil
}

// GetCollection implements types.CollectionStore
func (s *sqliteStore) GetCollection(ctx context.Context, key string) (*types.Collection, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT key, library_id, name, parent_key FROM collections WHERE key = ?`, strings.ToUpper(key))
	c, err := scanCollection(row)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, errors.Newf(errors.ErrCollectionNotFound, "collection %s not found", key)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrStore, "failed to load collection %s", key)
	}
	return c, nil
}

// RootCollections implements types.CollectionStore
func (s *sqliteStore) RootCollections(ctx context.Context, libraryID types.LibraryID) ([]*types.Collection, error) {
	return s.queryCollections(ctx,
		`SELECT key, library_id, name, parent_key FROM collections
		 WHERE library_id = ? AND parent_key = '' ORDER BY seq`, int64(libraryID))
}

// ChildCollections implements types.CollectionStore
func (s *sqliteStore) ChildCollections(ctx context.Context, key string) ([]*types.Collection, error) {
	return s.queryCollections(ctx,
		`SELECT key, library_id, name, parent_key FROM collections
		 WHERE parent_key = ? ORDER BY seq`, key)
}

// CreateCollection adds a collection under parentKey (types.RootKey for a
// top-level collection)
func (s *sqliteStore) CreateCollection(ctx context.Context, name, parentKey string) (*types.Collection, error) {
	if strings.TrimSpace(name) == "" {
		return nil, errors.New(errors.ErrInvalidInput, "collection name must not be empty")
	}

	libraryID := DefaultLibraryID
	if parentKey != types.RootKey {
		parent, err := s.GetCollection(ctx, parentKey)
		if err != nil {
			return nil, err
		}
		parentKey = parent.Key
		libraryID = parent.LibraryID
	}

	c := &types.Collection{Key: newKey(), Name: name, LibraryID: libraryID, ParentKey: parentKey}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO collections (key, library_id, name, parent_key) VALUES (?, ?, ?, ?)`,
		c.Key, int64(c.LibraryID), c.Name, c.ParentKey,
	); err != nil {
		return nil, errors.Wrapf(err, errors.ErrStore, "failed to create collection %s", name)
	}
	return c, nil
}

// AddToCollection files an item in a collection. Adding twice is a no-op.
func (s *sqliteStore) AddToCollection(ctx context.Context, collectionKey string, id types.ItemID) error {
	c, err := s.GetCollection(ctx, collectionKey)
	if err != nil {
		return err
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO collection_items (collection_key, item_id) VALUES (?, ?)`,
		c.Key, int64(id),
	); err != nil {
		return errors.Wrapf(err, errors.ErrStore, "failed to add item %d to collection %s", id, c.Key)
	}
	s.publish(ctx, types.ActionModify, id)
	return nil
}

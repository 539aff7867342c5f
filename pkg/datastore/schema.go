package datastore

import (
	"database/sql"
	"fmt"
)

func openDBAt(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)", path))
	if err != nil {
		return nil, err
	}
	// Observers write back from inside notifications; one connection keeps
	// those writes from contending with each other.
	db.SetMaxOpenConns(1)
	return db, nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS items (
			id           INTEGER PRIMARY KEY AUTOINCREMENT,
			key          TEXT    NOT NULL UNIQUE,
			library_id   INTEGER NOT NULL DEFAULT 1,
			kind         TEXT    NOT NULL,
			parent_id    INTEGER NOT NULL DEFAULT 0,
			title        TEXT    NOT NULL DEFAULT '',
			link_mode    TEXT    NOT NULL DEFAULT '',
			path         TEXT    NOT NULL DEFAULT '',
			content_type TEXT    NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_parent ON items(parent_id);`,
		`CREATE TABLE IF NOT EXISTS collections (
			seq        INTEGER PRIMARY KEY AUTOINCREMENT,
			key        TEXT    NOT NULL UNIQUE,
			library_id INTEGER NOT NULL DEFAULT 1,
			name       TEXT    NOT NULL,
			parent_key TEXT    NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_collections_parent ON collections(library_id, parent_key);`,
		`CREATE TABLE IF NOT EXISTS collection_items (
			collection_key TEXT    NOT NULL REFERENCES collections(key) ON DELETE CASCADE,
			item_id        INTEGER NOT NULL REFERENCES items(id) ON DELETE CASCADE,
			PRIMARY KEY (collection_key, item_id)
		);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

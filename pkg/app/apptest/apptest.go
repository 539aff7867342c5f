// Package apptest opens fully wired apps on temporary directories for
// command tests.
package apptest

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/arthur-debert/attachlink/pkg/app"
	"github.com/arthur-debert/attachlink/pkg/config"
	"github.com/arthur-debert/attachlink/pkg/datastore"
	"github.com/arthur-debert/attachlink/pkg/testutil"
	"github.com/arthur-debert/attachlink/pkg/types"
	"github.com/stretchr/testify/require"
)

// Env is an app plus the temp directories it lives in
type Env struct {
	App *app.App

	// Root holds everything; Base is the conversion base directory and
	// Incoming is where files to import are created.
	Root     string
	Base     string
	Incoming string
}

// New opens an app with sync enabled and a base directory set.
// configure may adjust the config before the app is opened.
func New(t *testing.T, configure ...func(*config.Config)) *Env {
	t.Helper()
	root := t.TempDir()

	cfg := &config.Config{
		SyncTitles:    true,
		BaseDir:       filepath.Join(root, "lib"),
		PathSeparator: "/",
		RenameMemory:  config.RenameMemory{Capacity: 64, TTL: time.Minute},
		Library:       config.Library{Path: filepath.Join(root, "data")},
	}
	for _, fn := range configure {
		fn(cfg)
	}

	a, err := app.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	return &Env{
		App:      a,
		Root:     root,
		Base:     cfg.BaseDir,
		Incoming: filepath.Join(root, "incoming"),
	}
}

// Import creates a file in Incoming and imports it as a managed attachment
func (e *Env) Import(t *testing.T, name, content string, opts datastore.ImportOptions) *types.Item {
	t.Helper()
	src := testutil.CreateFile(t, e.Incoming, name, content)
	item, err := e.App.Library.ImportFile(context.Background(), src, opts)
	require.NoError(t, err)
	return item
}

// Collection creates a chain of nested collections and returns the last
func (e *Env) Collection(t *testing.T, names ...string) *types.Collection {
	t.Helper()
	parent := types.RootKey
	var c *types.Collection
	for _, name := range names {
		var err error
		c, err = e.App.Library.CreateCollection(context.Background(), name, parent)
		require.NoError(t, err)
		parent = c.Key
	}
	return c
}

// Item creates a regular item, optionally filed in a collection
func (e *Env) Item(t *testing.T, title, collectionKey string) *types.Item {
	t.Helper()
	item, err := e.App.Library.CreateItem(context.Background(), title, collectionKey)
	require.NoError(t, err)
	return item
}

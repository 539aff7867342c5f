// pkg/commands/list/list_test.go
// TEST TYPE: Integration Tests
// DEPENDENCIES: apptest (SQLite library in temp dirs)
// PURPOSE: Test item and collection listings

package list_test

import (
	"context"
	"os"
	"testing"

	"github.com/arthur-debert/attachlink/pkg/app/apptest"
	"github.com/arthur-debert/attachlink/pkg/commands/list"
	"github.com/arthur-debert/attachlink/pkg/datastore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItems_PathsAndSizes(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	parent := env.Item(t, "A Paper", "")
	att := env.Import(t, "paper.pdf", "12345", datastore.ImportOptions{ParentID: parent.ID})

	items, err := list.Items(ctx, env.App, list.Options{})
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, parent.ID, items[0].Item.ID)
	assert.Empty(t, items[0].Path)
	assert.False(t, items[0].Exists)

	assert.Equal(t, att.ID, items[1].Item.ID)
	assert.True(t, items[1].Exists)
	assert.Equal(t, int64(5), items[1].Size)
}

func TestItems_MissingFile(t *testing.T) {
	env := apptest.New(t)
	ctx := context.Background()
	att := env.Import(t, "paper.pdf", "x", datastore.ImportOptions{})
	path, err := env.App.Library.FilePath(ctx, att)
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))

	items, err := list.Items(ctx, env.App, list.Options{AttachmentsOnly: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, path, items[0].Path)
	assert.False(t, items[0].Exists)
}

func TestItems_FuzzyMatch(t *testing.T) {
	env := apptest.New(t)
	env.Item(t, "Reinforcement Learning", "")
	env.Item(t, "Graph Theory", "")

	items, err := list.Items(context.Background(), env.App, list.Options{Match: "reinlearn"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Reinforcement Learning", items[0].Item.Title)
}

func TestItems_AttachmentsOnly(t *testing.T) {
	env := apptest.New(t)
	env.Item(t, "A Paper", "")
	env.Import(t, "paper.pdf", "x", datastore.ImportOptions{})

	items, err := list.Items(context.Background(), env.App, list.Options{AttachmentsOnly: true})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.True(t, items[0].Item.IsAttachment())
}

func TestCollections_TreeOrder(t *testing.T) {
	env := apptest.New(t)
	y2024 := env.Collection(t, "Papers", "2024")
	books := env.Collection(t, "Books")

	listed, err := list.Collections(context.Background(), env.App)
	require.NoError(t, err)
	require.Len(t, listed, 3)

	assert.Equal(t, "Papers", listed[0].Path)
	assert.Equal(t, 0, listed[0].Depth)
	assert.Equal(t, y2024.Key, listed[1].Collection.Key)
	assert.Equal(t, "Papers/2024", listed[1].Path)
	assert.Equal(t, 1, listed[1].Depth)
	assert.Equal(t, books.Key, listed[2].Collection.Key)
	assert.Equal(t, "Books", listed[2].Path)
}

func TestCollections_Empty(t *testing.T) {
	env := apptest.New(t)
	listed, err := list.Collections(context.Background(), env.App)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

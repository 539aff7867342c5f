package collections_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/attachlink/pkg/collections"
	"github.com/arthur-debert/attachlink/pkg/errors"
	"github.com/arthur-debert/attachlink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCollections is an in-memory CollectionStore. children maps a parent
// key (RootKey for the library root) to the keys listed under it.
type fakeCollections struct {
	byKey    map[string]*types.Collection
	children map[string][]string
	calls    int
	err      error
}

func newFake() *fakeCollections {
	return &fakeCollections{
		byKey:    make(map[string]*types.Collection),
		children: make(map[string][]string),
	}
}

func (f *fakeCollections) add(parent, key, name string) *types.Collection {
	c, ok := f.byKey[key]
	if !ok {
		c = &types.Collection{Key: key, Name: name, LibraryID: 1, ParentKey: parent}
		f.byKey[key] = c
	}
	f.children[parent] = append(f.children[parent], key)
	return c
}

func (f *fakeCollections) list(parent string) []*types.Collection {
	var out []*types.Collection
	for _, k := range f.children[parent] {
		out = append(out, f.byKey[k])
	}
	return out
}

func (f *fakeCollections) GetCollection(ctx context.Context, key string) (*types.Collection, error) {
	return f.byKey[key], nil
}

func (f *fakeCollections) RootCollections(ctx context.Context, libraryID types.LibraryID) ([]*types.Collection, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.list(types.RootKey), nil
}

func (f *fakeCollections) ChildCollections(ctx context.Context, key string) ([]*types.Collection, error) {
	f.calls++
	return f.list(key), nil
}

func TestResolve_NestedPath(t *testing.T) {
	store := newFake()
	store.add(types.RootKey, "P", "Papers")
	target := store.add("P", "Y", "2024")

	r := collections.NewResolver(store)

	got, err := r.Resolve(context.Background(), target, "/")
	require.NoError(t, err)
	assert.Equal(t, "Papers/2024", got)

	got, err = r.Resolve(context.Background(), target, `\`)
	require.NoError(t, err)
	assert.Equal(t, `Papers\2024`, got)
}

func TestResolve_TopLevel(t *testing.T) {
	store := newFake()
	target := store.add(types.RootKey, "P", "Papers")

	got, err := collections.NewResolver(store).Resolve(context.Background(), target, "/")
	require.NoError(t, err)
	assert.Equal(t, "Papers", got)
}

func TestResolve_NilCollection(t *testing.T) {
	store := newFake()
	got, err := collections.NewResolver(store).Resolve(context.Background(), nil, "/")
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, store.calls, "library root needs no tree")
}

func TestResolve_SanitizesEachSegment(t *testing.T) {
	store := newFake()
	store.add(types.RootKey, "R", "Reports: 2024")
	target := store.add("R", "D", `Q1/Q2 <draft>`)

	got, err := collections.NewResolver(store).Resolve(context.Background(), target, "/")
	require.NoError(t, err)
	assert.Equal(t, "Reports 2024/Q1Q2 draft", got)
}

func TestResolve_UnreachableCollectionIsEmpty(t *testing.T) {
	store := newFake()
	store.add(types.RootKey, "P", "Papers")
	orphan := &types.Collection{Key: "X", Name: "Orphan", LibraryID: 1}

	got, err := collections.NewResolver(store).Resolve(context.Background(), orphan, "/")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBuildTree_MultiplyListedCollection(t *testing.T) {
	store := newFake()
	store.add(types.RootKey, "A", "Alpha")
	store.add(types.RootKey, "B", "Beta")
	store.add("A", "S", "Shared")
	store.add("B", "S", "Shared")
	store.add("S", "L", "Leaf")

	r := collections.NewResolver(store)
	tree, err := r.BuildTree(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, 4, tree.Len())
	assert.Equal(t, []string{"S"}, tree.Children["A"])
	assert.Equal(t, []string{"S"}, tree.Children["B"])
	assert.Equal(t, []string{"L"}, tree.Children["S"], "shared collection expanded once")

	path, err := collections.PathFor(tree, "L", "/")
	require.NoError(t, err)
	assert.Equal(t, "Alpha/Shared/Leaf", path, "first recorded parent wins")
}

func TestBuildTree_ReentrantGraphTerminates(t *testing.T) {
	store := newFake()
	store.add(types.RootKey, "A", "Alpha")
	store.add("A", "B", "Beta")
	store.add("B", "A", "Alpha")

	tree, err := collections.NewResolver(store).BuildTree(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, tree.Len())

	path, err := collections.PathFor(tree, "B", "/")
	require.NoError(t, err)
	assert.Equal(t, "Alpha/Beta", path)
}

func TestBuildTree_StoreError(t *testing.T) {
	store := newFake()
	store.err = stderrors.New("database is locked")

	_, err := collections.NewResolver(store).BuildTree(context.Background(), 1)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStore))
}

func TestPathFor_CycleIsSurfaced(t *testing.T) {
	tree := types.NewCollectionTree()
	tree.Add("B", &types.Collection{Key: "A", Name: "Alpha"})
	tree.Add("A", &types.Collection{Key: "B", Name: "Beta"})

	path, err := collections.PathFor(tree, "A", "/")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCollectionCycle))
	assert.Equal(t, "Beta/Alpha", path, "partial path is returned with the error")
}

func TestPathFor_MissingKeyStopsAscent(t *testing.T) {
	tree := types.NewCollectionTree()
	tree.Add("GONE", &types.Collection{Key: "C", Name: "Child"})

	path, err := collections.PathFor(tree, "C", "/")
	require.NoError(t, err)
	assert.Equal(t, "Child", path)
}

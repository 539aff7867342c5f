package titlesync_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/attachlink/pkg/filesystem"
	"github.com/arthur-debert/attachlink/pkg/notifier"
	"github.com/arthur-debert/attachlink/pkg/rename"
	"github.com/arthur-debert/attachlink/pkg/testutil"
	"github.com/arthur-debert/attachlink/pkg/titlesync"
	"github.com/arthur-debert/attachlink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	lib    *testutil.MockLibrary
	memory *rename.Memory
	policy *titlesync.Policy
}

func newFixture(sync bool) *fixture {
	lib := testutil.NewMockLibrary(filesystem.NewMemory(), "/storage")
	mem := rename.NewMemory()
	return &fixture{
		lib:    lib,
		memory: mem,
		policy: titlesync.New(lib, mem, testutil.StaticPreferences{Sync: sync}),
	}
}

func TestSync_TitleFromFilename(t *testing.T) {
	f := newFixture(true)
	item := f.lib.AddLinked(0, "/lib/Smith 2020.pdf", "PDF")

	changed, err := f.policy.Sync(context.Background(), item.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "Smith 2020", f.lib.Item(item.ID).Title)
}

func TestSync_NoWriteWhenTitleAlreadyMatches(t *testing.T) {
	f := newFixture(true)
	item := f.lib.AddLinked(0, "/lib/paper.pdf", "paper")

	changed, err := f.policy.Sync(context.Background(), item.ID)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Zero(t, f.lib.CountCalls("SetTitle"))
}

func TestSync_TitleEqualToFullFilenameIsLeftAlone(t *testing.T) {
	f := newFixture(true)
	item := f.lib.AddLinked(0, "/lib/paper.pdf", "paper.pdf")

	changed, err := f.policy.Sync(context.Background(), item.ID)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "paper.pdf", f.lib.Item(item.ID).Title)
}

func TestSync_RememberedRenameIsConsumed(t *testing.T) {
	f := newFixture(true)
	item := f.lib.AddLinked(0, "/lib/new.pdf", "new.pdf")
	f.memory.RenameObserved(types.RenameEvent{ItemID: item.ID, Path: "/lib/new.pdf", Filename: "new.pdf"})

	changed, err := f.policy.Sync(context.Background(), item.ID)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, "new", f.lib.Item(item.ID).Title)
	assert.Equal(t, 0, f.memory.Len())
}

func TestSync_Disabled(t *testing.T) {
	f := newFixture(false)
	item := f.lib.AddLinked(0, "/lib/Smith 2020.pdf", "PDF")

	changed, err := f.policy.Sync(context.Background(), item.ID)
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, "PDF", f.lib.Item(item.ID).Title)
}

func TestSync_SkipsNonAttachmentsAndMissingPaths(t *testing.T) {
	f := newFixture(true)
	regular := f.lib.AddRegular("A Paper")
	noFile := f.lib.AddLinked(0, "", "orphan")

	for _, id := range []types.ItemID{regular.ID, noFile.ID} {
		changed, err := f.policy.Sync(context.Background(), id)
		require.NoError(t, err)
		assert.False(t, changed)
	}
	assert.Zero(t, f.lib.CountCalls("SetTitle"))
}

func TestSync_DottedNames(t *testing.T) {
	f := newFixture(true)
	multi := f.lib.AddLinked(0, "/lib/data.tar.gz", "x")
	dotfile := f.lib.AddLinked(0, "/lib/.bashrc", "x")

	_, err := f.policy.Sync(context.Background(), multi.ID)
	require.NoError(t, err)
	_, err = f.policy.Sync(context.Background(), dotfile.ID)
	require.NoError(t, err)

	assert.Equal(t, "data.tar", f.lib.Item(multi.ID).Title)
	assert.Equal(t, ".bashrc", f.lib.Item(dotfile.ID).Title)
}

func TestNotify_ContainsPerItemFailures(t *testing.T) {
	f := newFixture(true)
	first := f.lib.AddLinked(0, "/lib/a.pdf", "A")
	second := f.lib.AddLinked(0, "/lib/b.pdf", "B")

	f.policy.Notify(context.Background(), types.Event{
		Type:   types.EventItem,
		Action: types.ActionModify,
		IDs:    []types.ItemID{first.ID, 999, second.ID},
	})

	assert.Equal(t, "a", f.lib.Item(first.ID).Title)
	assert.Equal(t, "b", f.lib.Item(second.ID).Title)
}

func TestNotify_IgnoresOtherActions(t *testing.T) {
	f := newFixture(true)
	item := f.lib.AddLinked(0, "/lib/a.pdf", "A")

	f.policy.Notify(context.Background(), types.Event{Type: types.EventItem, Action: types.ActionAdd, IDs: []types.ItemID{item.ID}})
	f.policy.Notify(context.Background(), types.Event{Type: types.EventCollection, Action: types.ActionModify, IDs: []types.ItemID{item.ID}})

	assert.Equal(t, "A", f.lib.Item(item.ID).Title)
}

func TestNotify_SaveErrorIsContained(t *testing.T) {
	f := newFixture(true)
	item := f.lib.AddLinked(0, "/lib/a.pdf", "A")
	f.lib.SetError("SetTitle", stderrors.New("readonly"))

	assert.NotPanics(t, func() {
		f.policy.Notify(context.Background(), types.Event{Type: types.EventItem, Action: types.ActionRefresh, IDs: []types.ItemID{item.ID}})
	})
	assert.Equal(t, "A", f.lib.Item(item.ID).Title)
}

func TestRegister_SettlesWithoutLoop(t *testing.T) {
	f := newFixture(true)
	bus := notifier.New()
	f.lib.Notifier = bus
	f.policy.Register(bus)

	item := f.lib.AddLinked(0, "/lib/Report Final.pdf", "PDF")

	// An unrelated edit triggers the policy, whose own save triggers it
	// once more; the second pass finds nothing to do.
	require.NoError(t, f.lib.SetTitle(context.Background(), item.ID, "Something else"))

	assert.Equal(t, "Report Final", f.lib.Item(item.ID).Title)
	assert.Equal(t, 2, f.lib.CountCalls("SetTitle"))
}

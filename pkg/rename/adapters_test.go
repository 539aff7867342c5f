package rename_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/attachlink/pkg/filesystem"
	"github.com/arthur-debert/attachlink/pkg/rename"
	"github.com/arthur-debert/attachlink/pkg/testutil"
	"github.com/arthur-debert/attachlink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestObservedFileRenamer_RecordsResult(t *testing.T) {
	next := &testutil.MockFileRenamer{}
	next.On("RenameFile", mock.Anything, "/lib/old.pdf", "new.pdf").Return("new.pdf", nil)
	mem := rename.NewMemory()

	r := rename.NewObservedFileRenamer(next, mem)
	got, err := r.RenameFile(context.Background(), "/lib/old.pdf", "new.pdf")

	require.NoError(t, err)
	assert.Equal(t, "new.pdf", got)
	assert.True(t, mem.Consume(99, "/lib/new.pdf"))
	next.AssertExpectations(t)
}

func TestObservedFileRenamer_RecordsOriginalNameOnFailure(t *testing.T) {
	next := &testutil.MockFileRenamer{}
	next.On("RenameFile", mock.Anything, "/lib/old.pdf", "taken.pdf").Return("", nil)
	mem := rename.NewMemory()

	r := rename.NewObservedFileRenamer(next, mem)
	got, err := r.RenameFile(context.Background(), "/lib/old.pdf", "taken.pdf")

	require.NoError(t, err)
	assert.Empty(t, got, "result is passed through unchanged")
	assert.True(t, mem.Consume(1, "/lib/old.pdf"))
}

func TestObservedFileRenamer_RecordsOnError(t *testing.T) {
	next := &testutil.MockFileRenamer{}
	next.On("RenameFile", mock.Anything, `C:\lib\old.pdf`, "new.pdf").Return("", stderrors.New("locked"))
	mem := rename.NewMemory()

	r := rename.NewObservedFileRenamer(next, mem)
	_, err := r.RenameFile(context.Background(), `C:\lib\old.pdf`, "new.pdf")

	assert.Error(t, err)
	assert.Equal(t, 1, mem.Len())
}

func newAttachmentFixture(t *testing.T) (*testutil.MockLibrary, *types.Item, *rename.Memory, *rename.ObservedAttachmentRenamer) {
	t.Helper()
	lib := testutil.NewMockLibrary(filesystem.NewMemory(), "/storage")
	item := lib.AddManaged(0, "paper.pdf", "Paper", "%PDF")
	mem := rename.NewMemory()
	return lib, item, mem, rename.NewObservedAttachmentRenamer(lib, lib, mem)
}

func TestObservedAttachmentRenamer_DifferentName(t *testing.T) {
	lib, item, mem, r := newAttachmentFixture(t)

	ok, err := r.RenameAttachmentFile(context.Background(), item, "smith-2020.pdf", types.RenameOptions{})
	require.NoError(t, err)
	assert.True(t, ok)

	stored := lib.Item(item.ID)
	assert.Equal(t, "storage:smith-2020.pdf", stored.Path)
	assert.True(t, mem.Consume(item.ID, lib.ResolvePath(stored)))
	assert.Equal(t, 1, lib.CountCalls("RenameAttachmentFile"))
}

func TestObservedAttachmentRenamer_DelegateRefuses(t *testing.T) {
	lib, item, mem, r := newAttachmentFixture(t)
	testutil.WriteFS(t, lib.FS, "/storage/"+item.Key+"/taken.pdf", "other")

	ok, err := r.RenameAttachmentFile(context.Background(), item, "taken.pdf", types.RenameOptions{})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, mem.Len(), "failed rename leaves no record")
}

func TestObservedAttachmentRenamer_SameName(t *testing.T) {
	lib, item, mem, r := newAttachmentFixture(t)

	ok, err := r.RenameAttachmentFile(context.Background(), item, "paper.pdf", types.RenameOptions{})
	require.NoError(t, err)
	assert.True(t, ok)

	assert.Zero(t, lib.CountCalls("RenameAttachmentFile"), "wrapped rename is not called")
	assert.Equal(t, 1, lib.CountCalls("RelinkAttachmentFile"))
	assert.Equal(t, 1, lib.CountCalls("SetTitle"), "title re-saved to force a modify")
	assert.Equal(t, "Paper", lib.Item(item.ID).Title)
	assert.True(t, mem.Consume(item.ID, "/storage/"+item.Key+"/paper.pdf"))
}

func TestObservedAttachmentRenamer_SameNameFailureLeavesNoRecord(t *testing.T) {
	for _, method := range []string{"RelinkAttachmentFile", "Get", "SetTitle"} {
		t.Run(method, func(t *testing.T) {
			lib, item, mem, r := newAttachmentFixture(t)
			lib.SetError(method, stderrors.New("database is locked"))

			ok, err := r.RenameAttachmentFile(context.Background(), item, "paper.pdf", types.RenameOptions{})
			assert.Error(t, err)
			assert.False(t, ok)
			assert.Equal(t, 0, mem.Len())
			assert.False(t, mem.Consume(item.ID, "/storage/"+item.Key+"/paper.pdf"))
		})
	}
}

func TestObservedAttachmentRenamer_MissingPath(t *testing.T) {
	lib := testutil.NewMockLibrary(filesystem.NewMemory(), "/storage")
	item := lib.AddLinked(0, "", "no file")
	next := &testutil.MockAttachmentRenamer{}
	mem := rename.NewMemory()

	r := rename.NewObservedAttachmentRenamer(next, lib, mem)
	ok, err := r.RenameAttachmentFile(context.Background(), item, "x.pdf", types.RenameOptions{})

	require.NoError(t, err)
	assert.False(t, ok)
	next.AssertNotCalled(t, "RenameAttachmentFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 0, mem.Len())
}

func TestObservedAttachmentRenamer_DelegateError(t *testing.T) {
	lib, item, mem, _ := newAttachmentFixture(t)
	next := &testutil.MockAttachmentRenamer{}
	next.On("RenameAttachmentFile", mock.Anything, item, "new.pdf", types.RenameOptions{Unique: true}).
		Return(false, stderrors.New("disk full"))

	r := rename.NewObservedAttachmentRenamer(next, lib, mem)
	ok, err := r.RenameAttachmentFile(context.Background(), item, "new.pdf", types.RenameOptions{Unique: true})

	assert.Error(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, mem.Len())
	next.AssertExpectations(t)
}

func TestSyncingAutoTitler_SyncOn(t *testing.T) {
	lib := testutil.NewMockLibrary(filesystem.NewMemory(), "/storage")
	item := lib.AddLinked(0, "/lib/Smith 2020 - Deep Learning.pdf", "PDF")
	next := &testutil.MockAutoTitler{}

	a := rename.NewSyncingAutoTitler(next, lib, testutil.StaticPreferences{Sync: true})
	require.NoError(t, a.SetAutoAttachmentTitle(context.Background(), item))

	assert.Equal(t, "Smith 2020 - Deep Learning", lib.Item(item.ID).Title)
	assert.Equal(t, "Smith 2020 - Deep Learning", item.Title)
	next.AssertNotCalled(t, "SetAutoAttachmentTitle", mock.Anything, mock.Anything)
}

func TestSyncingAutoTitler_SyncOff(t *testing.T) {
	lib := testutil.NewMockLibrary(filesystem.NewMemory(), "/storage")
	item := lib.AddLinked(0, "/lib/paper.pdf", "paper")
	next := &testutil.MockAutoTitler{}
	next.On("SetAutoAttachmentTitle", mock.Anything, item).Return(nil)

	prefs := &testutil.MockPreferences{}
	prefs.On("SyncFilenameAndTitle").Return(false)

	a := rename.NewSyncingAutoTitler(next, lib, prefs)
	require.NoError(t, a.SetAutoAttachmentTitle(context.Background(), item))

	next.AssertExpectations(t)
	prefs.AssertExpectations(t)
	assert.Zero(t, lib.CountCalls("SetTitle"))
}

func TestSyncingAutoTitler_NoFilename(t *testing.T) {
	lib := testutil.NewMockLibrary(filesystem.NewMemory(), "/storage")
	item := lib.AddLinked(0, "", "untouched")

	a := rename.NewSyncingAutoTitler(lib, lib, testutil.StaticPreferences{Sync: true})
	require.NoError(t, a.SetAutoAttachmentTitle(context.Background(), item))
	assert.Equal(t, "untouched", lib.Item(item.ID).Title)
}

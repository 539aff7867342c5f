// pkg/relocate/relocate_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: in-memory FS, MockLibrary
// PURPOSE: Test the move, link, erase sequence and its skip and failure outcomes

package relocate_test

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/arthur-debert/attachlink/pkg/errors"
	"github.com/arthur-debert/attachlink/pkg/filesystem"
	"github.com/arthur-debert/attachlink/pkg/relocate"
	"github.com/arthur-debert/attachlink/pkg/testutil"
	"github.com/arthur-debert/attachlink/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newLibrary() *testutil.MockLibrary {
	return testutil.NewMockLibrary(filesystem.NewMemory(), "/storage")
}

func TestTargetDir(t *testing.T) {
	tests := []struct {
		name, base, collection, sep, want string
	}{
		{"nested", "/lib/", "Papers/2024", "/", "/lib/Papers/2024/"},
		{"base without separator", "/lib", "Papers", "/", "/lib/Papers/"},
		{"empty collection path", "/lib/", "", "/", "/lib/"},
		{"backslash", `C:\lib\`, `Papers\2024`, `\`, `C:\lib\Papers\2024\`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, relocate.TargetDir(tt.base, tt.collection, tt.sep))
		})
	}
}

func TestRelocate_Success(t *testing.T) {
	lib := newLibrary()
	parent := lib.AddRegular("A Paper")
	att := lib.AddManaged(parent.ID, "paper.pdf", "PDF", "content")

	r := relocate.New(lib.FS, lib, lib)
	result, err := r.Relocate(context.Background(), att, "/lib/", "Papers/2024", "/")
	require.NoError(t, err)

	assert.Equal(t, types.OutcomeSuccess, result.Outcome)
	assert.Equal(t, "/storage/"+att.Key+"/paper.pdf", result.Source)
	assert.Equal(t, "/lib/Papers/2024/paper.pdf", result.Destination)
	assert.Equal(t, "content", testutil.ReadFS(t, lib.FS, "/lib/Papers/2024/paper.pdf"))
	assert.False(t, testutil.ExistsFS(t, lib.FS, result.Source))

	assert.Nil(t, lib.Item(att.ID), "original record erased")
	linked := lib.Item(result.NewItemID)
	require.NotNil(t, linked)
	assert.Equal(t, types.LinkModeLinked, linked.LinkMode)
	assert.Equal(t, "/lib/Papers/2024/paper.pdf", linked.Path)
	assert.Equal(t, parent.ID, linked.ParentID)
	assert.Equal(t, att.LibraryID, linked.LibraryID)
	assert.Equal(t, "PDF", linked.Title, "auto title ran on the new record")
}

func TestRelocate_OrderIsLinkThenErase(t *testing.T) {
	lib := newLibrary()
	att := lib.AddManaged(0, "paper.pdf", "PDF", "x")

	_, err := relocate.New(lib.FS, lib, lib).Relocate(context.Background(), att, "/lib/", "", "/")
	require.NoError(t, err)

	var order []string
	for _, c := range lib.Calls() {
		for _, m := range []string{"LinkFromFile", "SetAutoAttachmentTitle", "Erase"} {
			if len(c) >= len(m) && c[:len(m)] == m {
				order = append(order, m)
			}
		}
	}
	assert.Equal(t, []string{"LinkFromFile", "SetAutoAttachmentTitle", "Erase"}, order)
}

func TestRelocate_LinkedRecordReplacesOriginal(t *testing.T) {
	lib := newLibrary()
	att := lib.AddManaged(0, "paper.pdf", "PDF", "x")

	_, err := relocate.New(lib.FS, lib, lib).Relocate(context.Background(), att, "/lib/", "", "/")
	require.NoError(t, err)
	assert.Contains(t, lib.Calls(), fmt.Sprintf("LinkFromFile[/lib/paper.pdf %d]", att.ID))
}

func TestRelocate_SkipsFileAlreadyInPlace(t *testing.T) {
	lib := newLibrary()
	testutil.WriteFS(t, lib.FS, "/lib/Papers/paper.pdf", "x")
	att := lib.AddLinked(0, "/lib/Papers/paper.pdf", "paper")

	r := relocate.New(lib.FS, lib, lib)
	planned, err := r.Plan(context.Background(), att, "/lib/", "Papers", "/")
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeSkipped, planned.Outcome)
	assert.Equal(t, relocate.ReasonInPlace, planned.Reason)

	result, err := r.Relocate(context.Background(), att, "/lib/", "Papers", "/")
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeSkipped, result.Outcome)
	assert.Equal(t, relocate.ReasonInPlace, result.Reason)
	assert.False(t, testutil.ExistsFS(t, lib.FS, "/lib/Papers/paper (1).pdf"))
	assert.NotNil(t, lib.Item(att.ID))
	assert.Zero(t, lib.CountCalls("LinkFromFile"))
}

func TestRelocate_Collision(t *testing.T) {
	lib := newLibrary()
	testutil.WriteFS(t, lib.FS, "/lib/paper.pdf", "existing")
	att := lib.AddManaged(0, "paper.pdf", "PDF", "new")

	result, err := relocate.New(lib.FS, lib, lib).Relocate(context.Background(), att, "/lib/", "", "/")
	require.NoError(t, err)

	assert.Equal(t, "/lib/paper (1).pdf", result.Destination)
	assert.Equal(t, "existing", testutil.ReadFS(t, lib.FS, "/lib/paper.pdf"))
	assert.Equal(t, "new", testutil.ReadFS(t, lib.FS, "/lib/paper (1).pdf"))
}

func TestRelocate_SkipsMissingFile(t *testing.T) {
	lib := newLibrary()
	att := lib.AddLinked(0, "/gone/paper.pdf", "PDF")

	result, err := relocate.New(lib.FS, lib, lib).Relocate(context.Background(), att, "/lib/", "Papers", "/")
	require.NoError(t, err)

	assert.Equal(t, types.OutcomeSkipped, result.Outcome)
	assert.Equal(t, relocate.ReasonFileMissing, result.Reason)
	assert.NotNil(t, lib.Item(att.ID))
	assert.False(t, testutil.ExistsFS(t, lib.FS, "/lib/Papers"))
	assert.Zero(t, lib.CountCalls("LinkFromFile"))
	assert.Zero(t, lib.CountCalls("Erase"))
}

func TestRelocate_SkipsNoPath(t *testing.T) {
	lib := newLibrary()
	att := lib.AddLinked(0, "", "orphan")

	result, err := relocate.New(lib.FS, lib, lib).Relocate(context.Background(), att, "/lib/", "", "/")
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeSkipped, result.Outcome)
	assert.Equal(t, relocate.ReasonNoPath, result.Reason)
}

func TestRelocate_LinkFailureLeavesMovedFile(t *testing.T) {
	lib := newLibrary()
	att := lib.AddManaged(0, "paper.pdf", "PDF", "x")
	lib.SetError("LinkFromFile", stderrors.New("db locked"))

	result, err := relocate.New(lib.FS, lib, lib).Relocate(context.Background(), att, "/lib/", "", "/")
	require.Error(t, err)

	assert.True(t, errors.IsErrorCode(err, errors.ErrLinkCreate))
	assert.Equal(t, types.OutcomeFailed, result.Outcome)
	assert.Equal(t, err, result.Err)
	assert.True(t, testutil.ExistsFS(t, lib.FS, "/lib/paper.pdf"), "no rollback of the move")
	assert.NotNil(t, lib.Item(att.ID), "original record kept")
}

func TestRelocate_EraseFailure(t *testing.T) {
	lib := newLibrary()
	att := lib.AddManaged(0, "paper.pdf", "PDF", "x")
	lib.SetError("Erase", stderrors.New("readonly"))

	result, err := relocate.New(lib.FS, lib, lib).Relocate(context.Background(), att, "/lib/", "", "/")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrItemErase))
	assert.NotZero(t, result.NewItemID)
}

func TestRelocate_AutoTitleFailureIsNotFatal(t *testing.T) {
	lib := newLibrary()
	att := lib.AddManaged(0, "paper.pdf", "PDF", "x")

	titler := &testutil.MockAutoTitler{}
	titler.On("SetAutoAttachmentTitle", mock.Anything, mock.Anything).Return(stderrors.New("boom"))

	result, err := relocate.New(lib.FS, lib, titler).Relocate(context.Background(), att, "/lib/", "", "/")
	require.NoError(t, err)
	assert.Equal(t, types.OutcomeSuccess, result.Outcome)
	titler.AssertExpectations(t)
}

func TestPlan_DoesNotMutate(t *testing.T) {
	lib := newLibrary()
	att := lib.AddManaged(0, "paper.pdf", "PDF", "x")

	result, err := relocate.New(lib.FS, lib, lib).Plan(context.Background(), att, "/lib", "Papers", "/")
	require.NoError(t, err)

	assert.Equal(t, types.OutcomeSuccess, result.Outcome)
	assert.Equal(t, "/lib/Papers/paper.pdf", result.Destination)
	assert.True(t, testutil.ExistsFS(t, lib.FS, result.Source))
	assert.False(t, testutil.ExistsFS(t, lib.FS, "/lib/Papers"))
	assert.NotNil(t, lib.Item(att.ID))
}

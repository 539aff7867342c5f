package testutil

import (
	"context"

	"github.com/arthur-debert/attachlink/pkg/types"
	"github.com/stretchr/testify/mock"
)

// StaticPreferences is a fixed types.Preferences
type StaticPreferences struct {
	Sync    bool
	BaseDir string
}

func (p StaticPreferences) SyncFilenameAndTitle() bool { return p.Sync }
func (p StaticPreferences) BaseAttachmentPath() string { return p.BaseDir }

// MockPreferences is a testify mock of types.Preferences
type MockPreferences struct {
	mock.Mock
}

func (m *MockPreferences) SyncFilenameAndTitle() bool {
	return m.Called().Bool(0)
}

func (m *MockPreferences) BaseAttachmentPath() string {
	return m.Called().String(0)
}

// MockAutoTitler is a testify mock of types.AutoTitler
type MockAutoTitler struct {
	mock.Mock
}

func (m *MockAutoTitler) SetAutoAttachmentTitle(ctx context.Context, item *types.Item) error {
	return m.Called(ctx, item).Error(0)
}

// MockFileRenamer is a testify mock of types.FileRenamer
type MockFileRenamer struct {
	mock.Mock
}

func (m *MockFileRenamer) RenameFile(ctx context.Context, path, newName string) (string, error) {
	args := m.Called(ctx, path, newName)
	return args.String(0), args.Error(1)
}

// MockAttachmentRenamer is a testify mock of types.AttachmentRenamer
type MockAttachmentRenamer struct {
	mock.Mock
}

func (m *MockAttachmentRenamer) RenameAttachmentFile(ctx context.Context, item *types.Item, newName string, opts types.RenameOptions) (bool, error) {
	args := m.Called(ctx, item, newName, opts)
	return args.Bool(0), args.Error(1)
}

func (m *MockAttachmentRenamer) RelinkAttachmentFile(ctx context.Context, item *types.Item, path string) error {
	return m.Called(ctx, item, path).Error(0)
}

package datastore

import (
	"context"
	stderrors "errors"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/attachlink/pkg/errors"
	"github.com/arthur-debert/attachlink/pkg/logging"
	"github.com/arthur-debert/attachlink/pkg/sanitize"
	"github.com/arthur-debert/attachlink/pkg/types"
	"github.com/arthur-debert/attachlink/pkg/uniquename"
)

// RenameFile implements types.FileRenamer. It renames path within its
// directory and returns the new filename, or "" when a file already
// occupies the destination.
func (s *sqliteStore) RenameFile(ctx context.Context, path, newName string) (string, error) {
	newName = sanitize.Name(newName)
	if newName == "" {
		return "", errors.New(errors.ErrInvalidInput, "new filename is empty")
	}

	dst := filepath.Join(filepath.Dir(path), newName)
	if dst == path {
		return newName, nil
	}
	if _, err := s.fs.Stat(dst); err == nil {
		return "", nil
	} else if !stderrors.Is(err, fs.ErrNotExist) {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to stat %s", dst)
	}

	if err := s.fs.Rename(path, dst); err != nil {
		return "", errors.Wrapf(err, errors.ErrFileRename, "failed to rename %s to %s", path, newName)
	}
	return newName, nil
}

// RenameAttachmentFile implements types.AttachmentRenamer. The file rename
// goes through the configured file renamer; the stored path follows it.
func (s *sqliteStore) RenameAttachmentFile(ctx context.Context, item *types.Item, newName string, opts types.RenameOptions) (bool, error) {
	logger := logging.GetLogger("datastore.rename")

	stored, err := s.Get(ctx, item.ID)
	if err != nil {
		return false, err
	}
	path := s.resolvePath(stored)
	if path == "" {
		return false, nil
	}
	if exists, err := s.FileExists(ctx, stored); err != nil || !exists {
		return false, err
	}

	dir := filepath.Dir(path)
	if opts.Unique {
		newName, err = uniquename.Uniquify(s.fs, dir, sanitize.Name(newName))
		if err != nil {
			return false, err
		}
	} else if opts.Overwrite && newName != filepath.Base(path) {
		dst := filepath.Join(dir, newName)
		if err := s.fs.Remove(dst); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
			return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to replace %s", dst)
		}
	}

	result, err := s.fileRenamer().RenameFile(ctx, path, newName)
	if err != nil {
		return false, err
	}
	if result == "" {
		logger.Debug().Int64("item", int64(item.ID)).Str("name", newName).Msg("Destination exists, not renamed")
		return false, nil
	}

	if err := s.storePath(ctx, stored, filepath.Join(dir, result)); err != nil {
		return false, err
	}
	s.publish(ctx, types.ActionModify, item.ID)
	return true, nil
}

// RelinkAttachmentFile implements types.AttachmentRenamer
func (s *sqliteStore) RelinkAttachmentFile(ctx context.Context, item *types.Item, path string) error {
	stored, err := s.Get(ctx, item.ID)
	if err != nil {
		return err
	}
	if !stored.IsAttachment() {
		return errors.Newf(errors.ErrInvalidInput, "item %d is not an attachment", item.ID)
	}
	if err := s.storePath(ctx, stored, path); err != nil {
		return err
	}
	s.publish(ctx, types.ActionModify, item.ID)
	return nil
}

// storePath records path for an attachment, keeping managed files in the
// storage: form
func (s *sqliteStore) storePath(ctx context.Context, item *types.Item, path string) error {
	value := path
	if strings.HasPrefix(item.Path, types.StoragePrefix) {
		value = types.StoragePrefix + filepath.Base(path)
	}
	return s.updateItem(ctx, item.ID, "path", value)
}

// SetAutoAttachmentTitle implements types.AutoTitler with the host's
// default: a title derived from the content type.
func (s *sqliteStore) SetAutoAttachmentTitle(ctx context.Context, item *types.Item) error {
	stored, err := s.Get(ctx, item.ID)
	if err != nil {
		return err
	}
	title := types.AutoTitleFor(stored.ContentType, sanitize.BaseName(s.resolvePath(stored)))
	if err := s.updateItem(ctx, item.ID, "title", title); err != nil {
		return err
	}
	item.Title = title
	s.publish(ctx, types.ActionModify, item.ID)
	return nil
}

package datastore

import (
	"context"
	"mime"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/attachlink/pkg/errors"
	"github.com/arthur-debert/attachlink/pkg/logging"
	"github.com/arthur-debert/attachlink/pkg/sanitize"
	"github.com/arthur-debert/attachlink/pkg/types"
)

// contentTypeFor guesses a content type from the file extension
func contentTypeFor(path string) string {
	ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct
}

// CreateItem adds a regular item, optionally filing it in a collection
func (s *sqliteStore) CreateItem(ctx context.Context, title string, collectionKey string) (*types.Item, error) {
	if collectionKey != "" {
		if _, err := s.GetCollection(ctx, collectionKey); err != nil {
			return nil, err
		}
	}

	item, err := s.insertItem(ctx, &types.Item{Kind: types.KindRegular, Title: title})
	if err != nil {
		return nil, err
	}
	s.publish(ctx, types.ActionAdd, item.ID)

	if collectionKey != "" {
		if err := s.AddToCollection(ctx, collectionKey, item.ID); err != nil {
			return nil, err
		}
	}
	return item, nil
}

// ImportFile copies src into library storage as a managed attachment. The
// title is opts.Title when given, otherwise the file's name.
func (s *sqliteStore) ImportFile(ctx context.Context, src string, opts ImportOptions) (*types.Item, error) {
	logger := logging.GetLogger("datastore.import")

	info, err := s.fs.Stat(src)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileNotFound, "cannot import %s", src)
	}
	if info.IsDir() {
		return nil, errors.Newf(errors.ErrInvalidInput, "cannot import directory %s", src)
	}

	libraryID := DefaultLibraryID
	if opts.ParentID != 0 {
		parent, err := s.Get(ctx, opts.ParentID)
		if err != nil {
			return nil, err
		}
		if !parent.IsRegular() {
			return nil, errors.Newf(errors.ErrInvalidInput, "item %d cannot have attachments", parent.ID)
		}
		libraryID = parent.LibraryID
	}
	if opts.CollectionKey != "" {
		if _, err := s.GetCollection(ctx, opts.CollectionKey); err != nil {
			return nil, err
		}
	}

	filename := sanitize.Name(filepath.Base(src))
	key := newKey()
	dir := filepath.Join(s.storageDir, key)
	if err := s.fs.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
	}
	data, err := s.fs.ReadFile(src)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", src)
	}
	dst := filepath.Join(dir, filename)
	if err := s.fs.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileCreate, "failed to write %s", dst)
	}

	title := opts.Title
	if title == "" {
		title = filename
	}
	item, err := s.insertItem(ctx, &types.Item{
		Key:         key,
		LibraryID:   libraryID,
		Kind:        types.KindAttachment,
		ParentID:    opts.ParentID,
		Title:       title,
		LinkMode:    types.LinkModeImported,
		Path:        types.StoragePrefix + filename,
		ContentType: contentTypeFor(filename),
	})
	if err != nil {
		_ = s.fs.RemoveAll(dir)
		return nil, err
	}

	logger.Info().
		Int64("item", int64(item.ID)).
		Str("src", src).
		Str("stored", dst).
		Msg("File imported")
	s.publish(ctx, types.ActionAdd, item.ID)

	if opts.CollectionKey != "" && opts.ParentID == 0 {
		if err := s.AddToCollection(ctx, opts.CollectionKey, item.ID); err != nil {
			return nil, err
		}
	}
	return item, nil
}

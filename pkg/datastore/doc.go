// Package datastore is the reference library host: a SQLite database of
// items and collections plus a storage directory holding managed files.
//
// Managed attachments keep their file at <storage>/<item key>/<filename>
// and store the path as "storage:<filename>". Linked attachments store an
// absolute path. Every committed mutation is published on the notifier as
// an item event once the write has returned.
package datastore

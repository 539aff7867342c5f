// Package testutil provides utilities for testing attachlink components.
//
// Key components:
//   - MockLibrary: stateful in-memory host (items, collections, files on a
//     types.FS) that records calls and can fail on demand
//   - MockItemStore, MockPreferences: testify mocks for narrow tests
//   - file helpers for tests that touch the real filesystem
//
// Most tests should run against filesystem.NewMemory() and MockLibrary.
// Only pkg/datastore and the end-to-end app tests use the real disk.
package testutil

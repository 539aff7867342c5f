// Package types defines the core types and interfaces used throughout attachlink.
// This includes the library records (Item, Collection), the host interfaces
// the conversion and title-sync logic depend on (ItemStore, CollectionStore,
// the three rename entry points, Preferences, Notifier), and the result types
// returned by commands.
package types

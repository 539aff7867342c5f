// Package app assembles the library host, the rename observers and the
// title-sync policy into the object every command works with.
package app

import (
	"github.com/arthur-debert/attachlink/pkg/collections"
	"github.com/arthur-debert/attachlink/pkg/config"
	"github.com/arthur-debert/attachlink/pkg/datastore"
	"github.com/arthur-debert/attachlink/pkg/filesystem"
	"github.com/arthur-debert/attachlink/pkg/logging"
	"github.com/arthur-debert/attachlink/pkg/notifier"
	"github.com/arthur-debert/attachlink/pkg/paths"
	"github.com/arthur-debert/attachlink/pkg/relocate"
	"github.com/arthur-debert/attachlink/pkg/rename"
	"github.com/arthur-debert/attachlink/pkg/titlesync"
	"github.com/arthur-debert/attachlink/pkg/types"
)

// App is a library opened with every observer registered
type App struct {
	Config  *config.Config
	Paths   paths.Paths
	FS      types.FS
	Library datastore.Library
	Bus     *notifier.Bus
	Memory  *rename.Memory

	// Rename entry points, observed
	FileRenamer       types.FileRenamer
	AttachmentRenamer types.AttachmentRenamer
	AutoTitler        types.AutoTitler

	Policy    *titlesync.Policy
	Resolver  *collections.Resolver
	Relocator *relocate.Relocator

	unsubscribe func()
}

// Option customizes Open
type Option func(*options)

type options struct {
	fs    types.FS
	paths paths.Paths
}

// WithFS replaces the OS filesystem
func WithFS(fs types.FS) Option {
	return func(o *options) { o.fs = fs }
}

// WithPaths replaces the resolved directory layout
func WithPaths(p paths.Paths) Option {
	return func(o *options) { o.paths = p }
}

// Open opens the library described by cfg and wires the rename observers
// and title-sync policy around it
func Open(cfg *config.Config, opts ...Option) (*App, error) {
	logger := logging.GetLogger("app")

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.fs == nil {
		o.fs = filesystem.NewOS()
	}
	if o.paths == nil {
		p, err := paths.New(cfg.Library.Path)
		if err != nil {
			return nil, err
		}
		o.paths = p
	}

	lib, err := datastore.Open(o.paths.DatabasePath(), o.paths.StorageDir(), o.fs)
	if err != nil {
		return nil, err
	}

	a := Wire(cfg, o.fs, lib)
	a.Paths = o.paths

	logger.Debug().
		Str("library", o.paths.DatabasePath()).
		Bool("sync", cfg.SyncFilenameAndTitle()).
		Msg("Library ready")
	return a, nil
}

// Wire builds an App around an already opened library
func Wire(cfg *config.Config, fs types.FS, lib datastore.Library) *App {
	bus := notifier.New()
	memory := rename.NewMemory(
		rename.WithCapacity(cfg.RenameMemory.Capacity),
		rename.WithTTL(cfg.RenameMemory.TTL),
	)

	// Direct file renames and the file step of attachment renames share
	// one observed primitive.
	fileRenamer := rename.NewObservedFileRenamer(lib, memory)
	lib.SetFileRenamer(fileRenamer)
	lib.SetNotifier(bus)

	autoTitler := rename.NewSyncingAutoTitler(lib, lib, cfg)
	policy := titlesync.New(lib, memory, cfg)

	return &App{
		Config:            cfg,
		FS:                fs,
		Library:           lib,
		Bus:               bus,
		Memory:            memory,
		FileRenamer:       fileRenamer,
		AttachmentRenamer: rename.NewObservedAttachmentRenamer(lib, lib, memory),
		AutoTitler:        autoTitler,
		Policy:            policy,
		Resolver:          collections.NewResolver(lib),
		Relocator:         relocate.New(fs, lib, autoTitler),
		unsubscribe:       policy.Register(bus),
	}
}

// Close unregisters the policy and closes the library
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	return a.Library.Close()
}

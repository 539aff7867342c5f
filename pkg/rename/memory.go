// Package rename observes the host's rename entry points and remembers
// recent renames so the title-sync policy can tell a rename-driven
// modification from any other edit.
package rename

import (
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/arthur-debert/attachlink/pkg/logging"
	"github.com/arthur-debert/attachlink/pkg/types"
)

// Default bounds for Memory
const (
	DefaultCapacity = 256
	DefaultTTL      = 2 * time.Minute
)

// Observer receives renames seen on any of the rename pathways
type Observer interface {
	RenameObserved(ev types.RenameEvent)

	// RenameAbandoned withdraws an event recorded ahead of a rename that
	// then did not happen.
	RenameAbandoned(ev types.RenameEvent)
}

type entry struct {
	types.RenameEvent
	key string
}

// Memory is a bounded table of recent renames keyed by item id, or by
// path for file renames that carry no item id. Entries leave the table
// when consumed, when older than the TTL, or oldest-first once the table
// is over capacity.
type Memory struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	now      func() time.Time

	entries []*entry
	index   map[string]*entry
}

// Option configures a Memory
type Option func(*Memory)

// WithCapacity bounds the number of remembered renames
func WithCapacity(n int) Option {
	return func(m *Memory) {
		if n > 0 {
			m.capacity = n
		}
	}
}

// WithTTL sets how long a rename is remembered
func WithTTL(d time.Duration) Option {
	return func(m *Memory) {
		if d > 0 {
			m.ttl = d
		}
	}
}

// WithClock replaces the time source
func WithClock(now func() time.Time) Option {
	return func(m *Memory) {
		m.now = now
	}
}

// NewMemory returns an empty Memory
func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		capacity: DefaultCapacity,
		ttl:      DefaultTTL,
		now:      time.Now,
		index:    make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var _ Observer = (*Memory)(nil)

func itemKey(id types.ItemID) string {
	return "item:" + strconv.FormatInt(int64(id), 10)
}

func pathKey(path string) string {
	return "path:" + filepath.Clean(path)
}

func keyFor(ev types.RenameEvent) string {
	if ev.ItemID != 0 {
		return itemKey(ev.ItemID)
	}
	return pathKey(ev.Path)
}

// RenameObserved records ev, replacing any earlier entry for the same key
func (m *Memory) RenameObserved(ev types.RenameEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if ev.At.IsZero() {
		ev.At = m.now()
	}
	key := keyFor(ev)
	m.removeLocked(key)

	e := &entry{RenameEvent: ev, key: key}
	m.entries = append(m.entries, e)
	m.index[key] = e

	m.expireLocked()
	for len(m.entries) > m.capacity {
		m.removeLocked(m.entries[0].key)
	}

	logger := logging.GetLogger("rename.memory")

	logger.Trace().
		Int64("item", int64(ev.ItemID)).
		Str("path", ev.Path).
		Str("filename", ev.Filename).
		Int("size", len(m.entries)).
		Msg("Rename recorded")
}

// RenameAbandoned removes the entry for ev if it is still the one recorded
func (m *Memory) RenameAbandoned(ev types.RenameEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := keyFor(ev)
	if e, ok := m.index[key]; ok && filepath.Clean(e.Path) == filepath.Clean(ev.Path) {
		m.removeLocked(key)
	}
}

// Consume reports whether a remembered rename matches the item and its
// current path, and evicts the matching entry.
func (m *Memory) Consume(id types.ItemID, path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expireLocked()
	if path == "" {
		return false
	}
	clean := filepath.Clean(path)

	if id != 0 {
		key := itemKey(id)
		if e, ok := m.index[key]; ok && filepath.Clean(e.Path) == clean {
			m.removeLocked(key)
			return true
		}
	}

	key := pathKey(path)
	if _, ok := m.index[key]; ok {
		m.removeLocked(key)
		return true
	}
	return false
}

// Lookup returns the remembered rename for an item without consuming it
func (m *Memory) Lookup(id types.ItemID) (types.RenameEvent, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expireLocked()
	if e, ok := m.index[itemKey(id)]; ok {
		return e.RenameEvent, true
	}
	return types.RenameEvent{}, false
}

// Len returns the number of live entries
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.expireLocked()
	return len(m.entries)
}

func (m *Memory) expireLocked() {
	cutoff := m.now().Add(-m.ttl)
	kept := m.entries[:0]
	for _, e := range m.entries {
		if e.At.Before(cutoff) {
			delete(m.index, e.key)
			continue
		}
		kept = append(kept, e)
	}
	m.entries = kept
}

func (m *Memory) removeLocked(key string) {
	e, ok := m.index[key]
	if !ok {
		return
	}
	delete(m.index, key)
	for i, cur := range m.entries {
		if cur == e {
			m.entries = append(m.entries[:i:i], m.entries[i+1:]...)
			return
		}
	}
}

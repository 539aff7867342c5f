// Package notifier is the in-process change bus. Stores publish after
// each committed mutation and observers such as the title-sync policy
// react to it.
package notifier

import (
	"context"
	"sync"

	"github.com/arthur-debert/attachlink/pkg/logging"
	"github.com/arthur-debert/attachlink/pkg/types"
)

type subscription struct {
	id       int
	observer types.Observer
	actions  map[types.EventAction]bool
}

func (s *subscription) wants(action types.EventAction) bool {
	return len(s.actions) == 0 || s.actions[action]
}

// Bus dispatches events synchronously, on the caller's goroutine, in
// subscription order. Observers may publish from inside Notify.
type Bus struct {
	mu     sync.Mutex
	subs   []*subscription
	nextID int
}

// New returns an empty Bus
func New() *Bus {
	return &Bus{}
}

var _ types.Notifier = (*Bus)(nil)

// Subscribe registers observer for item events with the given actions,
// or for every action when none are given.
func (b *Bus) Subscribe(observer types.Observer, actions ...types.EventAction) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &subscription{id: b.nextID, observer: observer}
	if len(actions) > 0 {
		sub.actions = make(map[types.EventAction]bool, len(actions))
		for _, a := range actions {
			sub.actions[a] = true
		}
	}
	b.subs = append(b.subs, sub)

	id := sub.id
	return func() { b.unsubscribe(id) }
}

func (b *Bus) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// Notify delivers event to every matching observer. The lock is not held
// while observers run.
func (b *Bus) Notify(ctx context.Context, event types.Event) {
	if event.Type != types.EventItem || len(event.IDs) == 0 {
		return
	}

	b.mu.Lock()
	subs := make([]*subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	logger := logging.GetLogger("notifier")

	logger.Trace().
		Str("action", string(event.Action)).
		Int("ids", len(event.IDs)).
		Int("observers", len(subs)).
		Msg("Dispatching event")

	for _, s := range subs {
		if s.wants(event.Action) {
			s.observer.Notify(ctx, event)
		}
	}
}

// Len returns the number of registered observers
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

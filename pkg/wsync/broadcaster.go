package wsync

import (
	"sync"

	"github.com/cvsmeta/wsync/pkg/logging"
	"github.com/cvsmeta/wsync/pkg/state"
)

// Listener receives the set of resource paths affected by a single batch's
// flush. It is invoked synchronously, on the goroutine that performed the
// outermost batch release; per spec.md §5, a listener that panics is
// caught, logged, and does not abort the flush.
type Listener func(changed []Path)

// Broadcaster is C8: it fans out the affected-resource set to every
// registered listener at batch-completion, and additionally exposes an
// index-based state.Tracker so that pull-based consumers (e.g. a CLI
// command polling for "has anything changed under this folder") don't need
// to register a push listener at all.
type Broadcaster struct {
	mu        sync.Mutex
	listeners []Listener
	tracker   *state.Tracker
	logger    *logging.Logger
}

// NewBroadcaster creates a broadcaster with a fresh change tracker.
func NewBroadcaster(logger *logging.Logger) *Broadcaster {
	return &Broadcaster{
		tracker: state.NewTracker(),
		logger:  logger,
	}
}

// Subscribe registers a listener and returns an unsubscribe function.
func (b *Broadcaster) Subscribe(listener Listener) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, listener)
	index := len(b.listeners) - 1
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.listeners[index] = nil
	}
}

// Tracker exposes the underlying state.Tracker for pull-based polling.
func (b *Broadcaster) Tracker() *state.Tracker {
	return b.tracker
}

// Broadcast fans out changed to every registered listener and bumps the
// tracker index. It is called exactly once per batch flush, from the
// flush callback. The batch lock serializes flush callbacks for
// overlapping rules, but disjoint-rule batches may call Broadcast
// concurrently. Listeners are invoked on a snapshot of the listener list
// taken under b.mu, after b.mu is released, so concurrent Broadcast calls
// can invoke the same listener concurrently.
func (b *Broadcaster) Broadcast(changed []Path) {
	b.mu.Lock()
	listeners := append([]Listener(nil), b.listeners...)
	b.mu.Unlock()

	for _, listener := range listeners {
		if listener == nil {
			continue
		}
		b.invoke(listener, changed)
	}

	b.tracker.NotifyOfChange()
}

// invoke calls a listener, recovering from and logging any panic so that a
// single misbehaving listener never aborts the flush.
func (b *Broadcaster) invoke(listener Listener, changed []Path) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Errorf("Listener panicked: %v", r)
		}
	}()
	listener(changed)
}

// Terminate shuts down the broadcaster's tracker, releasing any blocked
// pollers.
func (b *Broadcaster) Terminate() {
	b.tracker.Terminate()
}

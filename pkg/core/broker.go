package core

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
)

const defaultEventBuffer = 100

// broker fans snapshots and events out to subscribers.
// Publishing never blocks: when a subscriber's buffer is full the oldest
// pending value is dropped in favour of the newest.
type broker struct {
	mu         sync.Mutex
	bufferSize int
	logger     *slog.Logger
	nextID     int
	subs       map[int]chan Snapshot
	watchers   map[int]*watcher
	closed     bool
	done       chan struct{}
}

type watcher struct {
	pattern string
	ch      chan Event
}

func newBroker(bufferSize int, logger *slog.Logger) *broker {
	if bufferSize <= 0 {
		bufferSize = defaultEventBuffer
	}
	return &broker{
		bufferSize: bufferSize,
		logger:     logger,
		subs:       make(map[int]chan Snapshot),
		watchers:   make(map[int]*watcher),
		done:       make(chan struct{}),
	}
}

// subscribe registers a snapshot subscriber and primes it with initial.
func (b *broker) subscribe(ctx context.Context, initial Snapshot) (<-chan Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}

	id := b.nextID
	b.nextID++
	ch := make(chan Snapshot, b.bufferSize)
	ch <- initial
	b.subs[id] = ch

	b.release(ctx, func() {
		if ch, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(ch)
		}
	})
	return ch, nil
}

// watch registers an event subscriber for ids matching pattern.
func (b *broker) watch(ctx context.Context, pattern string) (<-chan Event, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, ErrInvalidPattern
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, ErrClosed
	}

	id := b.nextID
	b.nextID++
	w := &watcher{pattern: pattern, ch: make(chan Event, b.bufferSize)}
	b.watchers[id] = w

	b.release(ctx, func() {
		if w, ok := b.watchers[id]; ok {
			delete(b.watchers, id)
			close(w.ch)
		}
	})
	return w.ch, nil
}

// release runs drop under the broker lock once ctx is done or the broker
// has been closed.
func (b *broker) release(ctx context.Context, drop func()) {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		select {
		case <-ctx.Done():
		case <-b.done:
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		drop()
		return nil
	})
}

func (b *broker) publish(snap Snapshot, events []Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	for _, ch := range b.subs {
		if dropped := offer(ch, snap); dropped {
			b.logger.Debug("snapshot subscriber lagging, dropped stale snapshot", "version", snap.Version)
		}
	}

	for _, w := range b.watchers {
		for _, e := range events {
			ok, err := doublestar.Match(w.pattern, e.ID.String())
			if err != nil || !ok {
				continue
			}
			if dropped := offer(w.ch, e); dropped {
				b.logger.Warn("event watcher lagging, dropped oldest event", "pattern", w.pattern)
			}
		}
	}
}

func (b *broker) close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	close(b.done)

	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
	for id, w := range b.watchers {
		delete(b.watchers, id)
		close(w.ch)
	}
}

func (b *broker) counts() (subs, watchers int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs), len(b.watchers)
}

// offer pushes v without blocking, evicting the oldest buffered value when
// the channel is full. It reports whether a value was evicted.
// Callers must hold the broker lock, which makes the broker the only sender.
func offer[T any](ch chan T, v T) (dropped bool) {
	for {
		select {
		case ch <- v:
			return dropped
		default:
		}
		select {
		case <-ch:
			dropped = true
		default:
		}
	}
}

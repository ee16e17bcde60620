package core

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Store owns the entry sequence, the identity allocator and the broker that
// distributes snapshots. It is the single logical owner of the diary state:
// every transition goes through Dispatch and is applied strictly in order.
type Store struct {
	mu      sync.RWMutex
	entries []Entry
	version uint64
	alloc   *Allocator
	closed  bool

	broker *broker
	ops    Operations
	logger *slog.Logger
	now    func() time.Time
}

// StoreOption configures a Store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	logger      *slog.Logger
	eventBuffer int
	now         func() time.Time
}

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(c *storeConfig) {
		c.logger = logger
	}
}

// WithEventBuffer sets the per-subscriber buffer size. Zero means default (100).
func WithEventBuffer(size int) StoreOption {
	return func(c *storeConfig) {
		c.eventBuffer = size
	}
}

// WithClock overrides the clock used to stamp events.
func WithClock(now func() time.Time) StoreOption {
	return func(c *storeConfig) {
		c.now = now
	}
}

// NewStore creates a store holding initial. The allocator is seeded one past
// the highest numeric id in initial and lives as long as the store.
func NewStore(initial []Entry, opts ...StoreOption) *Store {
	cfg := storeConfig{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}

	entries := make([]Entry, len(initial))
	for i, e := range initial {
		e.ID = IDOf(e.ID)
		entries[i] = e
	}

	s := &Store{
		entries: entries,
		alloc:   SeedFrom(entries),
		broker:  newBroker(cfg.eventBuffer, cfg.logger),
		logger:  cfg.logger,
		now:     cfg.now,
	}
	s.ops = operations{s: s}
	return s
}

// Snapshot returns the current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Version: s.version, Entries: s.entries}
}

// Operations returns the write surface. The same value is returned for the
// whole lifetime of the store, so holders of it never observe a change.
func (s *Store) Operations() Operations {
	return s.ops
}

// Dispatch applies a to the current state.
// Actions of an unknown kind, and updates or deletes of an unknown id, leave
// the state untouched and are not broadcast.
func (s *Store) Dispatch(a Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.logger.Debug("dispatch on closed store ignored", "kind", a.Kind)
		return
	}
	s.apply(a)
}

// Create allocates the next id and prepends a new entry.
func (s *Store) Create(createdDate int64, emotionID int, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		s.logger.Debug("create on closed store ignored")
		return
	}
	s.apply(CreateAction(Entry{
		ID:          s.alloc.Allocate(),
		CreatedDate: createdDate,
		EmotionID:   emotionID,
		Content:     content,
	}))
}

// Update replaces the entry whose id equals id.
// The prior record is not consulted; every field is taken from the arguments.
func (s *Store) Update(id ID, createdDate int64, emotionID int, content string) {
	s.Dispatch(UpdateAction(Entry{
		ID:          IDOf(id),
		CreatedDate: createdDate,
		EmotionID:   emotionID,
		Content:     content,
	}))
}

// Delete removes every entry whose id equals id.
func (s *Store) Delete(id ID) {
	s.Dispatch(DeleteAction(IDOf(id)))
}

// Subscribe returns a channel carrying the current snapshot followed by one
// snapshot per state-changing transition. The channel is closed when ctx is
// done or the store is closed. Each subscription holds a goroutine until then,
// so callers that stop reading should cancel ctx.
func (s *Store) Subscribe(ctx context.Context) (<-chan Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}
	return s.broker.subscribe(ctx, Snapshot{Version: s.version, Entries: s.entries})
}

// Watch observes per-entry changes for ids matching pattern (doublestar
// syntax, "*" for everything). As with Subscribe, the channel and its
// goroutine are released only when ctx is done or the store is closed.
func (s *Store) Watch(ctx context.Context, pattern string) (<-chan Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}
	return s.broker.watch(ctx, pattern)
}

// Close stops the store. Subscriber channels are closed and later intents are
// ignored. Close is idempotent.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	s.broker.close()
	return nil
}

// apply runs the reducer and broadcasts the result. Callers hold s.mu.
func (s *Store) apply(a Action) {
	a.Entry.ID = IDOf(a.Entry.ID)
	a.ID = IDOf(a.ID)

	next := Reduce(s.entries, a)
	if sameSlice(next, s.entries) {
		s.logger.Debug("transition is a no-op", "kind", a.Kind, "id", a.target())
		return
	}

	s.entries = next
	s.version++
	if a.Kind == ActionCreate {
		s.alloc.observe(a.Entry.ID)
	}

	s.logger.Debug("transition applied",
		"kind", a.Kind,
		"id", a.target(),
		"version", s.version,
		"entries", len(next),
	)

	var events []Event
	if t, ok := eventTypeOf(a.Kind); ok {
		events = []Event{{
			Type:      t,
			ID:        a.target(),
			Version:   s.version,
			Timestamp: s.now().Unix(),
		}}
	}
	s.broker.publish(Snapshot{Version: s.version, Entries: next}, events)
}

func eventTypeOf(k ActionKind) (EventType, bool) {
	switch k {
	case ActionCreate:
		return EventCreate, true
	case ActionUpdate:
		return EventUpdate, true
	case ActionDelete:
		return EventDelete, true
	}
	return "", false
}

// operations narrows a Store to its write surface.
type operations struct {
	s *Store
}

func (o operations) Create(createdDate int64, emotionID int, content string) {
	o.s.Create(createdDate, emotionID, content)
}

func (o operations) Update(id ID, createdDate int64, emotionID int, content string) {
	o.s.Update(id, createdDate, emotionID, content)
}

func (o operations) Delete(id ID) {
	o.s.Delete(id)
}

var _ Operations = (*Store)(nil)
var _ StateSource = (*Store)(nil)

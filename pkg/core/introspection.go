package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Entries         int    `json:"entries"`
	Version         uint64 `json:"version"`
	NextID          int64  `json:"next_id"`
	Subscribers     int    `json:"subscribers"`
	Watchers        int    `json:"watchers"`
	EventBufferSize int    `json:"event_buffer_size"`
	Closed          bool   `json:"closed"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	subs, watchers := s.broker.counts()
	return StoreState{
		Entries:         len(s.entries),
		Version:         s.version,
		NextID:          s.alloc.Peek(),
		Subscribers:     subs,
		Watchers:        watchers,
		EventBufferSize: s.broker.bufferSize,
		Closed:          s.closed,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)

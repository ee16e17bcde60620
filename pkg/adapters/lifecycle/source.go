// Package lifecycle exposes diary change feeds as lifecycle event sources.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/diary/pkg/core"
)

// Watcher is the part of core.Store a source needs.
type Watcher interface {
	Watch(ctx context.Context, pattern string) (<-chan core.Event, error)
}

type diarySource struct {
	watcher Watcher
	pattern string
	out     chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits the changes a store makes
// to entries whose id matches pattern. The store subscription is opened by
// Start and released when its context is done.
func NewSource(w Watcher, pattern string) lifecycle.Source {
	return &diarySource{
		watcher: w,
		pattern: pattern,
		out:     make(chan lifecycle.Event),
	}
}

func (s *diarySource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *diarySource) Start(ctx context.Context) error {
	events, err := s.watcher.Watch(ctx, s.pattern)
	if err != nil {
		return err
	}

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-events:
				if !ok {
					return nil
				}
				// core.Event implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

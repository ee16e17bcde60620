package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/diary/pkg/core"
)

// options holds the internal configuration for the diary store.
type options struct {
	logger *slog.Logger
	seed   []core.Entry
	config map[string]interface{}
}

// Option defines a functional option for configuring the diary.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		logger: nil,
		seed:   nil,
		config: make(map[string]interface{}),
	}
}

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithSeed sets the entries the store starts with.
// Without a seed (or seed file) the store starts with the two mock entries.
// Pass an empty, non-nil slice for an empty diary.
func WithSeed(entries []core.Entry) Option {
	return func(o *options) {
		o.seed = entries
	}
}

// WithSeedFile loads the initial entries from a YAML or JSON file.
// It takes precedence over WithSeed.
func WithSeedFile(path string) Option {
	return func(o *options) {
		o.config["seed_file"] = path
	}
}

// WithEventBuffer allows specifying the size of the per-subscriber buffer.
// Zero means default (100).
func WithEventBuffer(size int) Option {
	return func(o *options) {
		o.config["event_buffer"] = size
	}
}

// WithClock overrides the wall clock (mock seed dates, event timestamps).
func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.config["clock"] = now
	}
}

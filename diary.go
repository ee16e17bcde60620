package diary

import (
	"log/slog"
	"time"

	"github.com/aretw0/diary/internal/platform"
	"github.com/aretw0/diary/pkg/core"
)

// Version exposes the version of the library.
const Version = "0.1.0"

// --- Types ---

// Entry is a public alias for the diary entry.
type Entry = core.Entry

// ID is a public alias for the canonical entry identifier.
type ID = core.ID

// Store is a public alias for the diary store.
type Store = core.Store

// Snapshot is a public alias for a point-in-time view of the store.
type Snapshot = core.Snapshot

// Operations is a public alias for the write surface.
type Operations = core.Operations

// --- Configuration ---

// Option defines a functional option for configuring the diary.
type Option = platform.Option

// WithLogger sets the logger for the store.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithSeed sets the entries the store starts with.
func WithSeed(entries []Entry) Option {
	return platform.WithSeed(entries)
}

// WithSeedFile loads the initial entries from a YAML or JSON file.
func WithSeedFile(path string) Option {
	return platform.WithSeedFile(path)
}

// WithEventBuffer allows specifying the size of the per-subscriber buffer.
func WithEventBuffer(size int) Option {
	return platform.WithEventBuffer(size)
}

// WithClock overrides the wall clock.
func WithClock(now func() time.Time) Option {
	return platform.WithClock(now)
}

// --- Factory ---

// New creates a new diary store.
func New(opts ...Option) (*Store, error) {
	return platform.New(opts...)
}

// IDOf normalises v (an integer, numeric text or any other text) into an ID.
func IDOf(v any) ID {
	return core.IDOf(v)
}

// FindSeed recursively looks upwards for a diary.yaml, diary.yml or diary.json.
func FindSeed(startDir string) (string, error) {
	return platform.FindSeed(startDir)
}

package platform

import (
	"time"

	"github.com/aretw0/diary/pkg/adapters/seed"
	"github.com/aretw0/diary/pkg/core"
)

// New creates a diary store.
//
//	store, err := platform.New(platform.WithSeedFile("diary.yaml"))
//
// The initial entries come from, in order of precedence: WithSeedFile,
// WithSeed, the built-in mock entries.
func New(opts ...Option) (*core.Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	// 1. Resolve config
	now, ok := o.config["clock"].(func() time.Time)
	if !ok || now == nil {
		now = time.Now
	}
	eventBuffer, _ := o.config["event_buffer"].(int)
	seedFile, _ := o.config["seed_file"].(string)

	// 2. Resolve initial entries
	initial := o.seed
	if seedFile != "" {
		entries, err := seed.Load(seedFile, now())
		if err != nil {
			return nil, err
		}
		initial = entries
	} else if initial == nil {
		initial = seed.MockEntries(now())
	}

	if o.logger != nil {
		o.logger.Debug("diary store initialised", "entries", len(initial), "seed_file", seedFile)
	}

	// 3. Build store
	storeOpts := []core.StoreOption{
		core.WithEventBuffer(eventBuffer),
		core.WithClock(now),
	}
	if o.logger != nil {
		storeOpts = append(storeOpts, core.WithLogger(o.logger))
	}

	return core.NewStore(initial, storeOpts...), nil
}

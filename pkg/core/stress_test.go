package core_test

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/diary/pkg/core"
)

// TestStress_MixedIntents runs writers, readers and subscribers side by side.
// We want to ensure:
// 1. No panic or deadlock.
// 2. Every snapshot ever observed has unique ids.
// 3. Each subscriber sees strictly increasing versions.
func TestStress_MixedIntents(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	store := core.NewStore(seedEntries(), core.WithEventBuffer(8))
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var wg sync.WaitGroup

	// 1. Writers
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			r := rand.New(rand.NewSource(int64(w)))
			ops := store.Operations()
			for ctx.Err() == nil {
				id := core.IDOf(r.Intn(50) + 1)
				switch r.Intn(3) {
				case 0:
					ops.Create(time.Now().UnixMilli(), r.Intn(5)+1, fmt.Sprintf("writer %d", w))
				case 1:
					ops.Update(id, time.Now().UnixMilli(), r.Intn(5)+1, "updated")
				case 2:
					ops.Delete(id)
				}
			}
		}(w)
	}

	// 2. Readers
	var violations sync.Map
	for rd := 0; rd < 2; rd++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				snap := store.Snapshot()
				seen := make(map[core.ID]bool, snap.Len())
				for _, e := range snap.Entries {
					if seen[e.ID] {
						violations.Store(snap.Version, e.ID)
					}
					seen[e.ID] = true
				}
			}
		}()
	}

	// 3. Subscribers
	ordered := make([]bool, 2)
	for s := 0; s < 2; s++ {
		ch, err := store.Subscribe(ctx)
		require.NoError(t, err)
		wg.Add(1)
		go func(s int) {
			defer wg.Done()
			ordered[s] = true
			var last uint64
			first := true
			for snap := range ch {
				if !first && snap.Version <= last {
					ordered[s] = false
				}
				first = false
				last = snap.Version
			}
		}(s)
	}

	wg.Wait()

	violations.Range(func(version, id any) bool {
		t.Errorf("duplicate id %v in snapshot v%v", id, version)
		return true
	})
	for s, ok := range ordered {
		assert.True(t, ok, "subscriber %d observed versions out of order", s)
	}
	assert.Greater(t, store.Snapshot().Version, uint64(0))
}

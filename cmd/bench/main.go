package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aretw0/diary"
)

func main() {
	count := flag.Int("count", 10000, "Number of entries to create")
	subscribers := flag.Int("subscribers", 4, "Number of snapshot subscribers")
	buffer := flag.Int("buffer", 0, "Per-subscriber buffer (0 = default)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	store, err := diary.New(
		diary.WithLogger(logger),
		diary.WithSeed([]diary.Entry{}),
		diary.WithEventBuffer(*buffer),
	)
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. Subscribers drain as fast as they can
	var wg sync.WaitGroup
	received := make([]int, *subscribers)
	for i := 0; i < *subscribers; i++ {
		ch, err := store.Subscribe(ctx)
		if err != nil {
			panic(err)
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for range ch {
				received[i]++
			}
		}(i)
	}

	// 2. Create
	fmt.Printf("Creating %d entries with %d subscribers...\n", *count, *subscribers)
	start := time.Now()
	ops := store.Operations()
	for i := 0; i < *count; i++ {
		ops.Create(time.Now().UnixMilli(), i%5+1, fmt.Sprintf("Entry %d", i))
	}
	createDuration := time.Since(start)

	// 3. Delete every other entry
	start = time.Now()
	for i := 1; i <= *count; i += 2 {
		ops.Delete(diary.IDOf(i))
	}
	deleteDuration := time.Since(start)

	final := store.Snapshot()
	store.Close()
	wg.Wait()

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d entries):\n", *count)
	fmt.Printf("  Create: %v (%v/op)\n", createDuration, createDuration/time.Duration(max(*count, 1)))
	fmt.Printf("  Delete: %v\n", deleteDuration)
	fmt.Printf("  Final:  %d entries, version %d\n", final.Len(), final.Version)
	for i, n := range received {
		fmt.Printf("  Subscriber %d received %d snapshots\n", i, n)
	}
	fmt.Printf("--------------------------------------------------\n")
}

package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/diary/pkg/adapters/script"
	"github.com/aretw0/diary/pkg/core"
	"github.com/spf13/cobra"
)

var (
	playSeed  string
	playWatch bool
	playJSON  bool
)

var playCmd = &cobra.Command{
	Use:   "play [script]",
	Short: "Run a script of intents against a fresh diary",
	Long: `Play loads a YAML or JSON script of create, update and delete steps,
applies it to a fresh diary built from the seed and prints the resulting list.
With --watch the script is replayed every time the file changes.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]

		if !playWatch {
			steps, err := script.Load(path)
			if err != nil {
				fatal("Error loading script", err)
			}
			if err := play(context.Background(), steps); err != nil {
				fatal("Error playing script", err)
			}
			return
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		err := script.Watch(ctx, path, script.WatchConfig{Logger: slog.Default()}, func(steps []script.Step, err error) {
			if err != nil {
				slog.Error("script not applied", "path", path, "error", err)
				return
			}
			if err := play(ctx, steps); err != nil {
				slog.Error("script failed", "path", path, "error", err)
			}
		})
		if err != nil && ctx.Err() == nil {
			fatal("Error watching script", err)
		}
	},
}

// play runs steps against a fresh store and prints the final list.
func play(ctx context.Context, steps []script.Step) error {
	store, err := openStore(playSeed)
	if err != nil {
		return err
	}
	defer store.Close()

	watchCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	events, err := store.Watch(watchCtx, "*")
	if err != nil {
		return err
	}

	if err := script.Run(ctx, store.Operations(), steps, nil); err != nil {
		return err
	}
	logEvents(events)

	format := "text"
	if playJSON {
		format = "json"
	}
	if !playJSON {
		fmt.Printf("== %d steps, version %d\n", len(steps), store.Snapshot().Version)
	}
	return printEntries(os.Stdout, store.Snapshot().Entries, format)
}

// logEvents drains whatever is pending on events.
func logEvents(events <-chan core.Event) {
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			slog.Debug("event", "change", ev.String())
		default:
			return
		}
	}
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().StringVar(&playSeed, "seed", "", "Seed file (YAML or JSON); defaults to a diary.yaml found upwards")
	playCmd.Flags().BoolVar(&playWatch, "watch", false, "Replay the script whenever it changes")
	playCmd.Flags().BoolVar(&playJSON, "json", false, "Output in JSON format")
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/aretw0/diary"
	"github.com/aretw0/diary/pkg/adapters/seed"
)

// openStore builds a store from seedPath. An empty seedPath falls back to a
// diary.yaml/yml/json found upwards from the working directory, then to the
// built-in entries.
func openStore(seedPath string) (*diary.Store, error) {
	opts := []diary.Option{diary.WithLogger(slog.Default())}

	if seedPath == "" {
		if wd, err := os.Getwd(); err == nil {
			if found, err := diary.FindSeed(wd); err == nil {
				slog.Debug("using seed file", "path", found)
				seedPath = found
			}
		}
	}
	if seedPath != "" {
		opts = append(opts, diary.WithSeedFile(seedPath))
	}
	return diary.New(opts...)
}

// printEntries writes entries as an indented JSON array, YAML, or one line per
// entry.
func printEntries(w io.Writer, entries []diary.Entry, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if entries == nil {
			entries = []diary.Entry{}
		}
		return encoder.Encode(entries)
	case "yaml":
		data, err := seed.Encode(entries, ".yaml")
		if err != nil {
			return err
		}
		_, err = w.Write(data)
		return err
	case "", "text":
		if len(entries) == 0 {
			_, err := fmt.Fprintln(w, "(empty)")
			return err
		}
		for _, e := range entries {
			date := time.UnixMilli(e.CreatedDate).Format("2006-01-02 15:04")
			if _, err := fmt.Fprintf(w, "%s\t%s\temotion=%d\t%s\n", e.ID, date, e.EmotionID, e.Content); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown format %q", format)
}

package main

import (
	"os"

	"github.com/aretw0/diary/pkg/core"
	"github.com/spf13/cobra"
)

var (
	listSeed    string
	listJSON    bool
	listFormat  string
	listEmotion int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the entries of a diary",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore(listSeed)
		if err != nil {
			fatal("Error initializing diary", err)
		}
		defer store.Close()

		// Filter
		var filtered []core.Entry
		for _, e := range store.Snapshot().Entries {
			if listEmotion != 0 && e.EmotionID != listEmotion {
				continue
			}
			filtered = append(filtered, e)
		}

		format := listFormat
		if listJSON {
			format = "json"
		}
		if err := printEntries(os.Stdout, filtered, format); err != nil {
			fatal("Error printing entries", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringVar(&listSeed, "seed", "", "Seed file (YAML or JSON); defaults to a diary.yaml found upwards")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listFormat, "format", "text", "Output format: text, json or yaml")
	listCmd.Flags().IntVar(&listEmotion, "emotion", 0, "Only show entries with this emotion id")
}

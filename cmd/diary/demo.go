package main

import (
	"fmt"
	"os"
	"time"

	"github.com/aretw0/diary"
	"github.com/spf13/cobra"
)

var (
	demoJSON bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Replay the create, update and delete buttons against the default diary",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store, err := openStore("")
		if err != nil {
			fatal("Error initializing diary", err)
		}
		defer store.Close()

		format := "text"
		if demoJSON {
			format = "json"
		}

		show := func(title string) {
			if !demoJSON {
				fmt.Printf("== %s\n", title)
			}
			if err := printEntries(os.Stdout, store.Snapshot().Entries, format); err != nil {
				fatal("Error printing entries", err)
			}
		}

		ops := store.Operations()

		show("initial")

		ops.Create(time.Now().UnixMilli(), 1, "Hello")
		show("create")

		ops.Update(diary.IDOf(1), time.Now().UnixMilli(), 3, "수정된 일기입니다.")
		show("update 1")

		ops.Delete(diary.IDOf(1))
		show("delete 1")
	},
}

func init() {
	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().BoolVar(&demoJSON, "json", false, "Output in JSON format")
}

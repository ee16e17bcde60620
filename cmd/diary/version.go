package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/diary"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of diary",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("diary version %s\n", strings.TrimSpace(diary.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lessonforge/lessonforge"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of lessonforge",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("lessonforge version %s\n", strings.TrimSpace(lessonforge.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

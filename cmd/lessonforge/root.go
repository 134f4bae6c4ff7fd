package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lessonforge",
	Short: "Lessonforge works with branching interactive lesson documents",
	Long:  `Lessonforge validates and migrates exploration documents: versioned YAML files describing branching interactive lessons.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("title", "", "Title for documents predating embedded titles (schema <= 9)")
	rootCmd.PersistentFlags().String("category", "", "Category for documents predating embedded categories (schema <= 9)")
	rootCmd.PersistentFlags().Bool("untitled", false, "Treat the input as an untitled-era document (schema <= 9)")
}

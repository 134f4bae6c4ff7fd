package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate <file>",
	Short: "Upgrade a document to the current schema version",
	Long:  `Loads the document, walks it through every schema migration step up to the current version, and prints the migrated YAML to stdout.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runMigrate(cmd, args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Migration failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, path string) error {
	exp, caps, err := loadDocument(cmd, path)
	if err != nil {
		return err
	}
	out, err := exp.ToYAML(caps)
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(out)
	return err
}

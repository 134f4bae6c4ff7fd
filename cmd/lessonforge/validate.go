package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lessonforge/lessonforge"
	"github.com/lessonforge/lessonforge/internal/logging"
	"github.com/lessonforge/lessonforge/pkg/domain"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Check an exploration document for consistency",
	Long:  `Loads the document, migrating it to the current schema if needed, and runs the full validation suite: referential integrity, registry lookups, and with --strict also reachability and dead-end analysis.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := runValidate(cmd, args[0]); err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Document is valid! ✅")
	},
}

func init() {
	validateCmd.Flags().Bool("strict", false, "Also check reachability, dead ends and required metadata")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, path string) error {
	exp, caps, err := loadDocument(cmd, path)
	if err != nil {
		return err
	}
	strict, _ := cmd.Flags().GetBool("strict")
	return exp.Validate(caps, strict)
}

// loadDocument reads and migrates a document, routing it through the titled
// or untitled entry point per the --untitled flag.
func loadDocument(cmd *cobra.Command, path string) (*domain.Exploration, *domain.Capabilities, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read document: %w", err)
	}

	caps := lessonforge.DefaultCapabilities(logging.New(slog.LevelInfo))
	untitled, _ := cmd.Flags().GetBool("untitled")
	if untitled {
		title, _ := cmd.Flags().GetString("title")
		category, _ := cmd.Flags().GetString("category")
		exp, err := domain.FromUntitledYAML(caps, path, title, category, data)
		return exp, caps, err
	}
	exp, err := domain.FromYAML(caps, path, data)
	return exp, caps, err
}

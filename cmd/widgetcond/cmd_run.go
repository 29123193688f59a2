package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/the-deep/widgetcond/pkg/conditional"
)

var runFile string

// runCmd resolves every conditional widget of a document
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Resolve the conditional widgets of a framework document",
	Example: `  widgetcond run --file entry.json
  cat entry.json | widgetcond run`,
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(cmd, runFile)
		if err != nil {
			return err
		}
		registry, err := newRegistry()
		if err != nil {
			return err
		}

		result, err := conditional.Run(input,
			conditional.WithRegistry(registry),
			conditional.WithLogger(logger))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), result)
		return nil
	},
}

var (
	verifyNew  string
	verifyBase string
)

// verifyCmd replays a completed document against the framework it came from
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check that recorded results follow from the framework",
	Example: `  widgetcond verify --new completed.json --base framework.json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if verifyNew == "" || verifyBase == "" {
			return fmt.Errorf("both --new and --base are required")
		}
		newJSON, err := readInput(cmd, verifyNew)
		if err != nil {
			return err
		}
		baseJSON, err := readInput(cmd, verifyBase)
		if err != nil {
			return err
		}
		registry, err := newRegistry()
		if err != nil {
			return err
		}

		if _, err := conditional.Verify(newJSON, baseJSON,
			conditional.WithRegistry(registry),
			conditional.WithLogger(logger)); err != nil {
			return fmt.Errorf("verification failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "✓ Document verified: results follow from the framework")
		return nil
	},
}

func init() {
	runCmd.Flags().StringVarP(&runFile, "file", "f", "", "Input JSON document (or use stdin)")
	verifyCmd.Flags().StringVar(&verifyNew, "new", "", "Completed document to verify")
	verifyCmd.Flags().StringVar(&verifyBase, "base", "", "Framework document the entry was tagged against")
}

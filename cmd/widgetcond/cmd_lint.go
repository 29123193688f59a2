package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/the-deep/widgetcond/pkg/lint"
)

var lintFile string

// lintCmd statically checks conditional widget configuration
var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Find broken conditional widget configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		input, err := readInput(cmd, lintFile)
		if err != nil {
			return err
		}
		registry, err := newRegistry()
		if err != nil {
			return err
		}

		result, err := lint.Run(input, registry)
		if err != nil {
			return fmt.Errorf("lint error: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(result.Issues) == 0 {
			fmt.Fprintln(out, "✓ No issues found")
			return nil
		}

		for _, issue := range result.Issues {
			icon := "⚠"
			if issue.Severity == "error" {
				icon = "✗"
			}
			location := ""
			if issue.Widget != "" {
				location = fmt.Sprintf(" [widget: %s]", issue.Widget)
			}
			if issue.Variant != "" {
				location += fmt.Sprintf(" [variant: %s]", issue.Variant)
			}
			fmt.Fprintf(out, "%s %s%s: %s\n", icon, issue.Severity, location, issue.Message)
		}

		if !result.Valid || (cfg.Lint.Strict && result.HasWarnings()) {
			return fmt.Errorf("lint found %d issue(s)", len(result.Issues))
		}
		return nil
	},
}

func init() {
	lintCmd.Flags().StringVarP(&lintFile, "file", "f", "", "Framework JSON document to lint (or use stdin)")
}

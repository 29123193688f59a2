// Package main provides a CLI for the conditional widget evaluator.
// This is useful for testing framework configurations and batch processing entries.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/the-deep/widgetcond/internal/config"
	"github.com/the-deep/widgetcond/internal/logging"
	"github.com/the-deep/widgetcond/pkg/conditional"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "widgetcond",
	Short: "Conditional widget evaluator for analysis frameworks",
	Long: `widgetcond decides which variant of a conditional widget is active for an
entry, based on the values tagged into the other widgets of the framework.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			cfg.Logging.Level = zapcore.DebugLevel.String()
		}
		logger, err = logging.New(cfg.Logging)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "widgetcond.yaml", "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(runCmd, verifyCmd, lintCmd, conditionsCmd, checkCmd, newVariantCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// readInput reads the named file, or stdin when path is empty.
func readInput(cmd *cobra.Command, path string) (string, error) {
	var input []byte
	var err error

	if path != "" {
		input, err = os.ReadFile(path)
	} else {
		input, err = io.ReadAll(cmd.InOrStdin())
	}
	if err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}
	return string(input), nil
}

// newRegistry builds the built-in registry with CLI logging attached.
func newRegistry() (*conditional.Registry, error) {
	return conditional.NewDefaultRegistry(conditional.WithLogger(logger))
}

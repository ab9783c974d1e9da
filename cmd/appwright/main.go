// appwright is the command-line front end for the intent and workflow
// inference pipeline: it parses utterances, runs discovery turns against the
// certainty ledger, infers workflows and processes revision requests.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"appwright/internal/config"
	"appwright/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	jsonOut    bool

	cfg config.Config

	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "appwright",
	Short: "appwright - natural-language intent and workflow inference",
	Long: `appwright turns plain-English descriptions of a business into structured
application knowledge.

It tokenizes and classifies utterances, accumulates what it learns in a
confidence-scored certainty ledger, infers automation workflows from entities
and causal phrases, and translates spoken revision requests into atomic
change lists.

Everything is deterministic pattern matching; there is no model inference and
no network access.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logging.SetLogger(logger)

		if cfg, err = config.Load(configPath); err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file overriding the calibrated thresholds")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Emit raw JSON instead of formatted output")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(inferCmd)
	rootCmd.AddCommand(reviseCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// Package cli implements the flarectl command tree: local codec operations
// (validate, inspect, export) over ReSpecTh-style experiment documents.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/flarelab/combust/internal/infrastructure/monitoring/logging"
)

// Build-time variables injected via ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// rootOptions holds the global flags shared by every subcommand.
type rootOptions struct {
	logLevel string
	output   string
}

func (o *rootOptions) valid() error {
	switch o.output {
	case "text", "json":
	default:
		return fmt.Errorf("invalid output format %q (must be text or json)", o.output)
	}
	switch o.logLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", o.logLevel)
	}
	return nil
}

// newLogger builds the CLI logger at the requested level. Console encoding
// keeps interactive output readable.
func (o *rootOptions) newLogger() (logging.Logger, error) {
	return logging.NewLogger(logging.Config{
		Level:  o.logLevel,
		Format: "console",
	})
}

// NewRootCommand assembles the flarectl command tree.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "flarectl",
		Short: "FlareLab combustion-record tools",
		Long: "flarectl validates, inspects, and exports ReSpecTh-style combustion " +
			"experiment records without a running server.",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.valid()
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug|info|warn|error)")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "text", "output format (text|json)")

	cmd.AddCommand(
		newValidateCmd(opts),
		newInspectCmd(opts),
		newExportCmd(opts),
	)

	return cmd
}

// Execute runs the root command, printing the error and exiting nonzero on
// failure.
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// Package cli implements eftctl, the offline companion to the EFT batch service.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the eftctl command tree.
func NewRootCmd() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "eftctl",
		Short: "Offline tooling for EFT batch files",
		Long: `eftctl checks EFT files produced by the batch service and manages
the service database schema.

Example Usage:
  eftctl validate CRWB_EFT_CRWB-20261018-093000-A1B2C3_20261018_093512.txt
  eftctl migrate --migrations file://migrations
  eftctl token --subject alice --roles ACCOUNTS_PERSONNEL`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")

	root.AddCommand(newValidateCmd(), newMigrateCmd(), newTokenCmd(), newVersionCmd())
	return root
}

// Execute runs eftctl and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

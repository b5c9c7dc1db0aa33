package cli

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/SscSPs/eft_batch_service/internal/core/eftfile"
	"github.com/spf13/cobra"
)

// errInvalidFiles is returned when at least one file fails validation.
var errInvalidFiles = errors.New("one or more files are invalid")

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <file>...",
		Short: "Check EFT files for structural errors",
		Long: `Validate checks each file's header, record count, body records and
total amount. Every file is checked even when an earlier one fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				raw, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", path, err)
				}
				slog.Debug("Validating file", slog.String("path", path), slog.Int("bytes", len(raw)))

				summary, err := eftfile.Validate(string(raw))
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s: INVALID: %v\n", path, err)
					continue
				}
				fmt.Fprintf(out, "%s: OK: %s, %d records, %s %s\n",
					path, summary.BatchName, summary.RecordCount,
					eftfile.FormatAmount(summary.TotalAmount), summary.CurrencyCode)
			}
			if failed > 0 {
				return fmt.Errorf("%w (%d of %d)", errInvalidFiles, failed, len(args))
			}
			return nil
		},
	}
}

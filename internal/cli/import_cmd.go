package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/alexanderramin/driverlog/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newImportCmd(app *App) *cobra.Command {
	var merge, yes bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Load shifts from a backup or a browser export",
		Long: `Load shifts from a file written by "driverlog export" (JSON or YAML) or from
the JSON array of logs exported by the browser version. Use - for stdin.

By default the import replaces the ledger. With --merge, records whose ID is
already present are skipped and the rest are appended.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			var data []byte
			var err error
			if name == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(name)
			}
			if err != nil {
				return fmt.Errorf("reading %s: %w", name, err)
			}

			b, err := parseBackup(name, data)
			if err != nil {
				return err
			}

			settings := app.Ledger.Settings(ctx)
			if b.Settings != nil {
				settings = *b.Settings
			}

			existing := app.Ledger.Records(ctx)
			records := b.Records
			skipped := 0
			if merge {
				records, skipped = mergeRecords(existing, b.Records)
			} else if len(existing) > 0 && !yes {
				if !app.interactive() {
					return fmt.Errorf("import would replace %d existing shifts; pass --yes or --merge", len(existing))
				}
				confirmed := false
				title := fmt.Sprintf("Replace %d existing shifts with %d imported ones?", len(existing), len(b.Records))
				if err := confirmForm(title, &confirmed).Run(); err != nil && !errors.Is(err, huh.ErrUserAborted) {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Ledger.Replace(ctx, records, settings); err != nil {
				return err
			}

			imported := len(records)
			if merge {
				imported -= len(existing)
			}
			msg := fmt.Sprintf("Imported %d shifts", imported)
			if skipped > 0 {
				msg += fmt.Sprintf(" (%d already present)", skipped)
			}
			fmt.Fprintln(cmd.OutOrStdout(), msg)
			return nil
		},
	}

	cmd.Flags().BoolVar(&merge, "merge", false, "Append to the existing ledger instead of replacing it")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Replace without asking")
	return cmd
}

// mergeRecords appends incoming records whose ID is not already present.
func mergeRecords(existing, incoming []domain.WorkRecord) ([]domain.WorkRecord, int) {
	seen := make(map[string]bool, len(existing))
	for _, r := range existing {
		seen[r.ID] = true
	}
	merged := slices.Clone(existing)
	skipped := 0
	for _, r := range incoming {
		if r.ID != "" && seen[r.ID] {
			skipped++
			continue
		}
		if r.ID != "" {
			seen[r.ID] = true
		}
		merged = append(merged, r)
	}
	return merged, skipped
}

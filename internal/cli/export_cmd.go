package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var format, out string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export shifts and settings as JSON, CSV or YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			settings := app.Ledger.Settings(ctx)
			b := Backup{
				Version:    backupVersion,
				ExportedAt: time.Now().UTC().Format(time.RFC3339),
				Settings:   &settings,
				Records:    app.Ledger.Records(ctx),
			}

			var w io.Writer = cmd.OutOrStdout()
			if out != "" && out != "-" {
				f, err := os.Create(out)
				if err != nil {
					return fmt.Errorf("creating %s: %w", out, err)
				}
				defer f.Close()
				w = f
			}

			if err := writeBackup(w, format, b); err != nil {
				return err
			}
			if out != "" && out != "-" {
				fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d shifts to %s\n", len(b.Records), out)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", FormatJSON, "Output format: json, csv or yaml")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to a file instead of stdout")
	return cmd
}

package cli

import (
	"fmt"

	"github.com/alexanderramin/driverlog/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newCoachCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "coach",
		Short: "Ask the AI coach to review your recent shifts",
		Long: `Sends a summary of the seven most recent shifts to the configured language
model and prints its advice. Set GEMINI_API_KEY (or API_KEY) to enable it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			records := app.Ledger.Records(ctx)

			stop := func() {}
			if app.interactive() {
				stop = formatter.StartSpinner(cmd.ErrOrStderr(), "Analysing your recent shifts...")
			}
			report := app.coach().Analyze(ctx, records)
			stop()

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatCoachReport(report))
			return nil
		},
	}
}

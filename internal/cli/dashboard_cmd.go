package cli

import (
	"fmt"

	"github.com/alexanderramin/driverlog/internal/cli/formatter"
	"github.com/spf13/cobra"
)

const defaultChartDays = 7

func newDashboardCmd(app *App) *cobra.Command {
	var last int

	cmd := &cobra.Command{
		Use:     "dashboard",
		Aliases: []string{"dash"},
		Short:   "Show lifetime totals and recent earnings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if last <= 0 {
				return fmt.Errorf("--last must be positive, got %d", last)
			}
			d := app.Ledger.Dashboard(cmd.Context(), last)
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDashboard(d))
			return nil
		},
	}

	cmd.Flags().IntVar(&last, "last", defaultChartDays, "Number of most recently entered shifts to chart")
	return cmd
}

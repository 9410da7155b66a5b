package cli

import (
	"fmt"

	"github.com/alexanderramin/driverlog/internal/cli/formatter"
	"github.com/alexanderramin/driverlog/internal/stats"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newHistoryCmd(app *App) *cobra.Command {
	var plain bool
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse shifts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			records := app.Ledger.History(cmd.Context())
			if limit > 0 && len(records) > limit {
				records = records[:limit]
			}
			views := recordViews(records)

			if plain || !app.interactive() || len(views) == 0 {
				out := cmd.OutOrStdout()
				fmt.Fprint(out, formatter.FormatRecordList(views))
				if len(views) > 0 {
					fmt.Fprintf(out, "\n%s\n%s", formatter.Header("Totals"), formatter.FormatAggregate(stats.Aggregate(records)))
				}
				return nil
			}

			_, err := tea.NewProgram(newHistoryModel(views), tea.WithAltScreen()).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print a static table instead of the interactive view")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the N most recent shifts")
	return cmd
}

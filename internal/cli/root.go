package cli

import "github.com/spf13/cobra"

// NewRootCmd creates the top-level "driverlog" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "driverlog",
		Short: "Work ledger for ride-hailing drivers",
		Long: `driverlog records driving shifts and derives what each one really earned:
distance, fuel cost, net profit, hourly rate and cost per kilometre.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newLogCmd(app),
		newHistoryCmd(app),
		newDashboardCmd(app),
		newSettingsCmd(app),
		newCoachCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newServeCmd(app),
	)

	return root
}

package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/driverlog/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
)

func newSettingsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change driver settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSettings(app.Ledger.Settings(cmd.Context())))
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the current settings",
			RunE: func(cmd *cobra.Command, args []string) error {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSettings(app.Ledger.Settings(cmd.Context())))
				return nil
			},
		},
		newSettingsSetCmd(app),
	)

	return cmd
}

func newSettingsSetCmd(app *App) *cobra.Command {
	var name string
	var fuelPrice, consumption float64

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Change settings (opens a form when no flags are given)",
		Long: `Change settings. New values apply to shifts logged from now on; shifts
already logged keep the fuel price and consumption they were entered with.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := app.Ledger.Settings(ctx)

			if cmd.Flags().NFlag() == 0 {
				if !app.interactive() {
					return fmt.Errorf("nothing to change; pass --name, --fuel-price or --consumption")
				}
				values := settingsValuesFrom(s)
				if err := settingsForm(&values).Run(); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
						return nil
					}
					return err
				}
				var err error
				if s, err = values.settings(); err != nil {
					return err
				}
			}

			if cmd.Flags().Changed("name") {
				s.DriverName = name
			}
			if cmd.Flags().Changed("fuel-price") {
				s.DefaultFuelPrice = fuelPrice
			}
			if cmd.Flags().Changed("consumption") {
				s.CarConsumption = consumption
			}

			if err := app.Ledger.UpdateSettings(ctx, s); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatSettings(app.Ledger.Settings(ctx)))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Driver name")
	cmd.Flags().Float64Var(&fuelPrice, "fuel-price", 0, "Default fuel price per litre (R$)")
	cmd.Flags().Float64Var(&consumption, "consumption", 0, "Car consumption (km/L)")
	return cmd
}

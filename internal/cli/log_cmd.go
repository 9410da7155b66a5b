package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/driverlog/internal/cli/formatter"
	"github.com/alexanderramin/driverlog/internal/domain"
	"github.com/alexanderramin/driverlog/internal/service"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newLogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Add, list, show and remove shifts",
	}

	cmd.AddCommand(
		newLogAddCmd(app),
		newLogListCmd(app),
		newLogShowCmd(app),
		newLogRemoveCmd(app),
	)

	return cmd
}

// entryFlags mirrors the entry form on the command line. Only flags the
// user set override the prefilled draft.
type entryFlags struct {
	date, start, end, notes string

	odoStart, odoEnd float64
	uber, ninetyNine float64
	fuelPrice        float64
	consumption      float64
	extra            float64
	trips            int
}

func (f *entryFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.date, "date", "", "Shift date (YYYY-MM-DD, default today)")
	fs.StringVar(&f.start, "start", "", "Start time (HH:MM)")
	fs.StringVar(&f.end, "end", "", "End time (HH:MM); earlier than start means past midnight")
	fs.Float64Var(&f.odoStart, "odo-start", 0, "Odometer at start (km, default last shift's end)")
	fs.Float64Var(&f.odoEnd, "odo-end", 0, "Odometer at end (km)")
	fs.Float64Var(&f.uber, "uber", 0, "Uber earnings (R$)")
	fs.Float64Var(&f.ninetyNine, "ninety-nine", 0, "99 earnings (R$)")
	fs.IntVar(&f.trips, "trips", 0, "Number of trips")
	fs.Float64Var(&f.fuelPrice, "fuel-price", 0, "Fuel price per litre (default from settings)")
	fs.Float64Var(&f.consumption, "consumption", 0, "Car consumption in km/L (default from settings)")
	fs.Float64Var(&f.extra, "extra", 0, "Extra expenses (R$)")
	fs.StringVar(&f.notes, "notes", "", "Free-form notes")
}

func (f *entryFlags) apply(fs *pflag.FlagSet, r *domain.WorkRecord) {
	set := func(name string, fn func()) {
		if fs.Changed(name) {
			fn()
		}
	}
	set("start", func() { r.StartTime = f.start })
	set("end", func() { r.EndTime = f.end })
	set("odo-start", func() { r.OdometerStart = f.odoStart })
	set("odo-end", func() { r.OdometerEnd = f.odoEnd })
	set("uber", func() { r.EarningsPlatformA = f.uber })
	set("ninety-nine", func() { r.EarningsPlatformB = f.ninetyNine })
	set("trips", func() { r.TripCount = f.trips })
	set("fuel-price", func() { r.FuelPriceSnapshot = f.fuelPrice })
	set("consumption", func() { r.FuelEfficiencySnapshot = f.consumption })
	set("extra", func() { r.ExtraExpenses = f.extra })
	set("notes", func() { r.Notes = f.notes })
}

func newLogAddCmd(app *App) *cobra.Command {
	var flags entryFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a shift",
		Long: `Log a shift. With no flags on a terminal an entry form opens, prefilled
with the last odometer reading and the fuel settings.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			date := flags.date
			if date == "" {
				date = app.today()
			}
			rec := app.Ledger.NewDraft(ctx, date)

			onlyDate := cmd.Flags().NFlag() == 0 ||
				(cmd.Flags().NFlag() == 1 && cmd.Flags().Changed("date"))
			if onlyDate && app.interactive() {
				values := entryValuesFrom(rec)
				if err := entryForm(&values).Run(); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
						return nil
					}
					return err
				}
				var err error
				if rec, err = values.record(rec); err != nil {
					return err
				}
			} else {
				flags.apply(cmd.Flags(), &rec)
			}

			saved, err := app.Ledger.AddRecord(ctx, rec)
			if err != nil {
				return err
			}
			view := service.NewRecordView(*saved)
			fmt.Fprintf(cmd.OutOrStdout(), "Logged shift %s on %s: %s net, %s/h\n",
				formatter.TruncID(saved.ID),
				formatter.DisplayDate(saved.Date),
				formatter.Profit(view.Stats.NetEarnings),
				formatter.Profit(view.Stats.HourlyRate),
			)
			return nil
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func newLogListCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shifts in the order they were entered",
		RunE: func(cmd *cobra.Command, args []string) error {
			records := app.Ledger.Records(cmd.Context())
			if limit > 0 && len(records) > limit {
				records = records[len(records)-limit:]
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRecordList(recordViews(records)))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the last N entries")
	return cmd
}

func newLogShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one shift with its derived figures",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveRecordID(ctx, app, args[0])
			if err != nil {
				return err
			}
			rec, err := app.Ledger.Get(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatRecordDetail(service.NewRecordView(*rec)))
			return nil
		},
	}
}

func newLogRemoveCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete a shift",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id, err := resolveRecordID(ctx, app, args[0])
			if err != nil {
				return err
			}
			rec, err := app.Ledger.Get(ctx, id)
			if err != nil {
				return err
			}

			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to delete without confirmation; pass --yes")
				}
				confirmed := false
				title := fmt.Sprintf("Delete the shift on %s (%s–%s)?", formatter.DisplayDate(rec.Date), rec.StartTime, rec.EndTime)
				if err := confirmForm(title, &confirmed).Run(); err != nil && !errors.Is(err, huh.ErrUserAborted) {
					return err
				}
				if !confirmed {
					fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
					return nil
				}
			}

			if err := app.Ledger.DeleteRecord(ctx, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted shift %s on %s\n", formatter.TruncID(id), formatter.DisplayDate(rec.Date))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func recordViews(records []domain.WorkRecord) []service.RecordView {
	out := make([]service.RecordView, len(records))
	for i, r := range records {
		out[i] = service.NewRecordView(r)
	}
	return out
}

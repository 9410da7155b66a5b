package cli

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/driverlog/internal/cli/formatter"
	"github.com/alexanderramin/driverlog/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

func driverlogHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// parseDecimal accepts both "5.89" and "5,89".
func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func validateNonNegative(s string) error {
	v, err := parseDecimal(s)
	if err != nil || v < 0 {
		return errors.New("enter a number, zero or more")
	}
	return nil
}

func validatePositive(s string) error {
	v, err := parseDecimal(s)
	if err != nil || v <= 0 {
		return errors.New("enter a number greater than zero")
	}
	return nil
}

func validateNonNegativeInt(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return errors.New("enter a whole number, zero or more")
	}
	return nil
}

func validateDate(s string) error {
	if _, err := time.Parse(domain.DateLayout, s); err != nil {
		return errors.New("use YYYY-MM-DD format")
	}
	return nil
}

func validateTimeOfDay(s string) error {
	if _, ok := domain.ParseTimeOfDay(s); !ok {
		return errors.New("use HH:MM format")
	}
	return nil
}

func formatDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// entryValues holds the entry form as text so huh inputs can bind to it.
type entryValues struct {
	Date, Start, End        string
	OdoStart, OdoEnd        string
	Uber, NinetyNine, Trips string
	FuelPrice, Consumption  string
	Extra, Notes            string
}

func entryValuesFrom(r domain.WorkRecord) entryValues {
	v := entryValues{
		Date:        r.Date,
		Start:       r.StartTime,
		End:         r.EndTime,
		OdoStart:    formatDecimal(r.OdometerStart),
		OdoEnd:      formatDecimal(r.OdometerEnd),
		FuelPrice:   formatDecimal(r.FuelPriceSnapshot),
		Consumption: formatDecimal(r.FuelEfficiencySnapshot),
		Notes:       r.Notes,
	}
	if r.EarningsPlatformA != 0 {
		v.Uber = formatDecimal(r.EarningsPlatformA)
	}
	if r.EarningsPlatformB != 0 {
		v.NinetyNine = formatDecimal(r.EarningsPlatformB)
	}
	if r.TripCount != 0 {
		v.Trips = strconv.Itoa(r.TripCount)
	}
	if r.ExtraExpenses != 0 {
		v.Extra = formatDecimal(r.ExtraExpenses)
	}
	return v
}

// record converts the form back, keeping base's ID.
func (v entryValues) record(base domain.WorkRecord) (domain.WorkRecord, error) {
	r := base
	r.Date = strings.TrimSpace(v.Date)
	r.StartTime = strings.TrimSpace(v.Start)
	r.EndTime = strings.TrimSpace(v.End)
	r.Notes = v.Notes

	var errs []error
	num := func(name, s string, dst *float64) {
		f, err := parseDecimal(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %q is not a number", name, s))
			return
		}
		*dst = f
	}
	num("odometer start", v.OdoStart, &r.OdometerStart)
	num("odometer end", v.OdoEnd, &r.OdometerEnd)
	num("uber earnings", v.Uber, &r.EarningsPlatformA)
	num("99 earnings", v.NinetyNine, &r.EarningsPlatformB)
	num("fuel price", v.FuelPrice, &r.FuelPriceSnapshot)
	num("consumption", v.Consumption, &r.FuelEfficiencySnapshot)
	num("extra expenses", v.Extra, &r.ExtraExpenses)

	r.TripCount = 0
	if t := strings.TrimSpace(v.Trips); t != "" {
		n, err := strconv.Atoi(t)
		if err != nil {
			errs = append(errs, fmt.Errorf("trips: %q is not a whole number", v.Trips))
		}
		r.TripCount = n
	}
	return r, errors.Join(errs...)
}

func entryForm(v *entryValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Date").Placeholder("2024-03-15").Value(&v.Date).Validate(validateDate),
			huh.NewInput().Title("Start time").Placeholder("08:00").Value(&v.Start).Validate(validateTimeOfDay),
			huh.NewInput().Title("End time").Placeholder("18:00").Value(&v.End).Validate(validateTimeOfDay),
		).Title("Shift"),
		huh.NewGroup(
			huh.NewInput().Title("Odometer start (km)").Value(&v.OdoStart).Validate(validateNonNegative),
			huh.NewInput().Title("Odometer end (km)").Value(&v.OdoEnd).Validate(validateNonNegative),
		).Title("Odometer"),
		huh.NewGroup(
			huh.NewInput().Title("Uber earnings (R$)").Placeholder("0,00").Value(&v.Uber).Validate(validateNonNegative),
			huh.NewInput().Title("99 earnings (R$)").Placeholder("0,00").Value(&v.NinetyNine).Validate(validateNonNegative),
			huh.NewInput().Title("Trips").Placeholder("0").Value(&v.Trips).Validate(validateNonNegativeInt),
		).Title("Earnings"),
		huh.NewGroup(
			huh.NewInput().Title("Fuel price (R$/L)").Value(&v.FuelPrice).Validate(validateNonNegative),
			huh.NewInput().Title("Consumption (km/L)").Value(&v.Consumption).Validate(validatePositive),
			huh.NewInput().Title("Extra expenses (R$)").Description("Food, parking, car wash").Placeholder("0,00").Value(&v.Extra).Validate(validateNonNegative),
			huh.NewText().Title("Notes").Value(&v.Notes),
		).Title("Costs"),
	).WithTheme(driverlogHuhTheme()).WithShowHelp(false)
}

// settingsValues is the settings form as text.
type settingsValues struct {
	Name, FuelPrice, Consumption string
}

func settingsValuesFrom(s domain.Settings) settingsValues {
	return settingsValues{
		Name:        s.DriverName,
		FuelPrice:   formatDecimal(s.DefaultFuelPrice),
		Consumption: formatDecimal(s.CarConsumption),
	}
}

func (v settingsValues) settings() (domain.Settings, error) {
	price, err := parseDecimal(v.FuelPrice)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("fuel price: %q is not a number", v.FuelPrice)
	}
	consumption, err := parseDecimal(v.Consumption)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("consumption: %q is not a number", v.Consumption)
	}
	return domain.Settings{
		DriverName:       strings.TrimSpace(v.Name),
		DefaultFuelPrice: price,
		CarConsumption:   consumption,
	}, nil
}

func settingsForm(v *settingsValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Driver name").Value(&v.Name).Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return errors.New("name is required")
				}
				return nil
			}),
			huh.NewInput().Title("Default fuel price (R$/L)").Value(&v.FuelPrice).Validate(validateNonNegative),
			huh.NewInput().Title("Car consumption (km/L)").Value(&v.Consumption).Validate(validatePositive),
		),
	).WithTheme(driverlogHuhTheme()).WithShowHelp(false)
}

func confirmForm(title string, result *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(result),
		),
	).WithTheme(driverlogHuhTheme()).WithShowHelp(false)
}

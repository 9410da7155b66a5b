package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/driverlog/internal/domain"
	"github.com/alexanderramin/driverlog/internal/intelligence"
	"github.com/alexanderramin/driverlog/internal/service"
	"github.com/alexanderramin/driverlog/internal/stats"
)

const chartBarWidth = 24

// FormatRecordList renders records as a table, one shift per row.
func FormatRecordList(views []service.RecordView) string {
	if len(views) == 0 {
		return Dim("No shifts logged yet. Add one with: driverlog log add") + "\n"
	}

	headers := []string{"ID", "DATE", "SHIFT", "HOURS", "KM", "GROSS", "EXPENSES", "NET", "NET/H"}
	rows := make([][]string, 0, len(views))
	for _, v := range views {
		rows = append(rows, []string{
			TruncID(v.ID),
			StyleFg.Render(DisplayDate(v.Date)),
			Dim(v.StartTime + "–" + v.EndTime),
			Hours(v.Stats.HoursWorked),
			Distance(v.Stats.DistanceDriven),
			Currency(v.Stats.GrossEarnings),
			StyleYellow.Render(Currency(v.Stats.TotalExpenses)),
			Profit(v.Stats.NetEarnings),
			Profit(v.Stats.HourlyRate),
		})
	}
	return RenderTable(headers, rows, 3, 4, 5, 6, 7, 8)
}

// FormatRecordDetail renders one shift with every derived figure.
func FormatRecordDetail(v service.RecordView) string {
	d := v.Stats
	var b strings.Builder

	b.WriteString(KeyValue([][2]string{
		{"ID", v.ID},
		{"Date", DisplayDate(v.Date)},
		{"Shift", fmt.Sprintf("%s – %s (%s)", v.StartTime, v.EndTime, Hours(d.HoursWorked))},
		{"Odometer", fmt.Sprintf("%s → %s (%s)", Odometer(v.OdometerStart), Odometer(v.OdometerEnd), Distance(d.DistanceDriven))},
		{"Trips", strconv.Itoa(v.TripCount)},
	}))

	b.WriteString("\n" + Header("Earnings") + "\n")
	b.WriteString(KeyValue([][2]string{
		{"Uber", Currency(v.EarningsPlatformA)},
		{"99", Currency(v.EarningsPlatformB)},
		{"Gross", Bold(Currency(d.GrossEarnings))},
	}))

	b.WriteString("\n" + Header("Expenses") + "\n")
	b.WriteString(KeyValue([][2]string{
		{"Fuel", fmt.Sprintf("%s %s", Currency(d.FuelCost),
			Dim(fmt.Sprintf("(%s/L at %s km/L)", Currency(v.FuelPriceSnapshot), Number(v.FuelEfficiencySnapshot))))},
		{"Extra", Currency(v.ExtraExpenses)},
		{"Total", StyleYellow.Render(Currency(d.TotalExpenses))},
	}))

	b.WriteString("\n" + Header("Result") + "\n")
	b.WriteString(KeyValue([][2]string{
		{"Net", Profit(d.NetEarnings)},
		{"Net per hour", Profit(d.HourlyRate)},
		{"Cost per km", Currency(d.CostPerDistance)},
	}))

	if v.Notes != "" {
		b.WriteString("\n" + Dim(v.Notes) + "\n")
	}
	return RenderBox("Shift", strings.TrimRight(b.String(), "\n"))
}

// FormatDashboard renders the totals and the recent-earnings chart.
func FormatDashboard(d service.Dashboard) string {
	var b strings.Builder

	name := d.DriverName
	if name == "" {
		name = domain.DefaultSettings().DriverName
	}
	b.WriteString(fmt.Sprintf("Olá, %s  %s\n\n", Bold(name), Dim(fmt.Sprintf("(%d shifts logged)", d.RecordCount))))

	t := d.Totals
	b.WriteString(KeyValue([][2]string{
		{"Net profit", Profit(t.TotalNet)},
		{"Gross", Currency(t.TotalGross)},
		{"Expenses", StyleYellow.Render(Currency(t.TotalExpenses))},
		{"Hours", Hours(t.TotalHours)},
		{"Distance", Distance(t.TotalDistance)},
		{"Net per hour", Profit(t.AvgHourlyNet)},
		{"Cost per km", Currency(t.AvgCostPerDistance)},
	}))

	b.WriteString("\n" + Header(fmt.Sprintf("Last %d shifts", len(d.Chart))) + "\n")
	b.WriteString(RenderEarningsChart(d.Chart, chartBarWidth))

	return RenderBox("Dashboard", strings.TrimRight(b.String(), "\n"))
}

// FormatAggregate renders a compact totals block.
func FormatAggregate(a stats.AggregateStats) string {
	return KeyValue([][2]string{
		{"Gross", Currency(a.TotalGross)},
		{"Expenses", Currency(a.TotalExpenses)},
		{"Net", Profit(a.TotalNet)},
		{"Hours", Hours(a.TotalHours)},
		{"Distance", Distance(a.TotalDistance)},
		{"Net per hour", Profit(a.AvgHourlyNet)},
		{"Cost per km", Currency(a.AvgCostPerDistance)},
	})
}

func FormatSettings(s domain.Settings) string {
	return RenderBox("Settings", strings.TrimRight(KeyValue([][2]string{
		{"Driver", Bold(s.DriverName)},
		{"Fuel price", Currency(s.DefaultFuelPrice) + Dim(" per litre")},
		{"Consumption", Number(s.CarConsumption) + Dim(" km/L")},
	}), "\n"))
}

// FormatCoachReport renders the coach's answer. Fallback messages are
// shown in yellow so they are not mistaken for advice.
func FormatCoachReport(r *intelligence.CoachReport) string {
	if r == nil {
		return ""
	}
	if r.Source == intelligence.SourceFallback {
		return RenderBox("Coach", StyleYellow.Render(r.Text))
	}
	body := r.Text
	if r.Model != "" {
		body += "\n\n" + Dim("model: "+r.Model)
	}
	return RenderBox("Coach", body)
}

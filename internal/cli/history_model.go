package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/driverlog/internal/cli/formatter"
	"github.com/alexanderramin/driverlog/internal/domain"
	"github.com/alexanderramin/driverlog/internal/service"
	"github.com/alexanderramin/driverlog/internal/stats"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type historyKeys struct {
	Detail key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func defaultHistoryKeys() historyKeys {
	return historyKeys{
		Detail: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "details")),
		Back:   key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// historyModel is a scrollable table of shifts with a detail pane.
type historyModel struct {
	views  []service.RecordView
	table  table.Model
	keys   historyKeys
	totals stats.AggregateStats
	detail bool
}

func newHistoryModel(views []service.RecordView) historyModel {
	columns := []table.Column{
		{Title: "Date", Width: 10},
		{Title: "Shift", Width: 11},
		{Title: "Hours", Width: 6},
		{Title: "Km", Width: 7},
		{Title: "Gross", Width: 12},
		{Title: "Net", Width: 12},
		{Title: "Net/h", Width: 10},
	}
	rows := make([]table.Row, len(views))
	records := make([]domain.WorkRecord, len(views))
	for i, v := range views {
		records[i] = v.WorkRecord
		rows[i] = table.Row{
			formatter.DisplayDate(v.Date),
			v.StartTime + "-" + v.EndTime,
			fmt.Sprintf("%.1f", v.Stats.HoursWorked),
			fmt.Sprintf("%.1f", v.Stats.DistanceDriven),
			formatter.Currency(v.Stats.GrossEarnings),
			formatter.Currency(v.Stats.NetEarnings),
			formatter.Currency(v.Stats.HourlyRate),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows), 15)+1),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(formatter.ColorDim).
		BorderBottom(true).
		Foreground(formatter.ColorHeader).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(formatter.ColorFg).
		Background(lipgloss.Color("#504945")).
		Bold(false)
	t.SetStyles(s)

	return historyModel{
		views:  views,
		table:  t,
		keys:   defaultHistoryKeys(),
		totals: stats.Aggregate(records),
	}
}

func (m historyModel) Init() tea.Cmd { return nil }

func (m historyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if h := msg.Height - 8; h > 2 {
			m.table.SetHeight(min(h, len(m.views)+1))
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case m.detail && key.Matches(msg, m.keys.Back):
			m.detail = false
			return m, nil
		case key.Matches(msg, m.keys.Detail):
			if len(m.views) > 0 {
				m.detail = !m.detail
			}
			return m, nil
		case !m.detail && msg.String() == "esc":
			return m, tea.Quit
		}
		if m.detail {
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// selected returns the record under the cursor.
func (m historyModel) selected() (service.RecordView, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.views) {
		return service.RecordView{}, false
	}
	return m.views[i], true
}

func (m historyModel) View() string {
	var b strings.Builder

	if v, ok := m.selected(); ok && m.detail {
		b.WriteString(formatter.FormatRecordDetail(v))
		b.WriteString("\n" + m.helpLine(m.keys.Back, m.keys.Quit))
		return b.String()
	}

	b.WriteString(formatter.Header(fmt.Sprintf("History · %d shifts", len(m.views))) + "\n")
	b.WriteString(m.table.View() + "\n\n")
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s\n",
		formatter.Dim("net"), formatter.Profit(m.totals.TotalNet),
		formatter.Dim("hours"), formatter.Hours(m.totals.TotalHours),
		formatter.Dim("net/h"), formatter.Profit(m.totals.AvgHourlyNet),
	))
	b.WriteString(m.helpLine(m.keys.Detail, m.keys.Quit))
	return b.String()
}

func (m historyModel) helpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings)+1)
	if !m.detail {
		parts = append(parts, formatter.StylePurple.Render("↑/↓")+" "+formatter.Dim("move"))
	}
	for _, k := range bindings {
		h := k.Help()
		parts = append(parts, formatter.StylePurple.Render(h.Key)+" "+formatter.Dim(h.Desc))
	}
	return strings.Join(parts, "  ")
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/driverlog/internal/stats"
	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderBar renders a bar of width cells, filled in proportion to v/maxV.
// Values outside [0, maxV] are clamped.
func RenderBar(v, maxV float64, width int, style lipgloss.Style) string {
	if width < 1 {
		width = 1
	}
	pct := 0.0
	if maxV > 0 {
		pct = v / maxV
	}
	pct = min(max(pct, 0), 1)

	filled := int(pct*float64(width) + 0.5)
	return style.Render(strings.Repeat(filledBlock, filled)) +
		StyleDim.Render(strings.Repeat(emptyBlock, width-filled))
}

// RenderEarningsChart draws one gross bar and one net bar per day. Bars
// share the largest gross (or net) value as their scale.
func RenderEarningsChart(points []stats.ChartPoint, width int) string {
	if len(points) == 0 {
		return Dim("No shifts to chart yet.") + "\n"
	}

	scale := 0.0
	for _, p := range points {
		scale = max(scale, p.Gross, p.Net)
	}

	var b strings.Builder
	for _, p := range points {
		b.WriteString(fmt.Sprintf("%-5s %s %s\n",
			p.Label, RenderBar(p.Gross, scale, width, StyleBlue), Dim(Currency(p.Gross))))
		b.WriteString(fmt.Sprintf("%-5s %s %s\n",
			"", RenderBar(p.Net, scale, width, ProfitStyle(p.Net)), ProfitStyle(p.Net).Render(Currency(p.Net))))
	}
	b.WriteString(Dim(fmt.Sprintf("%s gross  %s net", StyleBlue.Render(filledBlock), StyleGreen.Render(filledBlock))) + "\n")
	return b.String()
}

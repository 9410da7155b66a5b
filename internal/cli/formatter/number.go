package formatter

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/driverlog/internal/domain"
	"github.com/dustin/go-humanize"
)

// Brazilian grouping: dot for thousands, comma for decimals.
const brFormat2 = "#.###,##"

// Currency renders v as Brazilian reais, e.g. "R$ 1.234,50" or "-R$ 12,30".
func Currency(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "R$ --"
	}
	if v < 0 {
		return "-R$ " + humanize.FormatFloat(brFormat2, -v)
	}
	return "R$ " + humanize.FormatFloat(brFormat2, v)
}

// Number renders v with Brazilian separators and two decimals.
func Number(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "--"
	}
	if v < 0 {
		return "-" + humanize.FormatFloat(brFormat2, -v)
	}
	return humanize.FormatFloat(brFormat2, v)
}

// Distance renders kilometres with one decimal.
func Distance(km float64) string {
	return fmt.Sprintf("%.1f km", km)
}

// Hours renders a duration in hours, e.g. "9.5h".
func Hours(h float64) string {
	return fmt.Sprintf("%.1fh", h)
}

// Odometer renders a whole-number odometer reading with thousands dots.
func Odometer(v float64) string {
	return humanize.FormatFloat("#.###,", math.Round(v)) + " km"
}

// DisplayDate renders YYYY-MM-DD as DD/MM/YYYY. Unparseable input is
// returned unchanged.
func DisplayDate(date string) string {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("02/01/2006")
}

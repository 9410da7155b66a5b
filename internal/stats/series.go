package stats

import (
	"slices"
	"strings"
	"time"

	"github.com/alexanderramin/driverlog/internal/domain"
)

// ChartPoint is one bar pair in the earnings chart.
type ChartPoint struct {
	Date  string  `json:"date"`
	Label string  `json:"label"`
	Net   float64 `json:"net"`
	Gross float64 `json:"gross"`
}

// MostRecent returns up to n records ordered by date, newest first.
// Records sharing a date keep their insertion order. n <= 0 means all.
func MostRecent(records []domain.WorkRecord, n int) []domain.WorkRecord {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, func(a, b domain.WorkRecord) int {
		return strings.Compare(b.Date, a.Date)
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Chart returns the last n records in insertion order as chart points.
func Chart(records []domain.WorkRecord, n int) []ChartPoint {
	tail := records
	if n > 0 && len(tail) > n {
		tail = tail[len(tail)-n:]
	}
	points := make([]ChartPoint, 0, len(tail))
	for _, r := range tail {
		d := Derive(r)
		points = append(points, ChartPoint{
			Date:  r.Date,
			Label: DayMonth(r.Date),
			Net:   d.NetEarnings,
			Gross: d.GrossEarnings,
		})
	}
	return points
}

// DayMonth renders a YYYY-MM-DD date as DD/MM. Unparseable input is
// returned unchanged.
func DayMonth(date string) string {
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("02/01")
}

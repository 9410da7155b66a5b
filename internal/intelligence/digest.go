package intelligence

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/driverlog/internal/domain"
	"github.com/alexanderramin/driverlog/internal/stats"
)

// DigestDays is how many recent shifts the coach looks at.
const DigestDays = 7

// DigestEntry is the per-shift summary handed to the model.
type DigestEntry struct {
	Date              string
	HoursWorked       float64
	DistanceDriven    float64
	EarningsPlatformA float64
	EarningsPlatformB float64
	TotalExpenses     float64
	NetEarnings       float64
	HourlyRate        float64
}

// BuildDigest summarizes the n most recent records, newest first.
func BuildDigest(records []domain.WorkRecord, n int) []DigestEntry {
	recent := stats.MostRecent(records, n)
	entries := make([]DigestEntry, 0, len(recent))
	for _, r := range recent {
		d := stats.Derive(r)
		entries = append(entries, DigestEntry{
			Date:              r.Date,
			HoursWorked:       d.HoursWorked,
			DistanceDriven:    d.DistanceDriven,
			EarningsPlatformA: r.EarningsPlatformA,
			EarningsPlatformB: r.EarningsPlatformB,
			TotalExpenses:     d.TotalExpenses,
			NetEarnings:       d.NetEarnings,
			HourlyRate:        d.HourlyRate,
		})
	}
	return entries
}

func (e DigestEntry) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Data: %s\n", e.Date)
	fmt.Fprintf(&b, "Horas: %.1fh\n", e.HoursWorked)
	fmt.Fprintf(&b, "KM: %.1fkm\n", e.DistanceDriven)
	fmt.Fprintf(&b, "Faturamento Uber: R$%.2f\n", e.EarningsPlatformA)
	fmt.Fprintf(&b, "Faturamento 99: R$%.2f\n", e.EarningsPlatformB)
	fmt.Fprintf(&b, "Gastos Totais: R$%.2f\n", e.TotalExpenses)
	fmt.Fprintf(&b, "Lucro Líquido: R$%.2f\n", e.NetEarnings)
	fmt.Fprintf(&b, "Lucro/Hora: R$%.2f", e.HourlyRate)
	return b.String()
}

func formatDigest(entries []DigestEntry) string {
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.String()
	}
	return strings.Join(parts, "\n---\n")
}

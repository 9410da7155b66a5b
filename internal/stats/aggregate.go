package stats

import "github.com/alexanderramin/driverlog/internal/domain"

type AggregateStats struct {
	TotalGross         float64 `json:"totalGross"`
	TotalNet           float64 `json:"totalNet"`
	TotalDistance      float64 `json:"totalDistance"`
	TotalHours         float64 `json:"totalHours"`
	TotalExpenses      float64 `json:"totalExpenses"`
	AvgHourlyNet       float64 `json:"avgHourlyNet"`
	AvgCostPerDistance float64 `json:"avgCostPerDistance"`
}

// Aggregate sums the derived figures of every record. The average rates are
// ratios of the final totals, so long shifts weigh more than short ones.
// An empty slice yields the zero value.
func Aggregate(records []domain.WorkRecord) AggregateStats {
	var agg AggregateStats
	for _, r := range records {
		d := Derive(r)
		agg.TotalGross += d.GrossEarnings
		agg.TotalNet += d.NetEarnings
		agg.TotalDistance += d.DistanceDriven
		agg.TotalHours += d.HoursWorked
		agg.TotalExpenses += d.TotalExpenses
	}

	if agg.TotalHours > 0 {
		agg.AvgHourlyNet = agg.TotalNet / agg.TotalHours
	}
	if agg.TotalDistance > 0 {
		agg.AvgCostPerDistance = agg.TotalExpenses / agg.TotalDistance
	}
	return agg
}

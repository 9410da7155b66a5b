// Package stats derives a shift's economics from its raw record and rolls
// a set of shifts up into totals. Everything here is pure: no clock reads,
// no I/O, and inputs are never modified.
package stats

import (
	"github.com/alexanderramin/driverlog/internal/domain"
)

// DerivedStats is computed from a WorkRecord on demand and never stored.
type DerivedStats struct {
	DistanceDriven  float64 `json:"distanceDriven"`
	GrossEarnings   float64 `json:"grossEarnings"`
	FuelCost        float64 `json:"fuelCost"`
	TotalExpenses   float64 `json:"totalExpenses"`
	NetEarnings     float64 `json:"netEarnings"`
	HoursWorked     float64 `json:"hoursWorked"`
	HourlyRate      float64 `json:"hourlyRate"`
	CostPerDistance float64 `json:"costPerDistance"`
}

// Derive computes the per-shift figures for r.
//
// FuelEfficiencySnapshot is divided by as-is; a zero efficiency produces
// Inf or NaN. Records are validated before they reach this point.
func Derive(r domain.WorkRecord) DerivedStats {
	distance := r.OdometerEnd - r.OdometerStart
	gross := r.EarningsPlatformA + r.EarningsPlatformB
	fuelCost := (distance / r.FuelEfficiencySnapshot) * r.FuelPriceSnapshot
	expenses := fuelCost + r.ExtraExpenses
	net := gross - expenses
	hours := HoursBetween(r.StartTime, r.EndTime)

	var hourlyRate float64
	if hours > 0 {
		hourlyRate = net / hours
	}
	var costPerDistance float64
	if distance > 0 {
		costPerDistance = expenses / distance
	}

	return DerivedStats{
		DistanceDriven:  distance,
		GrossEarnings:   gross,
		FuelCost:        fuelCost,
		TotalExpenses:   expenses,
		NetEarnings:     net,
		HoursWorked:     hours,
		HourlyRate:      hourlyRate,
		CostPerDistance: costPerDistance,
	}
}

// HoursBetween returns the span from start to end in fractional hours.
// Both are placed on the same reference date; if end falls strictly before
// start it is moved exactly one day forward, so a shift crossing midnight
// counts correctly and equal times give zero. Spans of 24h or more cannot
// be represented. An unparseable time yields 0.
func HoursBetween(start, end string) float64 {
	s, ok := domain.ParseTimeOfDay(start)
	if !ok {
		return 0
	}
	e, ok := domain.ParseTimeOfDay(end)
	if !ok {
		return 0
	}
	if e.Before(s) {
		e = e.AddDate(0, 0, 1)
	}
	return e.Sub(s).Hours()
}

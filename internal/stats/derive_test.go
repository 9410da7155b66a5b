package stats

import (
	"math"
	"testing"

	"github.com/alexanderramin/driverlog/internal/domain"
	"github.com/stretchr/testify/assert"
)

func record(start, end string, odoStart, odoEnd, a, b, extra float64) domain.WorkRecord {
	return domain.WorkRecord{
		ID:                     "r1",
		Date:                   "2024-03-10",
		StartTime:              start,
		EndTime:                end,
		OdometerStart:          odoStart,
		OdometerEnd:            odoEnd,
		EarningsPlatformA:      a,
		EarningsPlatformB:      b,
		FuelPriceSnapshot:      6.0,
		FuelEfficiencySnapshot: 12.0,
		ExtraExpenses:          extra,
	}
}

func TestDerive_TypicalShift(t *testing.T) {
	r := record("08:00", "18:00", 1000, 1120, 200, 100, 20)
	d := Derive(r)

	assert.Equal(t, 120.0, d.DistanceDriven)
	assert.Equal(t, 300.0, d.GrossEarnings)
	assert.InDelta(t, 60.0, d.FuelCost, 1e-9)
	assert.InDelta(t, 80.0, d.TotalExpenses, 1e-9)
	assert.InDelta(t, 220.0, d.NetEarnings, 1e-9)
	assert.Equal(t, 10.0, d.HoursWorked)
	assert.InDelta(t, 22.0, d.HourlyRate, 1e-9)
	assert.InDelta(t, 80.0/120.0, d.CostPerDistance, 1e-9)
}

func TestDerive_FuelCostFormulaExact(t *testing.T) {
	r := record("08:00", "12:00", 1000.5, 1137.3, 0, 0, 0)
	r.FuelPriceSnapshot = 5.89
	r.FuelEfficiencySnapshot = 13.7

	want := (r.OdometerEnd - r.OdometerStart) / r.FuelEfficiencySnapshot * r.FuelPriceSnapshot
	assert.Equal(t, want, Derive(r).FuelCost)
}

func TestDerive_OvernightCrossing(t *testing.T) {
	d := Derive(record("22:00", "02:00", 0, 50, 100, 0, 0))
	assert.Equal(t, 4.0, d.HoursWorked)
}

func TestDerive_SameTimeSession(t *testing.T) {
	d := Derive(record("09:00", "09:00", 0, 50, 100, 0, 0))
	assert.Equal(t, 0.0, d.HoursWorked)
	assert.Equal(t, 0.0, d.HourlyRate)
}

func TestDerive_ZeroDistance(t *testing.T) {
	d := Derive(record("09:00", "11:00", 500, 500, 40, 0, 5))
	assert.Equal(t, 0.0, d.FuelCost)
	assert.Equal(t, 0.0, d.CostPerDistance)
	assert.Equal(t, 5.0, d.TotalExpenses)
	assert.Equal(t, 17.5, d.HourlyRate)
}

func TestDerive_NegativeDistance(t *testing.T) {
	d := Derive(record("09:00", "11:00", 500, 476, 40, 0, 0))
	assert.Equal(t, -24.0, d.DistanceDriven)
	assert.Less(t, d.FuelCost, 0.0)
	assert.Equal(t, 0.0, d.CostPerDistance)
	assert.Greater(t, d.NetEarnings, d.GrossEarnings)
}

func TestDerive_ZeroEfficiencyNotGuarded(t *testing.T) {
	r := record("09:00", "11:00", 0, 10, 40, 0, 0)
	r.FuelEfficiencySnapshot = 0
	d := Derive(r)
	assert.True(t, math.IsInf(d.FuelCost, 1))
}

func TestDerive_Idempotent(t *testing.T) {
	r := record("21:15", "03:40", 3021.4, 3187.9, 187.35, 92.1, 12.5)
	first := Derive(r)
	second := Derive(r)
	assert.Equal(t, math.Float64bits(first.NetEarnings), math.Float64bits(second.NetEarnings))
	assert.Equal(t, math.Float64bits(first.HourlyRate), math.Float64bits(second.HourlyRate))
	assert.Equal(t, first, second)
}

func TestDerive_DoesNotMutateInput(t *testing.T) {
	r := record("08:00", "18:00", 1000, 1120, 200, 100, 20)
	before := r
	_ = Derive(r)
	assert.Equal(t, before, r)
}

func TestHoursBetween(t *testing.T) {
	cases := []struct {
		start, end string
		want       float64
	}{
		{"08:00", "17:30", 9.5},
		{"22:00", "02:00", 4},
		{"23:45", "00:15", 0.5},
		{"09:00", "09:00", 0},
		{"00:00", "23:59", 23 + 59.0/60},
		{"08:00:00", "08:30:00", 0.5},
		{"08:00", "08:00:36", 0.01},
		{"bad", "10:00", 0},
		{"10:00", "", 0},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, HoursBetween(tc.start, tc.end), 1e-9, "%s -> %s", tc.start, tc.end)
	}
}

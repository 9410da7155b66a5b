package testutil

import (
	"github.com/alexanderramin/driverlog/internal/domain"
	"github.com/google/uuid"
)

type RecordOption func(*domain.WorkRecord)

func WithID(id string) RecordOption {
	return func(r *domain.WorkRecord) {
		r.ID = id
	}
}

func WithShift(start, end string) RecordOption {
	return func(r *domain.WorkRecord) {
		r.StartTime = start
		r.EndTime = end
	}
}

func WithOdometer(start, end float64) RecordOption {
	return func(r *domain.WorkRecord) {
		r.OdometerStart = start
		r.OdometerEnd = end
	}
}

func WithEarnings(platformA, platformB float64) RecordOption {
	return func(r *domain.WorkRecord) {
		r.EarningsPlatformA = platformA
		r.EarningsPlatformB = platformB
	}
}

func WithFuel(price, efficiency float64) RecordOption {
	return func(r *domain.WorkRecord) {
		r.FuelPriceSnapshot = price
		r.FuelEfficiencySnapshot = efficiency
	}
}

func WithExtraExpenses(v float64) RecordOption {
	return func(r *domain.WorkRecord) {
		r.ExtraExpenses = v
	}
}

func WithNotes(n string) RecordOption {
	return func(r *domain.WorkRecord) {
		r.Notes = n
	}
}

// NewTestRecord returns a valid ten-hour, 120 km shift on date. With the
// default fuel snapshot (6.00 per litre, 12 km/l) it has 60 fuel cost,
// 300 gross and 240 net.
func NewTestRecord(date string, opts ...RecordOption) domain.WorkRecord {
	r := domain.WorkRecord{
		ID:                     uuid.New().String(),
		Date:                   date,
		StartTime:              "08:00",
		EndTime:                "18:00",
		OdometerStart:          10000,
		OdometerEnd:            10120,
		EarningsPlatformA:      200,
		EarningsPlatformB:      100,
		TripCount:              12,
		FuelPriceSnapshot:      6,
		FuelEfficiencySnapshot: 12,
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

package domain

import (
	"errors"
	"fmt"
	"time"
)

// Layouts accepted for record dates and times of day.
const (
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04"
	TimeLayoutLong = "15:04:05"
)

var (
	ErrInvalidDate       = errors.New("invalid date")
	ErrInvalidTime       = errors.New("invalid time of day")
	ErrNegativeAmount    = errors.New("amount must not be negative")
	ErrInvalidEfficiency = errors.New("fuel efficiency must be greater than zero")
)

// WorkRecord is one driving shift as entered by the driver. Fuel price and
// efficiency are snapshots taken at entry time so later settings changes
// never rewrite history.
//
// JSON field names match the export format of the browser ledger this tool
// imports from.
type WorkRecord struct {
	ID                     string  `json:"id" yaml:"id"`
	Date                   string  `json:"date" yaml:"date"`
	StartTime              string  `json:"startTime" yaml:"start_time"`
	EndTime                string  `json:"endTime" yaml:"end_time"`
	OdometerStart          float64 `json:"odometerStart" yaml:"odometer_start"`
	OdometerEnd            float64 `json:"odometerEnd" yaml:"odometer_end"`
	EarningsPlatformA      float64 `json:"earningsUber" yaml:"earnings_platform_a"`
	EarningsPlatformB      float64 `json:"earnings99" yaml:"earnings_platform_b"`
	TripCount              int     `json:"trips" yaml:"trips"`
	FuelPriceSnapshot      float64 `json:"fuelPrice" yaml:"fuel_price"`
	FuelEfficiencySnapshot float64 `json:"fuelConsumption" yaml:"fuel_consumption"`
	ExtraExpenses          float64 `json:"extraExpenses" yaml:"extra_expenses"`
	Notes                  string  `json:"notes,omitempty" yaml:"notes,omitempty"`
}

// Validate checks the record at the input boundary. An odometer end below
// the start is accepted and yields a negative distance downstream.
func (r *WorkRecord) Validate() error {
	var errs []error
	if _, err := time.Parse(DateLayout, r.Date); err != nil {
		errs = append(errs, fmt.Errorf("%w: %q (want YYYY-MM-DD)", ErrInvalidDate, r.Date))
	}
	if _, ok := ParseTimeOfDay(r.StartTime); !ok {
		errs = append(errs, fmt.Errorf("%w: start %q (want HH:MM)", ErrInvalidTime, r.StartTime))
	}
	if _, ok := ParseTimeOfDay(r.EndTime); !ok {
		errs = append(errs, fmt.Errorf("%w: end %q (want HH:MM)", ErrInvalidTime, r.EndTime))
	}

	amounts := []struct {
		name  string
		value float64
	}{
		{"odometer start", r.OdometerStart},
		{"odometer end", r.OdometerEnd},
		{"platform A earnings", r.EarningsPlatformA},
		{"platform B earnings", r.EarningsPlatformB},
		{"fuel price", r.FuelPriceSnapshot},
		{"extra expenses", r.ExtraExpenses},
	}
	for _, a := range amounts {
		if a.value < 0 {
			errs = append(errs, fmt.Errorf("%s: %w", a.name, ErrNegativeAmount))
		}
	}
	if r.TripCount < 0 {
		errs = append(errs, fmt.Errorf("trips: %w", ErrNegativeAmount))
	}
	if !(r.FuelEfficiencySnapshot > 0) {
		errs = append(errs, ErrInvalidEfficiency)
	}
	return errors.Join(errs...)
}

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" on the zero date.
func ParseTimeOfDay(s string) (time.Time, bool) {
	for _, layout := range []string{TimeLayout, TimeLayoutLong} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

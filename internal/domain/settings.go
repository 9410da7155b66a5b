package domain

import (
	"errors"
	"fmt"
	"strings"
)

type Settings struct {
	DefaultFuelPrice float64 `json:"defaultFuelPrice" yaml:"default_fuel_price"`
	CarConsumption   float64 `json:"carConsumption" yaml:"car_consumption"`
	DriverName       string  `json:"driverName" yaml:"driver_name"`
}

// DefaultSettings returns the settings used before the driver saves any.
func DefaultSettings() Settings {
	return Settings{
		DefaultFuelPrice: 5.89,
		CarConsumption:   14.0,
		DriverName:       "Motorista",
	}
}

func (s *Settings) Validate() error {
	var errs []error
	if s.DefaultFuelPrice < 0 {
		errs = append(errs, fmt.Errorf("default fuel price: %w", ErrNegativeAmount))
	}
	if !(s.CarConsumption > 0) {
		errs = append(errs, ErrInvalidEfficiency)
	}
	if strings.TrimSpace(s.DriverName) == "" {
		errs = append(errs, errors.New("driver name is required"))
	}
	return errors.Join(errs...)
}

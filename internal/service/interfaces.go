package service

import (
	"context"
	"errors"

	"github.com/alexanderramin/driverlog/internal/domain"
	"github.com/alexanderramin/driverlog/internal/stats"
)

// ErrInvalidInput marks errors caused by the caller's data rather than
// the store.
var ErrInvalidInput = errors.New("invalid input")

// LedgerService owns the loaded records and settings for one driver.
type LedgerService interface {
	Records(ctx context.Context) []domain.WorkRecord
	History(ctx context.Context) []domain.WorkRecord
	Get(ctx context.Context, id string) (*domain.WorkRecord, error)
	Dashboard(ctx context.Context, chartDays int) Dashboard
	NewDraft(ctx context.Context, date string) domain.WorkRecord
	AddRecord(ctx context.Context, rec domain.WorkRecord) (*domain.WorkRecord, error)
	DeleteRecord(ctx context.Context, id string) error
	Settings(ctx context.Context) domain.Settings
	UpdateSettings(ctx context.Context, s domain.Settings) error
	Replace(ctx context.Context, records []domain.WorkRecord, s domain.Settings) error
}

// Dashboard is the overview shown on the home screen.
type Dashboard struct {
	DriverName  string               `json:"driverName"`
	RecordCount int                  `json:"recordCount"`
	Totals      stats.AggregateStats `json:"totals"`
	Chart       []stats.ChartPoint   `json:"chart"`
}

// RecordView pairs a record with its derived figures.
type RecordView struct {
	domain.WorkRecord
	Stats stats.DerivedStats `json:"stats"`
}

func NewRecordView(r domain.WorkRecord) RecordView {
	return RecordView{WorkRecord: r, Stats: stats.Derive(r)}
}

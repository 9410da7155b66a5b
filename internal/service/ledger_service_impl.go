package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/driverlog/internal/domain"
	"github.com/alexanderramin/driverlog/internal/repository"
	"github.com/alexanderramin/driverlog/internal/stats"
	"github.com/google/uuid"
)

type ledgerService struct {
	repo     repository.LedgerRepo
	observer UseCaseObserver

	mu       sync.RWMutex
	records  []domain.WorkRecord
	settings domain.Settings
}

// NewLedgerService loads the ledger once. Missing or unreadable data is
// reported to the observer and replaced by an empty ledger with default
// settings; it never fails construction.
func NewLedgerService(ctx context.Context, repo repository.LedgerRepo, observers ...UseCaseObserver) LedgerService {
	s := &ledgerService{
		repo:     repo,
		observer: useCaseObserverOrNoop(observers),
		settings: domain.DefaultSettings(),
	}
	s.load(ctx)
	return s
}

func (s *ledgerService) load(ctx context.Context) {
	startedAt := time.Now().UTC()

	records, err := s.repo.LoadRecords(ctx)
	s.observeLoad(ctx, "load-records", startedAt, err, map[string]any{"count": len(records)})
	if err == nil {
		s.records = records
	}

	settings, err := s.repo.LoadSettings(ctx)
	if err == nil {
		if verr := settings.Validate(); verr != nil {
			err = fmt.Errorf("stored settings: %w", verr)
		}
	}
	s.observeLoad(ctx, "load-settings", startedAt, err, nil)
	if err == nil {
		s.settings = settings
	}
}

// observeLoad treats a missing key as a normal first run.
func (s *ledgerService) observeLoad(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	if fields == nil {
		fields = map[string]any{}
	}
	if errors.Is(err, repository.ErrNotFound) {
		fields["fallback"] = "empty"
		err = nil
	} else if err != nil {
		fields["fallback"] = "defaults"
	}
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (s *ledgerService) Records(_ context.Context) []domain.WorkRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.records)
}

func (s *ledgerService) History(_ context.Context) []domain.WorkRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return stats.MostRecent(s.records, 0)
}

func (s *ledgerService) Get(_ context.Context, id string) (*domain.WorkRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("work record %s: %w", id, repository.ErrNotFound)
	}
	r := s.records[i]
	return &r, nil
}

func (s *ledgerService) Dashboard(_ context.Context, chartDays int) Dashboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Dashboard{
		DriverName:  s.settings.DriverName,
		RecordCount: len(s.records),
		Totals:      stats.Aggregate(s.records),
		Chart:       stats.Chart(s.records, chartDays),
	}
}

// NewDraft prefills a record for date: the odometer continues from the last
// entered record and the fuel snapshot comes from the current settings.
func (s *ledgerService) NewDraft(_ context.Context, date string) domain.WorkRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft := domain.WorkRecord{
		Date:                   date,
		FuelPriceSnapshot:      s.settings.DefaultFuelPrice,
		FuelEfficiencySnapshot: s.settings.CarConsumption,
	}
	if n := len(s.records); n > 0 {
		draft.OdometerStart = s.records[n-1].OdometerEnd
		draft.OdometerEnd = draft.OdometerStart
	}
	return draft
}

func (s *ledgerService) AddRecord(ctx context.Context, rec domain.WorkRecord) (out *domain.WorkRecord, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"date": rec.Date}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "add-record",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	rec.Notes = strings.TrimSpace(rec.Notes)
	if err = rec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	rec.ID = uuid.New().String()
	fields["id"] = rec.ID

	s.mu.Lock()
	defer s.mu.Unlock()
	next := append(slices.Clone(s.records), rec)
	if err = s.repo.SaveRecords(ctx, next); err != nil {
		return nil, fmt.Errorf("saving records: %w", err)
	}
	s.records = next
	return &rec, nil
}

func (s *ledgerService) DeleteRecord(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "delete-record",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"id": id},
		})
	}()

	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexOf(id)
	if i < 0 {
		return fmt.Errorf("work record %s: %w", id, repository.ErrNotFound)
	}
	next := slices.Delete(slices.Clone(s.records), i, i+1)
	if err = s.repo.SaveRecords(ctx, next); err != nil {
		return fmt.Errorf("saving records: %w", err)
	}
	s.records = next
	return nil
}

func (s *ledgerService) Settings(_ context.Context) domain.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// UpdateSettings only affects records entered afterwards; stored snapshots
// are left alone.
func (s *ledgerService) UpdateSettings(ctx context.Context, settings domain.Settings) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "update-settings",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
		})
	}()

	settings.DriverName = strings.TrimSpace(settings.DriverName)
	if err = settings.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err = s.repo.SaveSettings(ctx, settings); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	s.settings = settings
	return nil
}

// Replace swaps in an imported ledger. Records without an ID get one;
// duplicate IDs and invalid records reject the whole import.
func (s *ledgerService) Replace(ctx context.Context, records []domain.WorkRecord, settings domain.Settings) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"count": len(records)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "replace-ledger",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if err = settings.Validate(); err != nil {
		return fmt.Errorf("%w: imported settings: %w", ErrInvalidInput, err)
	}
	next := slices.Clone(records)
	seen := make(map[string]bool, len(next))
	for i := range next {
		if next[i].ID == "" {
			next[i].ID = uuid.New().String()
		}
		if seen[next[i].ID] {
			return fmt.Errorf("%w: record %d: duplicate id %s", ErrInvalidInput, i, next[i].ID)
		}
		seen[next[i].ID] = true
		if verr := next[i].Validate(); verr != nil {
			return fmt.Errorf("%w: record %d (%s): %w", ErrInvalidInput, i, next[i].Date, verr)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err = s.repo.SaveAll(ctx, next, settings); err != nil {
		return fmt.Errorf("saving ledger: %w", err)
	}
	s.records = next
	s.settings = settings
	return nil
}

func (s *ledgerService) indexOf(id string) int {
	return slices.IndexFunc(s.records, func(r domain.WorkRecord) bool {
		return r.ID == id
	})
}

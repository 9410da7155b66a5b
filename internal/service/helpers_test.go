package service

import (
	"context"
	"sync"
	"testing"

	"github.com/alexanderramin/driverlog/internal/repository"
	"github.com/alexanderramin/driverlog/internal/testutil"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) byName(name string) []UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []UseCaseEvent
	for _, e := range o.events {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// setupLedger returns a service over a fresh SQLite-backed repo.
func setupLedger(t *testing.T) (LedgerService, *repository.KVLedgerRepo, *recordingObserver) {
	t.Helper()
	repo := repository.NewKVLedgerRepo(repository.NewSQLiteKVStore(testutil.NewTestDB(t)))
	obs := &recordingObserver{}
	return NewLedgerService(context.Background(), repo, obs), repo, obs
}

package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/driverlog/internal/domain"
)

var ErrNotFound = errors.New("not found")

// KVStore persists opaque string values under string keys. Get wraps
// ErrNotFound when a key has never been written.
type KVStore interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Close() error
}

// BatchPutter is implemented by stores that can write several keys
// atomically.
type BatchPutter interface {
	PutMany(ctx context.Context, entries map[string]string) error
}

type LedgerRepo interface {
	LoadRecords(ctx context.Context) ([]domain.WorkRecord, error)
	SaveRecords(ctx context.Context, records []domain.WorkRecord) error
	LoadSettings(ctx context.Context) (domain.Settings, error)
	SaveSettings(ctx context.Context, s domain.Settings) error
	SaveAll(ctx context.Context, records []domain.WorkRecord, s domain.Settings) error
}

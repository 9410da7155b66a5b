package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/alexanderramin/driverlog/internal/domain"
)

// Keys under which the ledger is stored. They match the browser app's
// local storage keys so exported data round-trips unchanged.
const (
	RecordsKey  = "driverLogs"
	SettingsKey = "driverSettings"
)

// KVLedgerRepo serializes the whole record collection and the settings as
// two JSON documents.
type KVLedgerRepo struct {
	store KVStore
}

func NewKVLedgerRepo(store KVStore) *KVLedgerRepo {
	return &KVLedgerRepo{store: store}
}

// LoadRecords returns the stored records in insertion order. A missing key
// wraps ErrNotFound.
func (r *KVLedgerRepo) LoadRecords(ctx context.Context) ([]domain.WorkRecord, error) {
	raw, err := r.store.Get(ctx, RecordsKey)
	if err != nil {
		return nil, err
	}
	var records []domain.WorkRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decoding records: %w", err)
	}
	return records, nil
}

func (r *KVLedgerRepo) SaveRecords(ctx context.Context, records []domain.WorkRecord) error {
	raw, err := encodeRecords(records)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, RecordsKey, raw)
}

func (r *KVLedgerRepo) LoadSettings(ctx context.Context) (domain.Settings, error) {
	raw, err := r.store.Get(ctx, SettingsKey)
	if err != nil {
		return domain.Settings{}, err
	}
	var s domain.Settings
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return domain.Settings{}, fmt.Errorf("decoding settings: %w", err)
	}
	return s, nil
}

func (r *KVLedgerRepo) SaveSettings(ctx context.Context, s domain.Settings) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}
	return r.store.Put(ctx, SettingsKey, string(raw))
}

// SaveAll writes both documents, atomically when the store supports it.
func (r *KVLedgerRepo) SaveAll(ctx context.Context, records []domain.WorkRecord, s domain.Settings) error {
	rawRecords, err := encodeRecords(records)
	if err != nil {
		return err
	}
	rawSettings, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	if b, ok := r.store.(BatchPutter); ok {
		return b.PutMany(ctx, map[string]string{
			RecordsKey:  rawRecords,
			SettingsKey: string(rawSettings),
		})
	}
	if err := r.store.Put(ctx, RecordsKey, rawRecords); err != nil {
		return err
	}
	return r.store.Put(ctx, SettingsKey, string(rawSettings))
}

func encodeRecords(records []domain.WorkRecord) (string, error) {
	if records == nil {
		records = []domain.WorkRecord{}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("encoding records: %w", err)
	}
	return string(raw), nil
}

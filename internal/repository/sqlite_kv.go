package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/driverlog/internal/db"
)

// SQLiteKVStore keeps each key in one row of the kv table.
type SQLiteKVStore struct {
	db  db.DBTX
	uow db.UnitOfWork
	// closer is nil for tx-scoped stores.
	closer func() error
}

// NewSQLiteKVStore wraps an open database. Close closes it.
func NewSQLiteKVStore(database *sql.DB) *SQLiteKVStore {
	return &SQLiteKVStore{
		db:     database,
		uow:    db.NewSQLiteUnitOfWork(database),
		closer: database.Close,
	}
}

// NewSQLiteKVStoreTx returns a store bound to an existing transaction.
func NewSQLiteKVStoreTx(tx db.DBTX) *SQLiteKVStore {
	return &SQLiteKVStore{db: tx}
}

func (s *SQLiteKVStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("key %q: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("reading key %q: %w", key, err)
	}
	return value, nil
}

func (s *SQLiteKVStore) Put(ctx context.Context, key, value string) error {
	query := `INSERT INTO kv (key, value, updated_at, revision) VALUES (?, ?, ?, 1)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at,
			revision = kv.revision + 1`
	if _, err := s.db.ExecContext(ctx, query, key, value, nowUTC()); err != nil {
		return fmt.Errorf("writing key %q: %w", key, err)
	}
	return nil
}

// PutMany writes all entries in a single transaction.
func (s *SQLiteKVStore) PutMany(ctx context.Context, entries map[string]string) error {
	if s.uow == nil {
		for k, v := range entries {
			if err := s.Put(ctx, k, v); err != nil {
				return err
			}
		}
		return nil
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txStore := NewSQLiteKVStoreTx(tx)
		for k, v := range entries {
			if err := txStore.Put(ctx, k, v); err != nil {
				return err
			}
		}
		return nil
	})
}

// Revision reports how many times key has been written.
func (s *SQLiteKVStore) Revision(ctx context.Context, key string) (int, error) {
	var rev int
	err := s.db.QueryRowContext(ctx, `SELECT revision FROM kv WHERE key = ?`, key).Scan(&rev)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("key %q: %w", key, ErrNotFound)
		}
		return 0, fmt.Errorf("reading revision for %q: %w", key, err)
	}
	return rev, nil
}

func (s *SQLiteKVStore) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer()
}

package repository

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/alexanderramin/driverlog/internal/domain"
	"github.com/alexanderramin/driverlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKVLedgerRepo_MissingKeys(t *testing.T) {
	repo := NewKVLedgerRepo(NewSQLiteKVStore(testutil.NewTestDB(t)))
	ctx := context.Background()

	_, err := repo.LoadRecords(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.LoadSettings(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestKVLedgerRepo_RecordsRoundTripInOrder(t *testing.T) {
	repo := NewKVLedgerRepo(NewSQLiteKVStore(testutil.NewTestDB(t)))
	ctx := context.Background()

	records := []domain.WorkRecord{
		testutil.NewTestRecord("2024-02-02", testutil.WithID("b")),
		testutil.NewTestRecord("2024-02-01", testutil.WithID("a"), testutil.WithNotes("rain")),
	}
	require.NoError(t, repo.SaveRecords(ctx, records))

	got, err := repo.LoadRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, got)
}

func TestKVLedgerRepo_NilRecordsStoredAsEmptyArray(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := NewSQLiteKVStore(database)
	repo := NewKVLedgerRepo(store)
	ctx := context.Background()

	require.NoError(t, repo.SaveRecords(ctx, nil))
	raw, err := store.Get(ctx, RecordsKey)
	require.NoError(t, err)
	assert.Equal(t, "[]", raw)
}

func TestKVLedgerRepo_WireFormatMatchesBrowserExport(t *testing.T) {
	database := testutil.NewTestDB(t)
	store := NewSQLiteKVStore(database)
	repo := NewKVLedgerRepo(store)
	ctx := context.Background()

	rec := testutil.NewTestRecord("2024-02-01", testutil.WithID("r1"), testutil.WithEarnings(150, 50))
	require.NoError(t, repo.SaveRecords(ctx, []domain.WorkRecord{rec}))

	raw, err := store.Get(ctx, RecordsKey)
	require.NoError(t, err)
	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, 150.0, decoded[0]["earningsUber"])
	assert.Equal(t, 50.0, decoded[0]["earnings99"])
	assert.Equal(t, 12.0, decoded[0]["fuelConsumption"])
	assert.NotContains(t, decoded[0], "notes")
}

func TestKVLedgerRepo_SettingsRoundTrip(t *testing.T) {
	repo := NewKVLedgerRepo(NewSQLiteKVStore(testutil.NewTestDB(t)))
	ctx := context.Background()

	s := domain.Settings{DefaultFuelPrice: 6.19, CarConsumption: 11.5, DriverName: "Ana"}
	require.NoError(t, repo.SaveSettings(ctx, s))

	got, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, s, got)
}

func TestKVLedgerRepo_CorruptRecords(t *testing.T) {
	store := NewSQLiteKVStore(testutil.NewTestDB(t))
	repo := NewKVLedgerRepo(store)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, RecordsKey, "{not json"))
	_, err := repo.LoadRecords(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding records")
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestKVLedgerRepo_SaveAllBatched(t *testing.T) {
	store := NewSQLiteKVStore(testutil.NewTestDB(t))
	repo := NewKVLedgerRepo(store)
	ctx := context.Background()

	records := []domain.WorkRecord{testutil.NewTestRecord("2024-03-01")}
	settings := domain.DefaultSettings()
	require.NoError(t, repo.SaveAll(ctx, records, settings))

	got, err := repo.LoadRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, got)
	gotSettings, err := repo.LoadSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings, gotSettings)
}

func TestKVLedgerRepo_SaveAllUnbatched(t *testing.T) {
	store, err := NewFileKVStore(t.TempDir())
	require.NoError(t, err)
	repo := NewKVLedgerRepo(store)
	ctx := context.Background()

	require.NoError(t, repo.SaveAll(ctx, nil, domain.DefaultSettings()))

	got, err := repo.LoadRecords(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
	_, err = repo.LoadSettings(ctx)
	require.NoError(t, err)
}

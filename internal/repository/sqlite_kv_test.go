package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/driverlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteKVStore_GetMissing(t *testing.T) {
	store := NewSQLiteKVStore(testutil.NewTestDB(t))

	_, err := store.Get(context.Background(), "driverLogs")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteKVStore_PutGetOverwrite(t *testing.T) {
	store := NewSQLiteKVStore(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "k", "one"))
	require.NoError(t, store.Put(ctx, "k", "two"))

	v, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "two", v)

	rev, err := store.Revision(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, 2, rev)
}

func TestSQLiteKVStore_PutMany(t *testing.T) {
	store := NewSQLiteKVStore(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, store.PutMany(ctx, map[string]string{"a": "1", "b": "2"}))

	a, err := store.Get(ctx, "a")
	require.NoError(t, err)
	b, err := store.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "1", a)
	assert.Equal(t, "2", b)
}

func TestSQLiteKVStore_RevisionMissing(t *testing.T) {
	store := NewSQLiteKVStore(testutil.NewTestDB(t))
	_, err := store.Revision(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

package recstore

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/kennelops/musher/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := schema.ParseDay(s)
	require.NoError(t, err)
	return d
}

func TestSQLStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "musher_test.db")

	store, err := NewRecordStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	// Empty store
	roster, err := store.Roster(ctx)
	require.NoError(t, err)
	assert.Empty(t, roster)

	// Insert dogs out of ID order
	require.NoError(t, store.UpsertDog(ctx, schema.Dog{ID: "D2", Name: "Togo", Age: 6, Role: "wheel"}))
	require.NoError(t, store.UpsertDog(ctx, schema.Dog{ID: "D1", Name: "Balto", Age: 4, Role: "lead"}))

	roster, err = store.Roster(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "D1", roster[0].ID, "Roster should be sorted by ID")
	assert.Equal(t, "Balto", roster[0].Name)

	// Upserting the same dog updates in place
	require.NoError(t, store.UpsertDog(ctx, schema.Dog{ID: "D1", Name: "Balto", Age: 5, Role: "lead"}))
	roster, err = store.Roster(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, 5, roster[0].Age)

	// Records out of date order
	created, err := store.UpsertRecord(ctx, schema.WorkRecord{DogID: "D1", Date: day(t, "2026-02-09"), Worked: true, Distance: 14.5, Tag: "training"})
	require.NoError(t, err)
	assert.True(t, created)
	created, err = store.UpsertRecord(ctx, schema.WorkRecord{DogID: "D1", Date: day(t, "2026-02-08"), Worked: false})
	require.NoError(t, err)
	assert.True(t, created)

	history, err := store.History(ctx, "D1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, day(t, "2026-02-08"), history[0].Date, "History should be sorted by date")
	assert.False(t, history[0].Worked)
	assert.True(t, history[1].Worked)
	assert.InDelta(t, 14.5, history[1].Distance, 0.001)
	assert.Equal(t, "training", history[1].Tag)

	// Replacing a record preserves the unique (dog, date) key
	created, err = store.UpsertRecord(ctx, schema.WorkRecord{DogID: "D1", Date: day(t, "2026-02-09"), Worked: true, Distance: 20})
	require.NoError(t, err)
	assert.False(t, created, "Replacing an existing record is not a create")

	history, err = store.History(ctx, "D1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.InDelta(t, 20.0, history[1].Distance, 0.001)

	// History is isolated per dog
	history, err = store.History(ctx, "D2")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestSQLStoreStatus(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "musher_status.db")

	store, err := NewRecordStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.True(t, status.Connected)
	assert.Zero(t, status.Dogs)
	assert.Zero(t, status.Records)

	require.NoError(t, store.UpsertDog(ctx, schema.Dog{ID: "D1", Name: "Balto"}))
	_, err = store.UpsertRecord(ctx, schema.WorkRecord{DogID: "D1", Date: day(t, "2026-02-05"), Worked: true})
	require.NoError(t, err)
	_, err = store.UpsertRecord(ctx, schema.WorkRecord{DogID: "D1", Date: day(t, "2026-02-10"), Worked: true})
	require.NoError(t, err)

	status, err = store.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, status.Dogs)
	assert.Equal(t, 2, status.Records)
	assert.Equal(t, day(t, "2026-02-05"), status.FirstDate)
	assert.Equal(t, day(t, "2026-02-10"), status.LastDate)
}

func TestSQLStoreReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "musher_reopen.db")

	store, err := NewRecordStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.UpsertDog(ctx, schema.Dog{ID: "D1", Name: "Balto"}))
	require.NoError(t, store.Close())

	// Data survives a close/reopen cycle
	store, err = NewRecordStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	roster, err := store.Roster(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "Balto", roster[0].Name)
}

func TestNewRecordStoreMemory(t *testing.T) {
	store, err := NewRecordStore(schema.MemoryBackend, "")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	_, ok := store.(*MemoryStore)
	assert.True(t, ok, "Memory backend should return the in-memory store")
}

func TestNewRecordStoreUnsupported(t *testing.T) {
	_, err := NewRecordStore(schema.StoreBackend("redis"), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported store backend")
}

func TestInitStoreIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "musher_init.db")
	initOnce = sync.Once{}  // Reset for test
	closeOnce = sync.Once{} // Reset for test

	err1 := InitStore(schema.SQLiteBackend, dbPath)
	err2 := InitStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err1)
	require.NoError(t, err2)
	require.NotNil(t, Manager.GetRecordStore())

	CloseStore()

	_, err := os.Stat(dbPath)
	require.NoError(t, err, "Database file should exist after init")
}

func TestClearStoreSQLite(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "musher_clear.db")

	store, err := NewRecordStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	require.NoError(t, ClearStore(schema.SQLiteBackend, dbPath, ""))
	_, err = os.Stat(dbPath)
	assert.True(t, os.IsNotExist(err), "Database file should be removed")

	// Clearing a missing file is not an error
	require.NoError(t, ClearStore(schema.SQLiteBackend, dbPath, ""))
}

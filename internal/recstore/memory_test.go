package recstore

import (
	"context"
	"testing"

	"github.com/kennelops/musher/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.UpsertDog(ctx, schema.Dog{ID: "D2", Name: "Togo"}))
	require.NoError(t, store.UpsertDog(ctx, schema.Dog{ID: "D1", Name: "Balto"}))

	roster, err := store.Roster(ctx)
	require.NoError(t, err)
	require.Len(t, roster, 2)
	assert.Equal(t, "D1", roster[0].ID, "Roster should be sorted by ID")

	created, err := store.UpsertRecord(ctx, schema.WorkRecord{DogID: "D1", Date: day(t, "2026-02-10"), Worked: true, Distance: 12})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = store.UpsertRecord(ctx, schema.WorkRecord{DogID: "D1", Date: day(t, "2026-02-10"), Worked: false})
	require.NoError(t, err)
	assert.False(t, created, "Same (dog, date) key should replace, not create")

	history, err := store.History(ctx, "D1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.False(t, history[0].Worked, "Replacement should win")

	status, err := store.Status(ctx)
	require.NoError(t, err)
	assert.Equal(t, "memory", status.Backend)
	assert.Equal(t, 2, status.Dogs)
	assert.Equal(t, 1, status.Records)
	assert.Equal(t, day(t, "2026-02-10"), status.FirstDate)
	assert.Equal(t, day(t, "2026-02-10"), status.LastDate)
}

func TestMemoryStoreHistoryOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, d := range []string{"2026-02-10", "2026-02-08", "2026-02-09"} {
		_, err := store.UpsertRecord(ctx, schema.WorkRecord{DogID: "D1", Date: day(t, d), Worked: true})
		require.NoError(t, err)
	}

	history, err := store.History(ctx, "D1")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, day(t, "2026-02-08"), history[0].Date)
	assert.Equal(t, day(t, "2026-02-10"), history[2].Date)
}

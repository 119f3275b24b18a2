package recstore

import (
	"context"
	"sort"
	"sync"

	"github.com/kennelops/musher/internal/contract"
	"github.com/kennelops/musher/schema"
)

// MemoryStore is an in-memory RecordStore. It backs the memory backend and
// lets tests exercise commands without a database.
type MemoryStore struct {
	mu      sync.RWMutex
	dogs    map[string]schema.Dog
	records map[string]map[string]schema.WorkRecord // dog ID -> date string -> record
}

var _ contract.RecordStore = &MemoryStore{} // Compile-time check

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		dogs:    make(map[string]schema.Dog),
		records: make(map[string]map[string]schema.WorkRecord),
	}
}

// Roster returns every dog, sorted by ID.
func (st *MemoryStore) Roster(_ context.Context) ([]schema.Dog, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	roster := make([]schema.Dog, 0, len(st.dogs))
	for _, dog := range st.dogs {
		roster = append(roster, dog)
	}
	sort.Slice(roster, func(i, j int) bool { return roster[i].ID < roster[j].ID })
	return roster, nil
}

// History returns every record for one dog, ordered by date ascending.
func (st *MemoryStore) History(_ context.Context, dogID string) ([]schema.WorkRecord, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	byDate := st.records[dogID]
	history := make([]schema.WorkRecord, 0, len(byDate))
	for _, rec := range byDate {
		history = append(history, rec)
	}
	sort.Slice(history, func(i, j int) bool { return history[i].Date.Before(history[j].Date) })
	return history, nil
}

// UpsertDog inserts the dog or updates its name, age and role.
func (st *MemoryStore) UpsertDog(_ context.Context, dog schema.Dog) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.dogs[dog.ID] = dog
	return nil
}

// UpsertRecord inserts or replaces the record for (DogID, Date). It reports
// whether a new row was created.
func (st *MemoryStore) UpsertRecord(_ context.Context, rec schema.WorkRecord) (bool, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	byDate, ok := st.records[rec.DogID]
	if !ok {
		byDate = make(map[string]schema.WorkRecord)
		st.records[rec.DogID] = byDate
	}
	key := schema.FormatDay(rec.Date)
	_, existed := byDate[key]
	byDate[key] = rec
	return !existed, nil
}

// Status returns store-level counters for diagnostics.
func (st *MemoryStore) Status(_ context.Context) (schema.StoreStatus, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	status := schema.StoreStatus{
		Backend:   string(schema.MemoryBackend),
		Connected: true,
		Dogs:      len(st.dogs),
	}
	for _, byDate := range st.records {
		for _, rec := range byDate {
			status.Records++
			if status.FirstDate.IsZero() || rec.Date.Before(status.FirstDate) {
				status.FirstDate = rec.Date
			}
			if rec.Date.After(status.LastDate) {
				status.LastDate = rec.Date
			}
		}
	}
	return status, nil
}

// Close is a no-op for the in-memory store.
func (st *MemoryStore) Close() error {
	return nil
}

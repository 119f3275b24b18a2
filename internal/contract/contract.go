// Package contract provides interfaces and shared utilities for the musher
// CLI's internal architecture.
package contract

import (
	"context"

	"github.com/kennelops/musher/schema"
)

// RecordStore defines the read/write contract for normalized per-dog,
// per-day work records. The analytical core only reads; writes come from the
// record commands and the CSV importer. Implementations must keep the
// (dog, date) key unique.
type RecordStore interface {
	// Roster returns every dog, sorted by ID.
	Roster(ctx context.Context) ([]schema.Dog, error)

	// History returns every record for one dog, ordered by date ascending.
	History(ctx context.Context, dogID string) ([]schema.WorkRecord, error)

	// UpsertDog inserts the dog or updates its name, age and role.
	UpsertDog(ctx context.Context, dog schema.Dog) error

	// UpsertRecord inserts or replaces the record for (DogID, Date).
	// It reports whether a new row was created.
	UpsertRecord(ctx context.Context, rec schema.WorkRecord) (created bool, err error)

	// Status returns store-level counters for diagnostics.
	Status(ctx context.Context) (schema.StoreStatus, error)

	// Close closes the underlying connection.
	Close() error
}

// StoreManager hands out the active record store. It exists so commands and
// the MCP server can be tested against an in-memory store.
type StoreManager interface {
	GetRecordStore() RecordStore
}

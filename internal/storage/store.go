// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/mmynk/invoicer/internal/models"
)

// Store holds the full invoice collection as one flat unit.
// This abstraction allows swapping storage backends (JSON file, SQLite, etc.)
// without changing the service layer.
//
// Reads and writes cover the whole collection: a mutation is load-all,
// modify, save-all. SaveAll replaces whatever was stored before, so
// concurrent writers are last-write-wins at collection granularity; the
// service layer serializes its read-modify-write cycles behind a mutex.
type Store interface {
	// LoadAll returns every stored invoice. A store with no data yet
	// returns an empty collection, not an error.
	LoadAll(ctx context.Context) ([]models.Invoice, error)

	// SaveAll replaces the stored collection with the given one.
	SaveAll(ctx context.Context, invoices []models.Invoice) error

	// Close releases any resources held by the store.
	Close() error
}

// Package jsonfile provides a flat JSON-file implementation of the
// storage.Store interface. The whole invoice collection lives in one
// pretty-printed JSON array, which keeps the data file hand-inspectable.
package jsonfile

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"github.com/mmynk/invoicer/internal/models"
	"github.com/mmynk/invoicer/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store over a single JSON file.
// A mutex serializes file access within the process; there is no
// cross-process locking.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a Store writing to the given file path.
// Parent directories are created; the file itself is created lazily on the
// first SaveAll, and a missing file reads as an empty collection.
func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create data directory")
	}
	return &Store{path: path}, nil
}

// Close is a no-op; the file is opened and closed per operation.
func (s *Store) Close() error {
	return nil
}

// LoadAll reads the full collection from the data file.
func (s *Store) LoadAll(ctx context.Context) ([]models.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return []models.Invoice{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read data file")
	}

	var invoices []models.Invoice
	if err := json.Unmarshal(data, &invoices); err != nil {
		return nil, errors.Wrap(err, "failed to decode data file")
	}
	if invoices == nil {
		invoices = []models.Invoice{}
	}
	return invoices, nil
}

// SaveAll replaces the data file with the given collection. The write goes
// through a temp file and rename so a crash mid-write cannot leave a
// truncated data file behind.
func (s *Store) SaveAll(ctx context.Context, invoices []models.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if invoices == nil {
		invoices = []models.Invoice{}
	}
	data, err := json.MarshalIndent(invoices, "", "    ")
	if err != nil {
		return errors.Wrap(err, "failed to encode invoices")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".invoices-*.json")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to write temp file")
	}
	// CreateTemp opens the file 0600; the data file should carry normal
	// permissions once renamed into place.
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to set data file permissions")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "failed to sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close temp file")
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Wrap(err, "failed to replace data file")
	}
	return nil
}

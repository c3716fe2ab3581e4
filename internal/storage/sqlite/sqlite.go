// Package sqlite provides a SQLite-backed implementation of the
// storage.Store interface.
//
// The store keeps the flat-collection contract: SaveAll replaces the whole
// invoice set in one transaction. That matches the service layer's
// load-all/mutate/save-all model and keeps this backend interchangeable
// with the JSON-file one.
package sqlite

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/invoicer/internal/models"
	"github.com/mmynk/invoicer/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store implements storage.Store using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new Store with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create database directory")
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to enable foreign keys")
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, errors.Wrap(err, "failed to run migrations")
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// LoadAll reads every invoice with its details, ordered by invoice id and
// detail position.
func (s *Store) LoadAll(ctx context.Context) ([]models.Invoice, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, invoice_number, customer_name, date, total_amount FROM invoices ORDER BY id",
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query invoices")
	}
	defer rows.Close()

	invoices := []models.Invoice{}
	for rows.Next() {
		var inv models.Invoice
		var number, total string
		if err := rows.Scan(&inv.ID, &number, &inv.CustomerName, &inv.Date, &total); err != nil {
			return nil, errors.Wrap(err, "failed to scan invoice")
		}
		inv.InvoiceNumber = models.FlexString(number)
		if inv.TotalAmount, err = decimal.NewFromString(total); err != nil {
			return nil, errors.Wrapf(err, "invalid total_amount for invoice %d", inv.ID)
		}
		inv.Details = []models.Detail{}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate invoices")
	}

	for i := range invoices {
		details, err := s.loadDetails(ctx, invoices[i].ID)
		if err != nil {
			return nil, err
		}
		invoices[i].Details = details
	}

	return invoices, nil
}

func (s *Store) loadDetails(ctx context.Context, invoiceID int64) ([]models.Detail, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT detail_id, description, quantity, unit_price, line_total FROM invoice_details WHERE invoice_id = ? ORDER BY pos",
		invoiceID,
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to query details")
	}
	defer rows.Close()

	details := []models.Detail{}
	for rows.Next() {
		var d models.Detail
		var price, total string
		if err := rows.Scan(&d.ID, &d.Description, &d.Quantity, &price, &total); err != nil {
			return nil, errors.Wrap(err, "failed to scan detail")
		}
		if d.UnitPrice, err = decimal.NewFromString(price); err != nil {
			return nil, errors.Wrapf(err, "invalid unit_price for detail %d", d.ID)
		}
		if d.LineTotal, err = decimal.NewFromString(total); err != nil {
			return nil, errors.Wrapf(err, "invalid line_total for detail %d", d.ID)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "failed to iterate details")
	}
	return details, nil
}

// SaveAll replaces the stored collection with the given one in a single
// transaction.
func (s *Store) SaveAll(ctx context.Context, invoices []models.Invoice) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "failed to begin transaction")
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM invoice_details"); err != nil {
		return errors.Wrap(err, "failed to clear details")
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM invoices"); err != nil {
		return errors.Wrap(err, "failed to clear invoices")
	}

	for _, inv := range invoices {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO invoices (id, invoice_number, customer_name, date, total_amount) VALUES (?, ?, ?, ?, ?)",
			inv.ID, string(inv.InvoiceNumber), inv.CustomerName, inv.Date, inv.TotalAmount.String(),
		)
		if err != nil {
			return errors.Wrapf(err, "failed to insert invoice %d", inv.ID)
		}

		for pos, d := range inv.Details {
			_, err := tx.ExecContext(ctx,
				"INSERT INTO invoice_details (invoice_id, detail_id, pos, description, quantity, unit_price, line_total) VALUES (?, ?, ?, ?, ?, ?, ?)",
				inv.ID, d.ID, pos, d.Description, d.Quantity, d.UnitPrice.String(), d.LineTotal.String(),
			)
			if err != nil {
				return errors.Wrapf(err, "failed to insert detail %d of invoice %d", d.ID, inv.ID)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return errors.Wrap(err, "failed to commit transaction")
	}
	return nil
}

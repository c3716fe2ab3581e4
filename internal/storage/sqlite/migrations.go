package sqlite

import "database/sql"

// migrations contains the SQL statements to set up the database schema.
// These run on startup to ensure tables exist.
// Monetary columns are TEXT: decimals round-trip exactly as strings,
// REAL would reintroduce binary-float drift.
const schema = `
CREATE TABLE IF NOT EXISTS invoices (
    id INTEGER PRIMARY KEY,
    invoice_number TEXT NOT NULL,
    customer_name TEXT NOT NULL,
    date TEXT NOT NULL,
    total_amount TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS invoice_details (
    invoice_id INTEGER NOT NULL,
    detail_id INTEGER NOT NULL,
    pos INTEGER NOT NULL,
    description TEXT NOT NULL,
    quantity INTEGER NOT NULL,
    unit_price TEXT NOT NULL,
    line_total TEXT NOT NULL,
    PRIMARY KEY (invoice_id, detail_id),
    FOREIGN KEY (invoice_id) REFERENCES invoices(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_invoice_details_invoice_id ON invoice_details(invoice_id);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}

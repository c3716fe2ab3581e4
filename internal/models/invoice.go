package models

import "github.com/shopspring/decimal"

// Invoice represents a billing document with its line items.
type Invoice struct {
	// ID is the unique numeric identifier, assigned on creation.
	ID int64 `json:"id"`

	// InvoiceNumber is the human-facing invoice reference. Legacy data
	// stored it as a bare number, so it accepts both string and numeric JSON.
	InvoiceNumber FlexString `json:"invoice_number"`

	// CustomerName is the name of the customer being billed.
	CustomerName string `json:"customer_name"`

	// Date is the invoice date in YYYY-MM-DD form.
	Date string `json:"date"`

	// Details are the line items, in presentation order.
	Details []Detail `json:"details"`

	// TotalAmount is the sum of all line totals. It is derived on every
	// write and never set directly by a caller.
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// Detail is one priced line item on an invoice.
// Detail IDs are scoped to their parent invoice, not globally unique.
type Detail struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`

	// LineTotal is Quantity * UnitPrice, derived on every write.
	LineTotal decimal.Decimal `json:"line_total"`
}

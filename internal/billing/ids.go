package billing

import "github.com/mmynk/invoicer/internal/models"

// NextInvoiceID returns max(existing invoice IDs) + 1.
//
// The system this replaces assigned count(existing)+1, which reissues IDs
// after a deletion. IDs are returned to clients, so the max-based scheme is
// the one documented in the interface contract.
func NextInvoiceID(invoices []models.Invoice) int64 {
	var max int64
	for _, inv := range invoices {
		if inv.ID > max {
			max = inv.ID
		}
	}
	return max + 1
}

// NextDetailID returns max(existing detail IDs) + 1, scoped to one invoice.
func NextDetailID(details []models.Detail) int64 {
	var max int64
	for _, d := range details {
		if d.ID > max {
			max = d.ID
		}
	}
	return max + 1
}

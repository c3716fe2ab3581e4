// Package billing holds the pure invoice arithmetic: line and invoice
// totals, identifier assignment, and the detail merge used by updates.
// Everything here is side-effect free; persistence lives in storage.
package billing

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/invoicer/internal/models"
)

// LineTotal returns quantity * unitPrice using exact decimal arithmetic.
// Totals are persisted and redisplayed, so binary floats are not acceptable
// here: 3 * 1.10 must be exactly 3.30.
func LineTotal(quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	return unitPrice.Mul(decimal.NewFromInt(quantity))
}

// InvoiceTotal returns the sum of line totals over the given details.
// An empty list totals zero.
func InvoiceTotal(details []models.Detail) decimal.Decimal {
	total := decimal.Zero
	for _, d := range details {
		total = total.Add(LineTotal(d.Quantity, d.UnitPrice))
	}
	return total
}

// Recalculate rewrites every derived field on the invoice: each detail's
// LineTotal and the invoice's TotalAmount. Call after any mutation of the
// detail list.
func Recalculate(inv *models.Invoice) {
	for i := range inv.Details {
		inv.Details[i].LineTotal = LineTotal(inv.Details[i].Quantity, inv.Details[i].UnitPrice)
	}
	inv.TotalAmount = InvoiceTotal(inv.Details)
}

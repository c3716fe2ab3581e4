package service

import (
	"github.com/mmynk/invoicer/internal/apperr"
	"github.com/mmynk/invoicer/internal/billing"
	"github.com/mmynk/invoicer/internal/models"
)

// DetailPayload is one line-item record from a create or update body.
// All fields are optional at the schema level; which ones are meaningful
// depends on whether the record edits an existing detail or creates one.
type DetailPayload struct {
	ID          *int64              `json:"id"`
	Description *string             `json:"description"`
	Quantity    *models.FlexInt     `json:"quantity" validate:"omitempty,gte=0"`
	UnitPrice   *models.FlexDecimal `json:"unit_price"`
}

// CreateInvoiceRequest is the body of a create call.
type CreateInvoiceRequest struct {
	CustomerName  string            `json:"customer_name" validate:"required"`
	InvoiceNumber models.FlexString `json:"invoice_number"`
	Date          string            `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Details       []DetailPayload   `json:"details" validate:"required,min=1,dive"`
}

// UpdateInvoiceRequest is the body of an update call. Pointer fields
// distinguish "absent" from "set to zero value": only supplied fields are
// overwritten, and a supplied Details list is merged as a diff.
// A missing or zero ID is a validation failure (400), not a lookup miss:
// 404 is reserved for well-formed ids that name no stored invoice.
type UpdateInvoiceRequest struct {
	ID            int64              `json:"id" validate:"required"`
	CustomerName  *string            `json:"customer_name"`
	InvoiceNumber *models.FlexString `json:"invoice_number"`
	Date          *string            `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Details       *[]DetailPayload   `json:"details" validate:"omitempty,dive"`
}

// DeleteInvoiceRequest is the body of a delete call. With DetailID absent
// the whole invoice is deleted; with it present, only that line item.
type DeleteInvoiceRequest struct {
	InvoiceID int64  `json:"invoice_id" validate:"required"`
	DetailID  *int64 `json:"detail_id"`
}

// edits converts payload records to billing edits, rejecting negative money.
func edits(payloads []DetailPayload) ([]billing.DetailEdit, error) {
	out := make([]billing.DetailEdit, len(payloads))
	for i, p := range payloads {
		if p.UnitPrice != nil && p.UnitPrice.IsNegative() {
			return nil, apperr.Validation("unit_price must be non-negative")
		}
		if p.Quantity != nil && *p.Quantity < 0 {
			return nil, apperr.Validation("quantity must be non-negative")
		}
		e := billing.DetailEdit{
			ID:          p.ID,
			Description: p.Description,
		}
		if p.Quantity != nil {
			q := p.Quantity.Int64()
			e.Quantity = &q
		}
		if p.UnitPrice != nil {
			price := p.UnitPrice.Decimal
			e.UnitPrice = &price
		}
		out[i] = e
	}
	return out, nil
}

package billing

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/invoicer/internal/models"
)

// DetailEdit is a partial line-item record from an update payload.
// Nil fields were absent from the payload and leave the stored value alone.
type DetailEdit struct {
	ID          *int64
	Description *string
	Quantity    *int64
	UnitPrice   *decimal.Decimal
}

// MergeDetails reconciles incoming edits against an invoice's existing
// details and returns the new detail list:
//
//   - An edit whose ID matches an existing detail overwrites just the fields
//     present in the edit; the detail keeps its position.
//   - An edit with an unrecognized ID is appended as a new detail under that
//     ID (fallback for client-supplied IDs with no stored record).
//   - An edit with no ID is appended under the next free ID; the running
//     maximum is tracked so several new details in one batch get distinct
//     sequential IDs.
//
// Existing details not referenced by any edit survive unchanged in their
// original position: an update payload is a diff, not a replacement.
// Callers recompute derived fields afterwards via Recalculate.
func MergeDetails(existing []models.Detail, edits []DetailEdit) []models.Detail {
	merged := make([]models.Detail, len(existing))
	copy(merged, existing)

	index := make(map[int64]int, len(merged))
	for i, d := range merged {
		index[d.ID] = i
	}

	nextID := NextDetailID(existing)
	for _, e := range edits {
		if e.ID != nil {
			if i, ok := index[*e.ID]; ok {
				applyEdit(&merged[i], e)
				continue
			}
			d := newDetail(e, *e.ID)
			merged = append(merged, d)
			index[d.ID] = len(merged) - 1
			if *e.ID >= nextID {
				nextID = *e.ID + 1
			}
			continue
		}

		d := newDetail(e, nextID)
		nextID++
		merged = append(merged, d)
		index[d.ID] = len(merged) - 1
	}

	return merged
}

// applyEdit overwrites only the fields present on the edit.
func applyEdit(d *models.Detail, e DetailEdit) {
	if e.Description != nil {
		d.Description = *e.Description
	}
	if e.Quantity != nil {
		d.Quantity = *e.Quantity
	}
	if e.UnitPrice != nil {
		d.UnitPrice = *e.UnitPrice
	}
}

// newDetail builds a fresh detail from an edit, defaulting absent fields.
func newDetail(e DetailEdit, id int64) models.Detail {
	d := models.Detail{ID: id, UnitPrice: decimal.Zero}
	applyEdit(&d, e)
	return d
}

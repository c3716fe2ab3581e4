// Package models defines the core domain models for the invoice backend.
//
// # Models
//
//   - Invoice: a billing document owning an ordered list of line items
//   - Detail: one priced line item (description, quantity, unit price)
//
// TotalAmount and LineTotal are derived fields. They are recomputed by the
// billing package on every write and are never taken from caller input.
//
// # Design Principles
//
//  1. **Exact money**: all monetary values are decimal.Decimal, never floats,
//     because totals are persisted and redisplayed.
//  2. **Scoped detail IDs**: detail IDs are unique within their invoice only.
//  3. **Tolerant JSON scalars**: FlexString/FlexInt/FlexDecimal absorb the
//     loose typing of existing clients and data files (numbers as strings,
//     empty strings for zero) at the boundary, so the rest of the code works
//     with strict types.
package models

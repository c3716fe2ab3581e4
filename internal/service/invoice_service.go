// Package service implements the invoice CRUD operations on top of the
// billing logic and a storage.Store.
package service

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/invoicer/internal/apperr"
	"github.com/mmynk/invoicer/internal/billing"
	"github.com/mmynk/invoicer/internal/models"
	"github.com/mmynk/invoicer/internal/storage"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// InvoiceService runs list/create/update/delete against the store.
//
// Every mutation is a load-all/modify/save-all cycle over the flat
// collection, which is not atomic on its own. The mutex serializes those
// cycles so two concurrent writers cannot lose each other's changes within
// this process. There is no cross-process coordination.
type InvoiceService struct {
	store storage.Store
	mu    sync.Mutex
}

// NewInvoiceService creates an InvoiceService with the given storage backend.
func NewInvoiceService(store storage.Store) *InvoiceService {
	return &InvoiceService{store: store}
}

// List returns every stored invoice. A store read failure propagates as a
// store error rather than masquerading as an empty collection.
func (s *InvoiceService) List(ctx context.Context) ([]models.Invoice, error) {
	invoices, err := s.store.LoadAll(ctx)
	if err != nil {
		slog.Error("List failed", "error", err)
		return nil, apperr.Store(err, "Failed to read invoices.")
	}
	return invoices, nil
}

// Create validates the request, assigns invoice and detail IDs, computes
// totals, and appends the new invoice to the store.
func (s *InvoiceService) Create(ctx context.Context, req CreateInvoiceRequest) (models.Invoice, error) {
	if req.CustomerName == "" {
		return models.Invoice{}, apperr.Validation("Customer name is required.")
	}
	if len(req.Details) == 0 {
		return models.Invoice{}, apperr.Validation("Details are required and must be a non-empty list.")
	}
	if err := validate.Struct(req); err != nil {
		return models.Invoice{}, validationError(err)
	}

	detailEdits, err := edits(req.Details)
	if err != nil {
		return models.Invoice{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	invoices, err := s.store.LoadAll(ctx)
	if err != nil {
		slog.Error("Create: load failed", "error", err)
		return models.Invoice{}, apperr.Store(err, "Failed to read invoices.")
	}

	inv := models.Invoice{
		ID:           billing.NextInvoiceID(invoices),
		CustomerName: req.CustomerName,
		Date:         req.Date,
	}
	if inv.Date == "" {
		inv.Date = time.Now().Format("2006-01-02")
	}
	inv.InvoiceNumber = req.InvoiceNumber
	if inv.InvoiceNumber == "" {
		inv.InvoiceNumber = models.FlexString(strconv.FormatInt(inv.ID, 10))
	}

	// Client-sent detail IDs are ignored on create; a fresh invoice always
	// numbers its details 1..n in payload order.
	for i := range detailEdits {
		detailEdits[i].ID = nil
	}
	inv.Details = billing.MergeDetails(nil, detailEdits)
	billing.Recalculate(&inv)

	invoices = append(invoices, inv)
	if err := s.store.SaveAll(ctx, invoices); err != nil {
		slog.Error("Create: save failed", "error", err)
		return models.Invoice{}, apperr.Store(err, "Failed to save invoices.")
	}

	slog.Info("Invoice created", "invoice_id", inv.ID, "details", len(inv.Details), "total", inv.TotalAmount)
	return inv, nil
}

// Update merges the request into an existing invoice: supplied top-level
// fields are overwritten, a supplied details list is merged as a diff, and
// derived totals are recomputed from the merged set.
func (s *InvoiceService) Update(ctx context.Context, req UpdateInvoiceRequest) (models.Invoice, error) {
	if err := validate.Struct(req); err != nil {
		return models.Invoice{}, validationError(err)
	}

	var detailEdits []billing.DetailEdit
	if req.Details != nil {
		var err error
		if detailEdits, err = edits(*req.Details); err != nil {
			return models.Invoice{}, err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	invoices, err := s.store.LoadAll(ctx)
	if err != nil {
		slog.Error("Update: load failed", "error", err)
		return models.Invoice{}, apperr.Store(err, "Failed to read invoices.")
	}

	idx := findInvoice(invoices, req.ID)
	if idx < 0 {
		return models.Invoice{}, apperr.NotFound("Invoice not found.")
	}
	inv := &invoices[idx]

	if req.CustomerName != nil {
		inv.CustomerName = *req.CustomerName
	}
	if req.InvoiceNumber != nil {
		inv.InvoiceNumber = *req.InvoiceNumber
	}
	if req.Date != nil {
		inv.Date = *req.Date
	}
	if req.Details != nil {
		inv.Details = billing.MergeDetails(inv.Details, detailEdits)
	}
	billing.Recalculate(inv)

	if err := s.store.SaveAll(ctx, invoices); err != nil {
		slog.Error("Update: save failed", "error", err)
		return models.Invoice{}, apperr.Store(err, "Failed to save invoices.")
	}

	slog.Info("Invoice updated", "invoice_id", inv.ID, "details", len(inv.Details), "total", inv.TotalAmount)
	return *inv, nil
}

// Delete removes a whole invoice, or a single detail when DetailID is set.
// It returns the success message describing which of the two happened.
func (s *InvoiceService) Delete(ctx context.Context, req DeleteInvoiceRequest) (string, error) {
	if err := validate.Struct(req); err != nil {
		return "", validationError(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	invoices, err := s.store.LoadAll(ctx)
	if err != nil {
		slog.Error("Delete: load failed", "error", err)
		return "", apperr.Store(err, "Failed to read invoices.")
	}

	idx := findInvoice(invoices, req.InvoiceID)
	if idx < 0 {
		return "", apperr.NotFound("Invoice not found.")
	}

	var message string
	if req.DetailID == nil {
		invoices = append(invoices[:idx], invoices[idx+1:]...)
		message = "Invoice deleted successfully."
	} else {
		inv := &invoices[idx]
		kept := inv.Details[:0:0]
		for _, d := range inv.Details {
			if d.ID != *req.DetailID {
				kept = append(kept, d)
			}
		}
		if len(kept) == len(inv.Details) {
			return "", apperr.NotFound("Detail not found in the invoice.")
		}
		inv.Details = kept
		billing.Recalculate(inv)
		message = "Detail deleted successfully."
	}

	if err := s.store.SaveAll(ctx, invoices); err != nil {
		slog.Error("Delete: save failed", "error", err)
		return "", apperr.Store(err, "Failed to save invoices.")
	}

	slog.Info("Delete completed", "invoice_id", req.InvoiceID, "detail_id", req.DetailID)
	return message, nil
}

func findInvoice(invoices []models.Invoice, id int64) int {
	for i := range invoices {
		if invoices[i].ID == id {
			return i
		}
	}
	return -1
}

// validationError turns validator field errors into the client-facing
// validation message.
func validationError(err error) error {
	if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperr.Validationf("Invalid value for field '%s' (%s).", fe.Field(), fe.Tag())
	}
	return apperr.Validation(err.Error())
}

// Package api exposes the invoice CRUD operations over HTTP.
// Routes are body-based: the target invoice is named in the request body,
// not the path, which is the contract existing clients speak.
package api

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/invoicer/internal/apperr"
	"github.com/mmynk/invoicer/internal/service"
)

// Handler translates HTTP requests into invoice service calls.
type Handler struct {
	svc *service.InvoiceService
}

// NewHandler creates a Handler backed by the given service.
func NewHandler(svc *service.InvoiceService) *Handler {
	return &Handler{svc: svc}
}

// List handles GET /invoices.
func (h *Handler) List(c *gin.Context) {
	invoices, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Invoices retrieved successfully.", invoices)
}

// Create handles POST /invoices.
func (h *Handler) Create(c *gin.Context) {
	var req service.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	inv, err := h.svc.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Invoice created successfully.", inv)
}

// Update handles PUT /invoices.
func (h *Handler) Update(c *gin.Context) {
	var req service.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	inv, err := h.svc.Update(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, "Invoice updated successfully.", inv)
}

// Delete handles DELETE /invoices. The body picks the mode: with detail_id
// one line item is removed, without it the whole invoice.
func (h *Handler) Delete(c *gin.Context) {
	var req service.DeleteInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	message, err := h.svc.Delete(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, message, nil)
}

// bindError classifies a body-decoding failure. Malformed JSON gets the
// fixed message existing clients expect; field-level coercion failures keep
// their own message.
func bindError(err error) error {
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || strings.Contains(err.Error(), "EOF") {
		return apperr.Validation("Invalid JSON data.")
	}
	return apperr.Validationf("Invalid request body: %s.", err.Error())
}

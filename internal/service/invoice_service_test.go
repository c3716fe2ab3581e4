package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/invoicer/internal/apperr"
	"github.com/mmynk/invoicer/internal/models"
	"github.com/mmynk/invoicer/internal/storage"
	"github.com/mmynk/invoicer/internal/storage/jsonfile"
)

func newTestService(t *testing.T) *InvoiceService {
	t.Helper()
	store, err := jsonfile.New(filepath.Join(t.TempDir(), "invoices.json"))
	require.NoError(t, err)
	return NewInvoiceService(store)
}

func ptr[T any](v T) *T { return &v }

func flexInt(v int64) *models.FlexInt {
	n := models.FlexInt(v)
	return &n
}

func flexDec(s string) *models.FlexDecimal {
	return &models.FlexDecimal{Decimal: decimal.RequireFromString(s)}
}

// createSample stores the two-line invoice used across the tests:
// 2 x 10.00 + 1 x 5.50 = 25.50.
func createSample(t *testing.T, svc *InvoiceService) models.Invoice {
	t.Helper()
	inv, err := svc.Create(context.Background(), CreateInvoiceRequest{
		CustomerName: "Acme Corp",
		Date:         "2026-08-01",
		Details: []DetailPayload{
			{Description: ptr("A"), Quantity: flexInt(2), UnitPrice: flexDec("10.00")},
			{Description: ptr("B"), Quantity: flexInt(1), UnitPrice: flexDec("5.50")},
		},
	})
	require.NoError(t, err)
	return inv
}

func TestCreate(t *testing.T) {
	svc := newTestService(t)
	inv := createSample(t, svc)

	assert.Equal(t, int64(1), inv.ID)
	assert.Equal(t, models.FlexString("1"), inv.InvoiceNumber)
	require.Len(t, inv.Details, 2)
	assert.Equal(t, int64(1), inv.Details[0].ID)
	assert.Equal(t, int64(2), inv.Details[1].ID)
	assert.True(t, inv.TotalAmount.Equal(decimal.RequireFromString("25.50")),
		"total_amount = %s, want 25.50", inv.TotalAmount)

	listed, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, inv.ID, listed[0].ID)
}

func TestCreateValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateInvoiceRequest{
		Details: []DetailPayload{{Description: ptr("A")}},
	})
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "Customer name is required.", apperr.Message(err))

	_, err = svc.Create(ctx, CreateInvoiceRequest{CustomerName: "Acme"})
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.Equal(t, "Details are required and must be a non-empty list.", apperr.Message(err))

	_, err = svc.Create(ctx, CreateInvoiceRequest{
		CustomerName: "Acme",
		Details:      []DetailPayload{{Description: ptr("A"), UnitPrice: flexDec("-1.00")}},
	})
	require.ErrorIs(t, err, apperr.ErrValidation)
}

func TestCreateIDsSurviveDeletion(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first := createSample(t, svc)
	second := createSample(t, svc)
	require.Equal(t, int64(2), second.ID)

	_, err := svc.Delete(ctx, DeleteInvoiceRequest{InvoiceID: first.ID})
	require.NoError(t, err)

	// max+1, not count+1: the freed id 1 must not be reissued.
	third := createSample(t, svc)
	assert.Equal(t, int64(3), third.ID)
}

func TestUpdatePartialDetailEdit(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	createSample(t, svc)

	updated, err := svc.Update(ctx, UpdateInvoiceRequest{
		ID: 1,
		Details: &[]DetailPayload{
			{ID: ptr(int64(1)), Quantity: flexInt(3)},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Details, 2)
	assert.Equal(t, int64(3), updated.Details[0].Quantity)
	assert.Equal(t, "A", updated.Details[0].Description, "unedited field lost")
	assert.True(t, updated.Details[0].LineTotal.Equal(decimal.RequireFromString("30.00")),
		"line_total = %s, want 30.00", updated.Details[0].LineTotal)

	// Detail 2 is not in the edit set and survives untouched.
	assert.Equal(t, int64(1), updated.Details[1].Quantity)
	assert.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("35.50")),
		"total_amount = %s, want 35.50", updated.TotalAmount)
}

func TestUpdateTopLevelFields(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	createSample(t, svc)

	updated, err := svc.Update(ctx, UpdateInvoiceRequest{
		ID:           1,
		CustomerName: ptr("Globex"),
		Date:         ptr("2026-08-15"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Globex", updated.CustomerName)
	assert.Equal(t, "2026-08-15", updated.Date)
	// No details supplied: the list and total stay as they were.
	require.Len(t, updated.Details, 2)
	assert.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("25.50")))
}

func TestUpdateAppendsNewDetail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	createSample(t, svc)

	updated, err := svc.Update(ctx, UpdateInvoiceRequest{
		ID: 1,
		Details: &[]DetailPayload{
			{Description: ptr("C"), Quantity: flexInt(4), UnitPrice: flexDec("2.25")},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Details, 3)
	assert.Equal(t, int64(3), updated.Details[2].ID)
	assert.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("34.50")),
		"total_amount = %s, want 34.50", updated.TotalAmount)
}

func TestUpdateMissingIDIsValidationError(t *testing.T) {
	svc := newTestService(t)
	createSample(t, svc)

	// An omitted (zero) id is a malformed request, not a failed lookup.
	_, err := svc.Update(context.Background(), UpdateInvoiceRequest{
		CustomerName: ptr("Globex"),
	})
	require.ErrorIs(t, err, apperr.ErrValidation)
	assert.NotErrorIs(t, err, apperr.ErrNotFound)
}

func TestUpdateNotFound(t *testing.T) {
	svc := newTestService(t)
	createSample(t, svc)

	_, err := svc.Update(context.Background(), UpdateInvoiceRequest{ID: 42})
	require.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "Invoice not found.", apperr.Message(err))
}

func TestDeleteInvoice(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	createSample(t, svc)

	msg, err := svc.Delete(ctx, DeleteInvoiceRequest{InvoiceID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Invoice deleted successfully.", msg)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestDeleteDetail(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	createSample(t, svc)

	msg, err := svc.Delete(ctx, DeleteInvoiceRequest{InvoiceID: 1, DetailID: ptr(int64(2))})
	require.NoError(t, err)
	assert.Equal(t, "Detail deleted successfully.", msg)

	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Len(t, listed[0].Details, 1)
	assert.Equal(t, int64(1), listed[0].Details[0].ID, "surviving detail keeps its id")
	assert.True(t, listed[0].TotalAmount.Equal(decimal.RequireFromString("20.00")),
		"total recomputed after detail delete, got %s", listed[0].TotalAmount)
}

func TestDeleteNotFound(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	createSample(t, svc)

	_, err := svc.Delete(ctx, DeleteInvoiceRequest{InvoiceID: 42})
	require.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "Invoice not found.", apperr.Message(err))

	_, err = svc.Delete(ctx, DeleteInvoiceRequest{InvoiceID: 1, DetailID: ptr(int64(42))})
	require.ErrorIs(t, err, apperr.ErrNotFound)
	assert.Equal(t, "Detail not found in the invoice.", apperr.Message(err))

	// A failed detail delete leaves the invoice unmodified.
	listed, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed[0].Details, 2)
}

// failingStore simulates an unreadable backend.
type failingStore struct{}

func (failingStore) LoadAll(ctx context.Context) ([]models.Invoice, error) {
	return nil, errors.New("disk on fire")
}
func (failingStore) SaveAll(ctx context.Context, invoices []models.Invoice) error {
	return errors.New("disk on fire")
}
func (failingStore) Close() error { return nil }

var _ storage.Store = failingStore{}

func TestStoreFailurePropagates(t *testing.T) {
	svc := NewInvoiceService(failingStore{})

	_, err := svc.List(context.Background())
	require.ErrorIs(t, err, apperr.ErrStore)
}

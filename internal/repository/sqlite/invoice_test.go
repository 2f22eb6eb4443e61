package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasquez/dental-api/internal/model"
)

func newInvoice(patientID int64, number string) *model.Invoice {
	return &model.Invoice{
		InvoiceNumber: number,
		PatientID:     patientID,
		Subtotal:      200,
		TotalAmount:   200,
		BalanceDue:    200,
		InvoiceDate:   "2026-08-24",
		DueDate:       "2026-09-23",
		Status:        model.InvoiceStatusPending,
		PaymentTerms:  "Net 30",
	}
}

func TestInvoiceCreateWithItems(t *testing.T) {
	db := newTestDB(t)
	repo := NewInvoiceRepository(NewBaseRepository(db))
	ctx := context.Background()
	p := seedPatient(t, db)

	inv := newInvoice(p.ID, "INV-20260824-000001")
	items := []*model.InvoiceItem{
		{Description: "Cleaning", Quantity: 1, UnitPrice: 120, TotalPrice: 120},
		{Description: "X-ray", Quantity: 2, UnitPrice: 40, TotalPrice: 80},
	}
	require.NoError(t, repo.CreateWithItems(ctx, inv, items))
	assert.NotZero(t, inv.ID)
	for _, item := range items {
		assert.Equal(t, inv.ID, item.InvoiceID)
		assert.NotZero(t, item.ID)
	}

	stored, err := repo.ListItems(ctx, inv.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestInvoiceCreateWithItemsRollsBackOnBadItem(t *testing.T) {
	db := newTestDB(t)
	repo := NewInvoiceRepository(NewBaseRepository(db))
	ctx := context.Background()
	p := seedPatient(t, db)

	missingRecord := int64(424242)
	inv := newInvoice(p.ID, "INV-20260824-000001")
	items := []*model.InvoiceItem{
		{Description: "Cleaning", Quantity: 1, UnitPrice: 120, TotalPrice: 120},
		{Description: "Broken ref", Quantity: 1, UnitPrice: 80, TotalPrice: 80, TreatmentRecordID: &missingRecord},
	}
	err := repo.CreateWithItems(ctx, inv, items)
	require.Error(t, err)

	// Nothing may survive the failed transaction.
	count, err := repo.CountByDate(ctx, "2026-08-24")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestInvoiceCountByDate(t *testing.T) {
	db := newTestDB(t)
	repo := NewInvoiceRepository(NewBaseRepository(db))
	ctx := context.Background()
	p := seedPatient(t, db)

	require.NoError(t, repo.CreateWithItems(ctx, newInvoice(p.ID, "INV-A"), nil))
	require.NoError(t, repo.CreateWithItems(ctx, newInvoice(p.ID, "INV-B"), nil))

	count, err := repo.CountByDate(ctx, "2026-08-24")
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	count, err = repo.CountByDate(ctx, "2026-08-25")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestInvoiceApplyPaymentAtomic(t *testing.T) {
	db := newTestDB(t)
	base := NewBaseRepository(db)
	invoices := NewInvoiceRepository(base)
	payments := NewPaymentRepository(base)
	ctx := context.Background()
	p := seedPatient(t, db)

	inv := newInvoice(p.ID, "INV-20260824-000001")
	require.NoError(t, invoices.CreateWithItems(ctx, inv, nil))

	inv.AmountPaid = 50
	inv.BalanceDue = 150
	inv.Status = model.InvoiceStatusPartial
	pay := &model.Payment{
		InvoiceID:     inv.ID,
		PaymentDate:   "2026-08-24",
		PaymentAmount: 50,
		PaymentMethod: model.PaymentMethodCash,
	}
	require.NoError(t, invoices.ApplyPayment(ctx, pay, inv))
	assert.NotZero(t, pay.ID)

	stored, err := invoices.Get(ctx, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceStatusPartial, stored.Status)
	assert.InDelta(t, 50, stored.AmountPaid, 0.001)
	assert.InDelta(t, 150, stored.BalanceDue, 0.001)

	total, err := payments.SumByInvoice(ctx, inv.ID)
	require.NoError(t, err)
	assert.InDelta(t, 50, total, 0.001)
}

func TestInvoiceListOverdueCandidates(t *testing.T) {
	db := newTestDB(t)
	repo := NewInvoiceRepository(NewBaseRepository(db))
	ctx := context.Background()
	p := seedPatient(t, db)

	past := newInvoice(p.ID, "INV-PAST")
	past.DueDate = "2026-01-01"
	require.NoError(t, repo.CreateWithItems(ctx, past, nil))

	future := newInvoice(p.ID, "INV-FUTURE")
	future.DueDate = "2027-01-01"
	require.NoError(t, repo.CreateWithItems(ctx, future, nil))

	candidates, err := repo.ListOverdueCandidates(ctx, "2026-08-24")
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "INV-PAST", candidates[0].InvoiceNumber)
	assert.Equal(t, "2026-01-01", candidates[0].DueDate)
	assert.Equal(t, p.FirstName, candidates[0].PatientFirstName)
	assert.Nil(t, candidates[0].PatientEmail)
}

func TestInvoiceMarkOverdue(t *testing.T) {
	db := newTestDB(t)
	repo := NewInvoiceRepository(NewBaseRepository(db))
	ctx := context.Background()
	p := seedPatient(t, db)

	past := newInvoice(p.ID, "INV-PAST")
	past.DueDate = "2026-01-01"
	require.NoError(t, repo.CreateWithItems(ctx, past, nil))

	future := newInvoice(p.ID, "INV-FUTURE")
	future.DueDate = "2027-01-01"
	require.NoError(t, repo.CreateWithItems(ctx, future, nil))

	paid := newInvoice(p.ID, "INV-PAID")
	paid.DueDate = "2026-01-01"
	paid.Status = model.InvoiceStatusPaid
	require.NoError(t, repo.CreateWithItems(ctx, paid, nil))

	count, err := repo.MarkOverdue(ctx, "2026-08-24")
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	got, err := repo.Get(ctx, past.ID)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceStatusOverdue, got.Status)

	got, err = repo.Get(ctx, paid.ID)
	require.NoError(t, err)
	assert.Equal(t, model.InvoiceStatusPaid, got.Status)
}

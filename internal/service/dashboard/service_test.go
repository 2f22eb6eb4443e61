package dashboard

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/repository"
	"github.com/avasquez/dental-api/internal/repository/sqlite"
)

type fixtures struct {
	svc      *Service
	patients repository.PatientRepository
	invoices repository.InvoiceRepository
}

func newFixtures(t *testing.T) *fixtures {
	t.Helper()

	db, err := sqlite.NewDB(sqlite.Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.RunMigrations(db.DB))

	base := sqlite.NewBaseRepository(db)
	return &fixtures{
		svc:      NewService(sqlite.NewDashboardRepository(base)),
		patients: sqlite.NewPatientRepository(base),
		invoices: sqlite.NewInvoiceRepository(base),
	}
}

func (f *fixtures) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()

	p := &model.Patient{FirstName: "Dash", LastName: "Board"}
	require.NoError(t, f.patients.Create(ctx, p))

	inv := &model.Invoice{
		InvoiceNumber: "INV-1",
		PatientID:     p.ID,
		Subtotal:      100,
		TotalAmount:   100,
		BalanceDue:    100,
		InvoiceDate:   "2026-08-24",
		DueDate:       "2026-09-23",
		Status:        model.InvoiceStatusPending,
		PaymentTerms:  "Net 30",
	}
	require.NoError(t, f.invoices.CreateWithItems(ctx, inv, nil))
}

func TestStatsRoleVisibility(t *testing.T) {
	f := newFixtures(t)
	f.seed(t)
	ctx := context.Background()

	// Receptionists see billing figures.
	stats, err := f.svc.Stats(ctx, model.UserRoleReceptionist)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalPatients)
	assert.Equal(t, 1, stats.OutstandingInvoices)
	assert.InDelta(t, 100, stats.OutstandingBalance, 0.001)

	// Clinical staff do not.
	stats, err = f.svc.Stats(ctx, model.UserRoleDentist)
	require.NoError(t, err)
	assert.Zero(t, stats.OutstandingInvoices)
	assert.Zero(t, stats.OutstandingBalance)

	// Admin sees everything.
	stats, err = f.svc.Stats(ctx, model.UserRoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.OutstandingInvoices)
}

func TestStatsCached(t *testing.T) {
	f := newFixtures(t)
	f.seed(t)
	ctx := context.Background()

	first, err := f.svc.Stats(ctx, model.UserRoleAdmin)
	require.NoError(t, err)

	// A second call inside the TTL returns the cached snapshot even
	// after the data changes underneath.
	p := &model.Patient{FirstName: "New", LastName: "Arrival"}
	require.NoError(t, f.patients.Create(ctx, p))

	second, err := f.svc.Stats(ctx, model.UserRoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, first.TotalPatients, second.TotalPatients)
}

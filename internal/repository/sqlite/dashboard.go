package sqlite

import (
	"context"
	"fmt"

	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/repository"
)

type dashboardRepository struct {
	BaseRepository
}

func NewDashboardRepository(base BaseRepository) repository.DashboardRepository {
	return &dashboardRepository{base}
}

func (r *dashboardRepository) count(ctx context.Context, what, query string, args ...interface{}) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", what, err)
	}
	return n, nil
}

func (r *dashboardRepository) CountActivePatients(ctx context.Context) (int, error) {
	return r.count(ctx, "active patients",
		`SELECT COUNT(*) FROM patients WHERE is_active = 1`)
}

func (r *dashboardRepository) CountAppointmentsOn(ctx context.Context, date string) (int, error) {
	return r.count(ctx, "appointments",
		`SELECT COUNT(*) FROM appointments WHERE appointment_date = ?`, date)
}

func (r *dashboardRepository) CountAppointmentsByStatus(ctx context.Context, status model.AppointmentStatus) (int, error) {
	return r.count(ctx, "appointments by status",
		`SELECT COUNT(*) FROM appointments WHERE status = ?`, status)
}

func (r *dashboardRepository) CountActiveTreatments(ctx context.Context) (int, error) {
	return r.count(ctx, "active treatments",
		`SELECT COUNT(*) FROM treatments WHERE is_active = 1`)
}

func (r *dashboardRepository) CountOutstandingInvoices(ctx context.Context) (int, float64, error) {
	query := `
		SELECT COUNT(*) AS count, COALESCE(SUM(balance_due), 0) AS balance
		FROM invoices
		WHERE status IN ('pending', 'partial', 'overdue')
	`

	var row struct {
		Count   int     `db:"count"`
		Balance float64 `db:"balance"`
	}
	if err := r.db.GetContext(ctx, &row, query); err != nil {
		return 0, 0, fmt.Errorf("failed to count outstanding invoices: %w", err)
	}
	return row.Count, row.Balance, nil
}

func (r *dashboardRepository) CountCompletedAppointmentsOn(ctx context.Context, date string) (int, error) {
	return r.count(ctx, "completed appointments",
		`SELECT COUNT(*) FROM appointments WHERE appointment_date = ? AND status = 'completed'`, date)
}

func (r *dashboardRepository) CountTreatmentRecordsByStatus(ctx context.Context, status model.PaymentStatus) (int, error) {
	return r.count(ctx, "treatment records by status",
		`SELECT COUNT(*) FROM treatment_records WHERE payment_status = ?`, status)
}

func (r *dashboardRepository) CountTreatmentRecords(ctx context.Context) (int, error) {
	return r.count(ctx, "treatment records",
		`SELECT COUNT(*) FROM treatment_records`)
}

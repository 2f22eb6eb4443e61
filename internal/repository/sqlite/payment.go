package sqlite

import (
	"context"
	"fmt"

	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/repository"
)

type paymentRepository struct {
	BaseRepository
}

func NewPaymentRepository(base BaseRepository) repository.PaymentRepository {
	return &paymentRepository{base}
}

func (r *paymentRepository) ListByInvoice(ctx context.Context, invoiceID int64) ([]*model.Payment, error) {
	query := `SELECT * FROM payments WHERE invoice_id = ? ORDER BY payment_date, id`

	var payments []*model.Payment
	if err := r.db.SelectContext(ctx, &payments, query, invoiceID); err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	return payments, nil
}

func (r *paymentRepository) SumByInvoice(ctx context.Context, invoiceID int64) (float64, error) {
	query := `SELECT COALESCE(SUM(payment_amount), 0) FROM payments WHERE invoice_id = ?`

	var total float64
	if err := r.db.GetContext(ctx, &total, query, invoiceID); err != nil {
		return 0, fmt.Errorf("failed to sum payments: %w", err)
	}
	return total, nil
}

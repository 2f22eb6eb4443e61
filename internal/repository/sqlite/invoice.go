package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/repository"
)

type invoiceRepository struct {
	BaseRepository
}

func NewInvoiceRepository(base BaseRepository) repository.InvoiceRepository {
	return &invoiceRepository{base}
}

func (r *invoiceRepository) CreateWithItems(ctx context.Context, inv *model.Invoice, items []*model.InvoiceItem) error {
	invoiceQuery := `
		INSERT INTO invoices (
			invoice_number, patient_id, treatment_record_id, appointment_id,
			subtotal, tax_amount, discount_amount, total_amount,
			amount_paid, balance_due, invoice_date, due_date, status,
			payment_terms, notes, created_by, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	itemQuery := `
		INSERT INTO invoice_items (invoice_id, treatment_record_id, description, quantity, unit_price, total_price, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	inv.CreatedAt = time.Now()
	inv.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, invoiceQuery,
			inv.InvoiceNumber,
			inv.PatientID,
			inv.TreatmentRecordID,
			inv.AppointmentID,
			inv.Subtotal,
			inv.TaxAmount,
			inv.DiscountAmount,
			inv.TotalAmount,
			inv.AmountPaid,
			inv.BalanceDue,
			inv.InvoiceDate,
			inv.DueDate,
			inv.Status,
			inv.PaymentTerms,
			inv.Notes,
			inv.CreatedBy,
			inv.CreatedAt,
			inv.UpdatedAt,
		)
		if err != nil {
			return mapConstraintErr(err, "invoice")
		}
		if inv.ID, err = res.LastInsertId(); err != nil {
			return err
		}

		for _, item := range items {
			item.InvoiceID = inv.ID
			item.CreatedAt = inv.CreatedAt
			itemRes, err := tx.ExecContext(ctx, itemQuery,
				item.InvoiceID,
				item.TreatmentRecordID,
				item.Description,
				item.Quantity,
				item.UnitPrice,
				item.TotalPrice,
				item.CreatedAt,
			)
			if err != nil {
				return mapConstraintErr(err, "invoice item")
			}
			if item.ID, err = itemRes.LastInsertId(); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *invoiceRepository) Get(ctx context.Context, id int64) (*model.Invoice, error) {
	query := `SELECT * FROM invoices WHERE id = ?`

	var inv model.Invoice
	if err := r.db.GetContext(ctx, &inv, query, id); err != nil {
		return nil, mapNotFound(err, "invoice")
	}
	return &inv, nil
}

func (r *invoiceRepository) List(ctx context.Context, filters *model.InvoiceFilters) ([]*model.InvoiceDetail, error) {
	query := `
		SELECT i.*,
			p.first_name AS patient_first_name,
			p.last_name AS patient_last_name
		FROM invoices i
		JOIN patients p ON i.patient_id = p.id
		WHERE 1=1
	`
	args := []interface{}{}

	if filters != nil {
		if filters.PatientID != 0 {
			query += " AND i.patient_id = ?"
			args = append(args, filters.PatientID)
		}
		if filters.Status != "" {
			query += " AND i.status = ?"
			args = append(args, filters.Status)
		}
	}

	query += " ORDER BY i.invoice_date DESC, i.id DESC"

	var invoices []*model.InvoiceDetail
	if err := r.db.SelectContext(ctx, &invoices, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepository) ListItems(ctx context.Context, invoiceID int64) ([]*model.InvoiceItem, error) {
	query := `SELECT * FROM invoice_items WHERE invoice_id = ? ORDER BY id`

	var items []*model.InvoiceItem
	if err := r.db.SelectContext(ctx, &items, query, invoiceID); err != nil {
		return nil, fmt.Errorf("failed to list invoice items: %w", err)
	}
	return items, nil
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id int64, status model.InvoiceStatus) error {
	query := `UPDATE invoices SET status = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return mapConstraintErr(err, "invoice")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("invoice not found")
	}
	return nil
}

// ApplyPayment writes the payment row and the recomputed invoice amounts
// in one transaction. The caller has already settled amount_paid,
// balance_due and status on inv.
func (r *invoiceRepository) ApplyPayment(ctx context.Context, p *model.Payment, inv *model.Invoice) error {
	paymentQuery := `
		INSERT INTO payments (invoice_id, payment_date, payment_amount, payment_method, payment_reference, notes, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	invoiceQuery := `
		UPDATE invoices SET amount_paid = ?, balance_due = ?, status = ?, updated_at = ?
		WHERE id = ?
	`

	p.CreatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, paymentQuery,
			p.InvoiceID,
			p.PaymentDate,
			p.PaymentAmount,
			p.PaymentMethod,
			p.PaymentReference,
			p.Notes,
			p.CreatedBy,
			p.CreatedAt,
		)
		if err != nil {
			return mapConstraintErr(err, "payment")
		}
		if p.ID, err = res.LastInsertId(); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, invoiceQuery,
			inv.AmountPaid,
			inv.BalanceDue,
			inv.Status,
			time.Now(),
			inv.ID,
		); err != nil {
			return mapConstraintErr(err, "invoice")
		}
		return nil
	})
}

func (r *invoiceRepository) CountByDate(ctx context.Context, invoiceDate string) (int64, error) {
	query := `SELECT COUNT(*) FROM invoices WHERE invoice_date = ?`

	var count int64
	if err := r.db.GetContext(ctx, &count, query, invoiceDate); err != nil {
		return 0, fmt.Errorf("failed to count invoices by date: %w", err)
	}
	return count, nil
}

func (r *invoiceRepository) ListOverdueCandidates(ctx context.Context, asOf string) ([]*model.OverdueInvoice, error) {
	query := `
		SELECT i.*,
			p.first_name AS patient_first_name,
			p.last_name AS patient_last_name,
			p.email AS patient_email
		FROM invoices i
		JOIN patients p ON i.patient_id = p.id
		WHERE i.due_date < ? AND i.status IN ('pending', 'partial')
		ORDER BY i.due_date, i.id
	`

	var invoices []*model.OverdueInvoice
	if err := r.db.SelectContext(ctx, &invoices, query, asOf); err != nil {
		return nil, fmt.Errorf("failed to list overdue candidates: %w", err)
	}
	return invoices, nil
}

// MarkOverdue flips unsettled invoices whose due date has passed. Dates
// are ISO strings so string comparison matches chronological order.
func (r *invoiceRepository) MarkOverdue(ctx context.Context, asOf string) (int64, error) {
	query := `
		UPDATE invoices SET status = 'overdue', updated_at = ?
		WHERE due_date < ? AND status IN ('pending', 'partial')
	`

	result, err := r.db.ExecContext(ctx, query, time.Now(), asOf)
	if err != nil {
		return 0, fmt.Errorf("failed to mark overdue invoices: %w", err)
	}
	return result.RowsAffected()
}

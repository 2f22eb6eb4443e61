package billing

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/avasquez/dental-api/internal/email"
	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/repository"
	apperrors "github.com/avasquez/dental-api/pkg/errors"
)

// Config carries the billing knobs that vary per deployment.
type Config struct {
	TaxRate        float64
	PaymentTerms   string
	DueInDays      int
	NumberTemplate string
}

func (c *Config) applyDefaults() {
	if c.PaymentTerms == "" {
		c.PaymentTerms = "Net 30"
	}
	if c.DueInDays == 0 {
		c.DueInDays = 30
	}
	if c.NumberTemplate == "" {
		c.NumberTemplate = DefaultNumberTemplate
	}
}

type BillingServicer interface {
	CreateInvoice(ctx context.Context, req *model.CreateInvoiceRequest, createdBy *int64) (*model.Invoice, []*model.InvoiceItem, error)
	GetInvoice(ctx context.Context, id int64) (*model.Invoice, []*model.InvoiceItem, error)
	ListInvoices(ctx context.Context, filters *model.InvoiceFilters) ([]*model.InvoiceDetail, error)
	RecordPayment(ctx context.Context, invoiceID int64, req *model.RecordPaymentRequest, createdBy *int64) (*model.Payment, *model.Invoice, error)
	ListPayments(ctx context.Context, invoiceID int64) ([]*model.Payment, error)
	UpdateInvoiceStatus(ctx context.Context, id int64, status model.InvoiceStatus) (*model.Invoice, error)
	SweepOverdue(ctx context.Context) (int64, error)
}

type Service struct {
	cfg      Config
	invoices repository.InvoiceRepository
	payments repository.PaymentRepository
	records  repository.TreatmentRecordRepository
	patients repository.PatientRepository
	mailer   email.Service
}

func NewService(cfg Config, invoices repository.InvoiceRepository, payments repository.PaymentRepository,
	records repository.TreatmentRecordRepository, patients repository.PatientRepository, mailer email.Service) *Service {
	cfg.applyDefaults()
	if mailer == nil {
		mailer = email.NewNoopService()
	}
	return &Service{
		cfg:      cfg,
		invoices: invoices,
		payments: payments,
		records:  records,
		patients: patients,
		mailer:   mailer,
	}
}

// round2 snaps a money amount to cents. All derived amounts go through
// it so repeated arithmetic cannot drift.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func (s *Service) CreateInvoice(ctx context.Context, req *model.CreateInvoiceRequest, createdBy *int64) (*model.Invoice, []*model.InvoiceItem, error) {
	if _, err := s.patients.Get(ctx, req.PatientID); err != nil {
		return nil, nil, err
	}
	if req.TreatmentRecordID != nil {
		if _, err := s.records.Get(ctx, *req.TreatmentRecordID); err != nil {
			return nil, nil, err
		}
	}

	items := make([]*model.InvoiceItem, 0, len(req.Items))
	var subtotal float64
	for _, ir := range req.Items {
		qty := ir.Quantity
		if qty == 0 {
			qty = 1
		}
		item := &model.InvoiceItem{
			TreatmentRecordID: ir.TreatmentRecordID,
			Description:       ir.Description,
			Quantity:          qty,
			UnitPrice:         ir.UnitPrice,
			TotalPrice:        round2(float64(qty) * ir.UnitPrice),
		}
		subtotal += item.TotalPrice
		items = append(items, item)
	}
	subtotal = round2(subtotal)

	tax := round2(subtotal * s.cfg.TaxRate)
	total := round2(subtotal + tax - req.DiscountAmount)
	if total < 0 {
		return nil, nil, apperrors.BadRequest("discount exceeds invoice total", nil)
	}

	now := time.Now()
	invoiceDate := now.Format(model.DateFormat)
	dueDate := now.AddDate(0, 0, s.cfg.DueInDays).Format(model.DateFormat)
	if req.DueDate != nil {
		if !model.ValidDate(*req.DueDate) {
			return nil, nil, apperrors.BadRequest("due_date must be YYYY-MM-DD", nil)
		}
		dueDate = *req.DueDate
	}

	seq, err := s.invoices.CountByDate(ctx, invoiceDate)
	if err != nil {
		return nil, nil, apperrors.Internal(err)
	}
	number, err := FormatInvoiceNumber(s.cfg.NumberTemplate, now, seq+1)
	if err != nil {
		return nil, nil, apperrors.Internal(err)
	}

	inv := &model.Invoice{
		InvoiceNumber:     number,
		PatientID:         req.PatientID,
		TreatmentRecordID: req.TreatmentRecordID,
		AppointmentID:     req.AppointmentID,
		Subtotal:          subtotal,
		TaxAmount:         tax,
		DiscountAmount:    round2(req.DiscountAmount),
		TotalAmount:       total,
		AmountPaid:        0,
		BalanceDue:        total,
		InvoiceDate:       invoiceDate,
		DueDate:           dueDate,
		Status:            model.InvoiceStatusPending,
		PaymentTerms:      s.cfg.PaymentTerms,
		Notes:             req.Notes,
	}
	inv.CreatedBy = createdBy

	if err := s.invoices.CreateWithItems(ctx, inv, items); err != nil {
		return nil, nil, err
	}
	return inv, items, nil
}

func (s *Service) GetInvoice(ctx context.Context, id int64) (*model.Invoice, []*model.InvoiceItem, error) {
	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	items, err := s.invoices.ListItems(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return inv, items, nil
}

func (s *Service) ListInvoices(ctx context.Context, filters *model.InvoiceFilters) ([]*model.InvoiceDetail, error) {
	return s.invoices.List(ctx, filters)
}

// RecordPayment applies a payment against an invoice. Payments above
// the remaining balance are rejected rather than capped; a refund flow
// would own returning money, not this path.
func (s *Service) RecordPayment(ctx context.Context, invoiceID int64, req *model.RecordPaymentRequest, createdBy *int64) (*model.Payment, *model.Invoice, error) {
	inv, err := s.invoices.Get(ctx, invoiceID)
	if err != nil {
		return nil, nil, err
	}
	if inv.Status.Settled() {
		return nil, nil, apperrors.Conflict(fmt.Sprintf("invoice %s is already %s", inv.InvoiceNumber, inv.Status), nil)
	}

	amount := round2(req.PaymentAmount)
	if amount > inv.BalanceDue {
		return nil, nil, apperrors.BadRequest(
			fmt.Sprintf("payment %.2f exceeds balance due %.2f", amount, inv.BalanceDue), nil)
	}

	paymentDate := model.Today()
	if req.PaymentDate != nil {
		if !model.ValidDate(*req.PaymentDate) {
			return nil, nil, apperrors.BadRequest("payment_date must be YYYY-MM-DD", nil)
		}
		paymentDate = *req.PaymentDate
	}

	inv.AmountPaid = round2(inv.AmountPaid + amount)
	inv.BalanceDue = round2(inv.TotalAmount - inv.AmountPaid)
	if inv.BalanceDue <= 0 {
		inv.BalanceDue = 0
		inv.Status = model.InvoiceStatusPaid
	} else {
		inv.Status = model.InvoiceStatusPartial
	}

	p := &model.Payment{
		InvoiceID:        invoiceID,
		PaymentDate:      paymentDate,
		PaymentAmount:    amount,
		PaymentMethod:    model.PaymentMethod(req.PaymentMethod),
		PaymentReference: req.PaymentReference,
		Notes:            req.Notes,
		CreatedBy:        createdBy,
	}

	if err := s.invoices.ApplyPayment(ctx, p, inv); err != nil {
		return nil, nil, err
	}

	if inv.TreatmentRecordID != nil {
		if err := s.syncRecordStatus(ctx, *inv.TreatmentRecordID, inv.Status); err != nil {
			return nil, nil, err
		}
	}
	return p, inv, nil
}

// syncRecordStatus keeps the linked treatment record's payment status
// in step with the invoice lifecycle.
func (s *Service) syncRecordStatus(ctx context.Context, recordID int64, status model.InvoiceStatus) error {
	var ps model.PaymentStatus
	switch status {
	case model.InvoiceStatusPaid:
		ps = model.PaymentStatusPaid
	case model.InvoiceStatusPartial:
		ps = model.PaymentStatusPartial
	case model.InvoiceStatusOverdue:
		ps = model.PaymentStatusOverdue
	case model.InvoiceStatusCancelled, model.InvoiceStatusRefunded:
		ps = model.PaymentStatusCancelled
	default:
		ps = model.PaymentStatusPending
	}
	return s.records.UpdatePaymentStatus(ctx, recordID, ps)
}

// UpdateInvoiceStatus handles the manual transitions: issuing a draft,
// cancelling an unsettled invoice, refunding a paid one. Paid and
// partial are derived from payments and cannot be set directly.
func (s *Service) UpdateInvoiceStatus(ctx context.Context, id int64, status model.InvoiceStatus) (*model.Invoice, error) {
	if !status.Valid() {
		return nil, apperrors.BadRequest(fmt.Sprintf("invalid status: %s", status), nil)
	}
	if status == model.InvoiceStatusPaid || status == model.InvoiceStatusPartial {
		return nil, apperrors.BadRequest("paid and partial are derived from payments", nil)
	}

	inv, err := s.invoices.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if inv.Status == status {
		return inv, nil
	}

	allowed := false
	switch inv.Status {
	case model.InvoiceStatusDraft:
		allowed = status == model.InvoiceStatusPending || status == model.InvoiceStatusCancelled
	case model.InvoiceStatusPending, model.InvoiceStatusPartial, model.InvoiceStatusOverdue:
		allowed = status == model.InvoiceStatusCancelled
	case model.InvoiceStatusPaid:
		allowed = status == model.InvoiceStatusRefunded
	}
	if !allowed {
		return nil, apperrors.Conflict(
			fmt.Sprintf("cannot move invoice %s from %s to %s", inv.InvoiceNumber, inv.Status, status), nil)
	}

	if err := s.invoices.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	inv.Status = status

	if inv.TreatmentRecordID != nil {
		if err := s.syncRecordStatus(ctx, *inv.TreatmentRecordID, status); err != nil {
			return nil, err
		}
	}
	return inv, nil
}

func (s *Service) ListPayments(ctx context.Context, invoiceID int64) ([]*model.Payment, error) {
	if _, err := s.invoices.Get(ctx, invoiceID); err != nil {
		return nil, err
	}
	return s.payments.ListByInvoice(ctx, invoiceID)
}

// SweepOverdue marks pending and partial invoices whose due date has
// passed, syncs their linked treatment records and notifies the
// affected patients. Returns how many rows were flipped.
func (s *Service) SweepOverdue(ctx context.Context) (int64, error) {
	today := model.Today()

	candidates, err := s.invoices.ListOverdueCandidates(ctx, today)
	if err != nil {
		return 0, err
	}
	count, err := s.invoices.MarkOverdue(ctx, today)
	if err != nil {
		return 0, err
	}

	for _, inv := range candidates {
		if inv.TreatmentRecordID != nil {
			if err := s.syncRecordStatus(ctx, *inv.TreatmentRecordID, model.InvoiceStatusOverdue); err != nil {
				return count, err
			}
		}

		// Notices are best effort; a mail failure never fails the sweep.
		if inv.PatientEmail == nil {
			continue
		}
		name := inv.PatientFirstName + " " + inv.PatientLastName
		if err := s.mailer.SendOverdueNotice(ctx, *inv.PatientEmail, name, inv.InvoiceNumber, inv.BalanceDue); err != nil {
			log.Warn().Err(err).Str("invoice_number", inv.InvoiceNumber).Msg("failed to send overdue notice")
		}
	}
	return count, nil
}

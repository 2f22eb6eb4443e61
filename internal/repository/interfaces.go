package repository

import (
	"context"

	"github.com/avasquez/dental-api/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Get(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context, filters *model.UserFilters) ([]*model.User, error)
	Update(ctx context.Context, user *model.User) error
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	UpdateLastLogin(ctx context.Context, id int64) error
	Deactivate(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id int64) (*model.Patient, error)
	List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	Deactivate(ctx context.Context, id int64) error
}

type AppointmentRepository interface {
	Create(ctx context.Context, apt *model.Appointment) error
	Get(ctx context.Context, id int64) (*model.Appointment, error)
	List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error)
	Update(ctx context.Context, apt *model.Appointment) error
	UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error
}

type TreatmentRepository interface {
	Create(ctx context.Context, t *model.Treatment) error
	Get(ctx context.Context, id int64) (*model.Treatment, error)
	List(ctx context.Context, activeOnly bool) ([]*model.Treatment, error)
	Update(ctx context.Context, t *model.Treatment) error
	Deactivate(ctx context.Context, id int64) error
}

type TreatmentRecordRepository interface {
	Create(ctx context.Context, rec *model.TreatmentRecord) error
	Get(ctx context.Context, id int64) (*model.TreatmentRecord, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*model.TreatmentHistoryEntry, error)
	UpdatePaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) error
}

type InvoiceRepository interface {
	// CreateWithItems persists the invoice and all of its items in one
	// transaction; nothing is written if any item insert fails.
	CreateWithItems(ctx context.Context, inv *model.Invoice, items []*model.InvoiceItem) error
	Get(ctx context.Context, id int64) (*model.Invoice, error)
	List(ctx context.Context, filters *model.InvoiceFilters) ([]*model.InvoiceDetail, error)
	ListItems(ctx context.Context, invoiceID int64) ([]*model.InvoiceItem, error)
	UpdateStatus(ctx context.Context, id int64, status model.InvoiceStatus) error
	// ApplyPayment inserts the payment row and writes the recomputed
	// invoice amounts and status atomically.
	ApplyPayment(ctx context.Context, p *model.Payment, inv *model.Invoice) error
	CountByDate(ctx context.Context, invoiceDate string) (int64, error)
	// ListOverdueCandidates returns the invoices MarkOverdue would flip
	// as of the given date, with patient contact details.
	ListOverdueCandidates(ctx context.Context, asOf string) ([]*model.OverdueInvoice, error)
	MarkOverdue(ctx context.Context, asOf string) (int64, error)
}

type PaymentRepository interface {
	ListByInvoice(ctx context.Context, invoiceID int64) ([]*model.Payment, error)
	SumByInvoice(ctx context.Context, invoiceID int64) (float64, error)
}

type DashboardRepository interface {
	CountActivePatients(ctx context.Context) (int, error)
	CountAppointmentsOn(ctx context.Context, date string) (int, error)
	CountAppointmentsByStatus(ctx context.Context, status model.AppointmentStatus) (int, error)
	CountActiveTreatments(ctx context.Context) (int, error)
	CountOutstandingInvoices(ctx context.Context) (int, float64, error)
	CountCompletedAppointmentsOn(ctx context.Context, date string) (int, error)
	CountTreatmentRecordsByStatus(ctx context.Context, status model.PaymentStatus) (int, error)
	CountTreatmentRecords(ctx context.Context) (int, error)
}

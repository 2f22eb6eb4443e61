package model

import "time"

type InvoiceStatus string

// The original schema defaulted invoices to 'pending' while its CHECK set
// omitted the value; the set here includes the full payment lifecycle so
// pending -> partial -> paid transitions are representable.
const (
	InvoiceStatusDraft     InvoiceStatus = "draft"
	InvoiceStatusPending   InvoiceStatus = "pending"
	InvoiceStatusPartial   InvoiceStatus = "partial"
	InvoiceStatusPaid      InvoiceStatus = "paid"
	InvoiceStatusOverdue   InvoiceStatus = "overdue"
	InvoiceStatusCancelled InvoiceStatus = "cancelled"
	InvoiceStatusRefunded  InvoiceStatus = "refunded"
)

func (s InvoiceStatus) Valid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusPartial, InvoiceStatusPaid,
		InvoiceStatusOverdue, InvoiceStatusCancelled, InvoiceStatusRefunded:
		return true
	}
	return false
}

// Settled reports whether the invoice needs no further payments.
func (s InvoiceStatus) Settled() bool {
	switch s {
	case InvoiceStatusPaid, InvoiceStatusCancelled, InvoiceStatusRefunded:
		return true
	}
	return false
}

type Invoice struct {
	Audited
	InvoiceNumber     string        `json:"invoice_number" db:"invoice_number"`
	PatientID         int64         `json:"patient_id" db:"patient_id"`
	TreatmentRecordID *int64        `json:"treatment_record_id,omitempty" db:"treatment_record_id"`
	AppointmentID     *int64        `json:"appointment_id,omitempty" db:"appointment_id"`
	Subtotal          float64       `json:"subtotal" db:"subtotal"`
	TaxAmount         float64       `json:"tax_amount" db:"tax_amount"`
	DiscountAmount    float64       `json:"discount_amount" db:"discount_amount"`
	TotalAmount       float64       `json:"total_amount" db:"total_amount"`
	AmountPaid        float64       `json:"amount_paid" db:"amount_paid"`
	BalanceDue        float64       `json:"balance_due" db:"balance_due"`
	InvoiceDate       string        `json:"invoice_date" db:"invoice_date"`
	DueDate           string        `json:"due_date" db:"due_date"`
	Status            InvoiceStatus `json:"status" db:"status"`
	PaymentTerms      string        `json:"payment_terms" db:"payment_terms"`
	Notes             *string       `json:"notes,omitempty" db:"notes"`
}

type InvoiceItem struct {
	ID                int64     `json:"id" db:"id"`
	InvoiceID         int64     `json:"invoice_id" db:"invoice_id"`
	TreatmentRecordID *int64    `json:"treatment_record_id,omitempty" db:"treatment_record_id"`
	Description       string    `json:"description" db:"description"`
	Quantity          int       `json:"quantity" db:"quantity"`
	UnitPrice         float64   `json:"unit_price" db:"unit_price"`
	TotalPrice        float64   `json:"total_price" db:"total_price"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// OverdueInvoice is the sweep's working row: invoice plus the contact
// details for the overdue notice.
type OverdueInvoice struct {
	Invoice
	PatientFirstName string  `json:"patient_first_name" db:"patient_first_name"`
	PatientLastName  string  `json:"patient_last_name" db:"patient_last_name"`
	PatientEmail     *string `json:"patient_email,omitempty" db:"patient_email"`
}

// InvoiceDetail is the joined listing row: invoice plus patient name.
type InvoiceDetail struct {
	Invoice
	PatientFirstName string `json:"patient_first_name" db:"patient_first_name"`
	PatientLastName  string `json:"patient_last_name" db:"patient_last_name"`
}

type CreateInvoiceItemRequest struct {
	TreatmentRecordID *int64  `json:"treatment_record_id"`
	Description       string  `json:"description" binding:"required"`
	Quantity          int     `json:"quantity" binding:"omitempty,min=1"`
	UnitPrice         float64 `json:"unit_price" binding:"required,gt=0"`
}

type CreateInvoiceRequest struct {
	PatientID         int64                      `json:"patient_id" binding:"required"`
	TreatmentRecordID *int64                     `json:"treatment_record_id"`
	AppointmentID     *int64                     `json:"appointment_id"`
	Items             []CreateInvoiceItemRequest `json:"items" binding:"required,min=1,dive"`
	DiscountAmount    float64                    `json:"discount_amount" binding:"omitempty,gte=0"`
	DueDate           *string                    `json:"due_date" binding:"omitempty,isodate"`
	Notes             *string                    `json:"notes"`
}

type InvoiceFilters struct {
	PatientID int64
	Status    InvoiceStatus
}

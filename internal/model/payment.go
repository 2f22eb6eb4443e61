package model

import "time"

type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "cash"
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodCheck      PaymentMethod = "check"
	PaymentMethodInsurance  PaymentMethod = "insurance"
	PaymentMethodOnline     PaymentMethod = "online"
	PaymentMethodOther      PaymentMethod = "other"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCreditCard, PaymentMethodDebitCard,
		PaymentMethodCheck, PaymentMethodInsurance, PaymentMethodOnline, PaymentMethodOther:
		return true
	}
	return false
}

type Payment struct {
	ID               int64         `json:"id" db:"id"`
	InvoiceID        int64         `json:"invoice_id" db:"invoice_id"`
	PaymentDate      string        `json:"payment_date" db:"payment_date"`
	PaymentAmount    float64       `json:"payment_amount" db:"payment_amount"`
	PaymentMethod    PaymentMethod `json:"payment_method" db:"payment_method"`
	PaymentReference *string       `json:"payment_reference,omitempty" db:"payment_reference"`
	Notes            *string       `json:"notes,omitempty" db:"notes"`
	CreatedBy        *int64        `json:"created_by,omitempty" db:"created_by"`
	CreatedAt        time.Time     `json:"created_at" db:"created_at"`
}

type RecordPaymentRequest struct {
	PaymentAmount    float64 `json:"payment_amount" binding:"required,gt=0"`
	PaymentMethod    string  `json:"payment_method" binding:"required,oneof=cash credit_card debit_card check insurance online other"`
	PaymentDate      *string `json:"payment_date" binding:"omitempty,isodate"`
	PaymentReference *string `json:"payment_reference"`
	Notes            *string `json:"notes"`
}

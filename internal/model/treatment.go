package model

import "time"

type TreatmentCategory string

const (
	TreatmentCategoryPreventive  TreatmentCategory = "preventive"
	TreatmentCategoryRestorative TreatmentCategory = "restorative"
	TreatmentCategoryCosmetic    TreatmentCategory = "cosmetic"
	TreatmentCategorySurgical    TreatmentCategory = "surgical"
	TreatmentCategoryEmergency   TreatmentCategory = "emergency"
	TreatmentCategoryGeneral     TreatmentCategory = "general"
)

func (c TreatmentCategory) Valid() bool {
	switch c {
	case TreatmentCategoryPreventive, TreatmentCategoryRestorative, TreatmentCategoryCosmetic,
		TreatmentCategorySurgical, TreatmentCategoryEmergency, TreatmentCategoryGeneral:
		return true
	}
	return false
}

// Treatment is a catalog entry: a procedure type with its base cost.
type Treatment struct {
	Audited
	Name        string            `json:"name" db:"name"`
	Description *string           `json:"description,omitempty" db:"description"`
	Category    TreatmentCategory `json:"category" db:"category"`
	Duration    int               `json:"duration" db:"duration"`
	BaseCost    float64           `json:"base_cost" db:"base_cost"`
	IsActive    bool              `json:"is_active" db:"is_active"`
}

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPartial   PaymentStatus = "partial"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusOverdue   PaymentStatus = "overdue"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPartial, PaymentStatusPaid,
		PaymentStatusOverdue, PaymentStatusCancelled:
		return true
	}
	return false
}

// TreatmentRecord is an instance of a treatment actually performed on a
// patient.
type TreatmentRecord struct {
	Audited
	PatientID      int64         `json:"patient_id" db:"patient_id"`
	TreatmentID    int64         `json:"treatment_id" db:"treatment_id"`
	AppointmentID  *int64        `json:"appointment_id,omitempty" db:"appointment_id"`
	DentistID      *int64        `json:"dentist_id,omitempty" db:"dentist_id"`
	TreatmentDate  string        `json:"treatment_date" db:"treatment_date"`
	TreatmentNotes *string       `json:"treatment_notes,omitempty" db:"treatment_notes"`
	ActualCost     float64       `json:"actual_cost" db:"actual_cost"`
	PaymentStatus  PaymentStatus `json:"payment_status" db:"payment_status"`
	CompletedAt    *time.Time    `json:"completed_at,omitempty" db:"completed_at"`
}

// TreatmentHistoryEntry is the joined row returned for a patient's
// treatment history.
type TreatmentHistoryEntry struct {
	TreatmentRecord
	TreatmentName string  `json:"treatment_name" db:"treatment_name"`
	Description   *string `json:"description,omitempty" db:"description"`
	DentistName   *string `json:"dentist_name,omitempty" db:"dentist_name"`
}

type CreateTreatmentRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Category    string  `json:"category" binding:"omitempty,oneof=preventive restorative cosmetic surgical emergency general"`
	Duration    int     `json:"duration" binding:"omitempty,min=5,max=480"`
	BaseCost    float64 `json:"base_cost" binding:"required,gt=0"`
}

type UpdateTreatmentRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Category    *string  `json:"category" binding:"omitempty,oneof=preventive restorative cosmetic surgical emergency general"`
	Duration    *int     `json:"duration" binding:"omitempty,min=5,max=480"`
	BaseCost    *float64 `json:"base_cost" binding:"omitempty,gt=0"`
}

type CreateTreatmentRecordRequest struct {
	PatientID      int64   `json:"patient_id" binding:"required"`
	TreatmentID    int64   `json:"treatment_id" binding:"required"`
	AppointmentID  *int64  `json:"appointment_id"`
	DentistID      *int64  `json:"dentist_id"`
	TreatmentDate  string  `json:"treatment_date" binding:"required,isodate"`
	TreatmentNotes *string `json:"treatment_notes"`
	ActualCost     float64 `json:"actual_cost" binding:"required,gt=0"`
}

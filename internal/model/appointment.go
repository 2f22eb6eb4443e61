package model

type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusCompleted  AppointmentStatus = "completed"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
	AppointmentStatusNoShow     AppointmentStatus = "no_show"
)

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusConfirmed, AppointmentStatusInProgress,
		AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

type AppointmentType string

const (
	AppointmentTypeCheckup      AppointmentType = "checkup"
	AppointmentTypeCleaning     AppointmentType = "cleaning"
	AppointmentTypeFilling      AppointmentType = "filling"
	AppointmentTypeExtraction   AppointmentType = "extraction"
	AppointmentTypeRootCanal    AppointmentType = "root_canal"
	AppointmentTypeCrown        AppointmentType = "crown"
	AppointmentTypeConsultation AppointmentType = "consultation"
	AppointmentTypeEmergency    AppointmentType = "emergency"
	AppointmentTypeFollowUp     AppointmentType = "follow_up"
)

func (t AppointmentType) Valid() bool {
	switch t {
	case AppointmentTypeCheckup, AppointmentTypeCleaning, AppointmentTypeFilling,
		AppointmentTypeExtraction, AppointmentTypeRootCanal, AppointmentTypeCrown,
		AppointmentTypeConsultation, AppointmentTypeEmergency, AppointmentTypeFollowUp:
		return true
	}
	return false
}

type Appointment struct {
	Audited
	PatientID       int64             `json:"patient_id" db:"patient_id"`
	DentistID       *int64            `json:"dentist_id,omitempty" db:"dentist_id"`
	AppointmentDate string            `json:"appointment_date" db:"appointment_date"`
	AppointmentTime string            `json:"appointment_time" db:"appointment_time"`
	Duration        int               `json:"duration" db:"duration"`
	AppointmentType AppointmentType   `json:"appointment_type" db:"appointment_type"`
	TreatmentPlan   *string           `json:"treatment_plan,omitempty" db:"treatment_plan"`
	Notes           *string           `json:"notes,omitempty" db:"notes"`
	Status          AppointmentStatus `json:"status" db:"status"`
}

// AppointmentDetail is the joined listing row: appointment plus patient
// and dentist display names.
type AppointmentDetail struct {
	Appointment
	PatientFirstName string  `json:"patient_first_name" db:"patient_first_name"`
	PatientLastName  string  `json:"patient_last_name" db:"patient_last_name"`
	DentistName      *string `json:"dentist_name,omitempty" db:"dentist_name"`
}

type CreateAppointmentRequest struct {
	PatientID       int64   `json:"patient_id" binding:"required"`
	DentistID       *int64  `json:"dentist_id"`
	AppointmentDate string  `json:"appointment_date" binding:"required,isodate"`
	AppointmentTime string  `json:"appointment_time" binding:"required,hhmm"`
	Duration        int     `json:"duration" binding:"omitempty,min=5,max=480"`
	AppointmentType string  `json:"appointment_type" binding:"omitempty,oneof=checkup cleaning filling extraction root_canal crown consultation emergency follow_up"`
	TreatmentPlan   *string `json:"treatment_plan"`
	Notes           *string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	DentistID       *int64  `json:"dentist_id"`
	AppointmentDate *string `json:"appointment_date" binding:"omitempty,isodate"`
	AppointmentTime *string `json:"appointment_time" binding:"omitempty,hhmm"`
	Duration        *int    `json:"duration" binding:"omitempty,min=5,max=480"`
	AppointmentType *string `json:"appointment_type" binding:"omitempty,oneof=checkup cleaning filling extraction root_canal crown consultation emergency follow_up"`
	TreatmentPlan   *string `json:"treatment_plan"`
	Notes           *string `json:"notes"`
}

type AppointmentFilters struct {
	Date      string
	PatientID int64
	DentistID int64
	Status    AppointmentStatus
}

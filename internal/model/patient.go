package model

type Gender string

const (
	GenderMale         Gender = "male"
	GenderFemale       Gender = "female"
	GenderOther        Gender = "other"
	GenderNotDisclosed Gender = "prefer_not_to_say"
)

type Patient struct {
	Audited
	FirstName                    string  `json:"first_name" db:"first_name"`
	LastName                     string  `json:"last_name" db:"last_name"`
	DateOfBirth                  *string `json:"date_of_birth,omitempty" db:"date_of_birth"`
	Gender                       *Gender `json:"gender,omitempty" db:"gender"`
	Phone                        *string `json:"phone,omitempty" db:"phone"`
	Email                        *string `json:"email,omitempty" db:"email"`
	Address                      *string `json:"address,omitempty" db:"address"`
	City                         *string `json:"city,omitempty" db:"city"`
	State                        *string `json:"state,omitempty" db:"state"`
	PostalCode                   *string `json:"postal_code,omitempty" db:"postal_code"`
	EmergencyContactName         *string `json:"emergency_contact_name,omitempty" db:"emergency_contact_name"`
	EmergencyContactPhone        *string `json:"emergency_contact_phone,omitempty" db:"emergency_contact_phone"`
	EmergencyContactRelationship *string `json:"emergency_contact_relationship,omitempty" db:"emergency_contact_relationship"`
	MedicalHistory               *string `json:"medical_history,omitempty" db:"medical_history"`
	Allergies                    *string `json:"allergies,omitempty" db:"allergies"`
	InsuranceProvider            *string `json:"insurance_provider,omitempty" db:"insurance_provider"`
	InsuranceNumber              *string `json:"insurance_number,omitempty" db:"insurance_number"`
	InsuranceGroupNumber         *string `json:"insurance_group_number,omitempty" db:"insurance_group_number"`
	IsActive                     bool    `json:"is_active" db:"is_active"`
}

func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

type CreatePatientRequest struct {
	FirstName                    string  `json:"first_name" binding:"required"`
	LastName                     string  `json:"last_name" binding:"required"`
	DateOfBirth                  *string `json:"date_of_birth" binding:"omitempty,isodate"`
	Gender                       *string `json:"gender" binding:"omitempty,oneof=male female other prefer_not_to_say"`
	Phone                        *string `json:"phone"`
	Email                        *string `json:"email" binding:"omitempty,email"`
	Address                      *string `json:"address"`
	City                         *string `json:"city"`
	State                        *string `json:"state"`
	PostalCode                   *string `json:"postal_code"`
	EmergencyContactName         *string `json:"emergency_contact_name"`
	EmergencyContactPhone        *string `json:"emergency_contact_phone"`
	EmergencyContactRelationship *string `json:"emergency_contact_relationship"`
	MedicalHistory               *string `json:"medical_history"`
	Allergies                    *string `json:"allergies"`
	InsuranceProvider            *string `json:"insurance_provider"`
	InsuranceNumber              *string `json:"insurance_number"`
	InsuranceGroupNumber         *string `json:"insurance_group_number"`
}

type PatientFilters struct {
	Search     string
	ActiveOnly bool
}

package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/repository"
)

type patientRepository struct {
	BaseRepository
}

func NewPatientRepository(base BaseRepository) repository.PatientRepository {
	return &patientRepository{base}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (
			first_name, last_name, date_of_birth, gender, phone, email,
			address, city, state, postal_code, emergency_contact_name,
			emergency_contact_phone, emergency_contact_relationship,
			medical_history, allergies, insurance_provider,
			insurance_number, insurance_group_number, is_active,
			created_by, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	patient.CreatedAt = time.Now()
	patient.UpdatedAt = time.Now()
	patient.IsActive = true

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query,
			patient.FirstName,
			patient.LastName,
			patient.DateOfBirth,
			patient.Gender,
			patient.Phone,
			patient.Email,
			patient.Address,
			patient.City,
			patient.State,
			patient.PostalCode,
			patient.EmergencyContactName,
			patient.EmergencyContactPhone,
			patient.EmergencyContactRelationship,
			patient.MedicalHistory,
			patient.Allergies,
			patient.InsuranceProvider,
			patient.InsuranceNumber,
			patient.InsuranceGroupNumber,
			patient.IsActive,
			patient.CreatedBy,
			patient.CreatedAt,
			patient.UpdatedAt,
		)
		if err != nil {
			return mapConstraintErr(err, "patient")
		}
		patient.ID, err = res.LastInsertId()
		return err
	})
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	query := `SELECT * FROM patients WHERE id = ?`

	var patient model.Patient
	if err := r.db.GetContext(ctx, &patient, query, id); err != nil {
		return nil, mapNotFound(err, "patient")
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	query := `SELECT * FROM patients WHERE 1=1`
	args := []interface{}{}

	if filters != nil {
		if filters.ActiveOnly {
			query += " AND is_active = 1"
		}
		if filters.Search != "" {
			query += " AND (first_name LIKE ? OR last_name LIKE ?)"
			pattern := "%" + filters.Search + "%"
			args = append(args, pattern, pattern)
		}
	}

	query += " ORDER BY last_name, first_name"

	var patients []*model.Patient
	if err := r.db.SelectContext(ctx, &patients, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients SET
			first_name = ?, last_name = ?, date_of_birth = ?, gender = ?,
			phone = ?, email = ?, address = ?, city = ?, state = ?,
			postal_code = ?, emergency_contact_name = ?,
			emergency_contact_phone = ?, emergency_contact_relationship = ?,
			medical_history = ?, allergies = ?, insurance_provider = ?,
			insurance_number = ?, insurance_group_number = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.DateOfBirth,
		patient.Gender,
		patient.Phone,
		patient.Email,
		patient.Address,
		patient.City,
		patient.State,
		patient.PostalCode,
		patient.EmergencyContactName,
		patient.EmergencyContactPhone,
		patient.EmergencyContactRelationship,
		patient.MedicalHistory,
		patient.Allergies,
		patient.InsuranceProvider,
		patient.InsuranceNumber,
		patient.InsuranceGroupNumber,
		time.Now(),
		patient.ID,
	)
	if err != nil {
		return mapConstraintErr(err, "patient")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("patient not found")
	}
	return nil
}

// Deactivate flips is_active; appointments and treatment records keep
// referencing the row.
func (r *patientRepository) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE patients SET is_active = 0, updated_at = ? WHERE id = ? AND is_active = 1`

	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("patient not found")
	}
	return nil
}

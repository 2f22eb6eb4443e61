package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/repository"
)

type appointmentRepository struct {
	BaseRepository
}

func NewAppointmentRepository(base BaseRepository) repository.AppointmentRepository {
	return &appointmentRepository{base}
}

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO appointments (
			patient_id, dentist_id, appointment_date, appointment_time,
			duration, appointment_type, treatment_plan, notes, status,
			created_by, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	apt.CreatedAt = time.Now()
	apt.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query,
			apt.PatientID,
			apt.DentistID,
			apt.AppointmentDate,
			apt.AppointmentTime,
			apt.Duration,
			apt.AppointmentType,
			apt.TreatmentPlan,
			apt.Notes,
			apt.Status,
			apt.CreatedBy,
			apt.CreatedAt,
			apt.UpdatedAt,
		)
		if err != nil {
			return mapConstraintErr(err, "appointment")
		}
		apt.ID, err = res.LastInsertId()
		return err
	})
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `SELECT * FROM appointments WHERE id = ?`

	var apt model.Appointment
	if err := r.db.GetContext(ctx, &apt, query, id); err != nil {
		return nil, mapNotFound(err, "appointment")
	}
	return &apt, nil
}

func (r *appointmentRepository) List(ctx context.Context, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error) {
	query := `
		SELECT a.*,
			p.first_name AS patient_first_name,
			p.last_name AS patient_last_name,
			u.username AS dentist_name
		FROM appointments a
		JOIN patients p ON a.patient_id = p.id
		LEFT JOIN users u ON a.dentist_id = u.id
		WHERE 1=1
	`
	args := []interface{}{}

	if filters != nil {
		if filters.Date != "" {
			query += " AND a.appointment_date = ?"
			args = append(args, filters.Date)
		}
		if filters.PatientID != 0 {
			query += " AND a.patient_id = ?"
			args = append(args, filters.PatientID)
		}
		if filters.DentistID != 0 {
			query += " AND a.dentist_id = ?"
			args = append(args, filters.DentistID)
		}
		if filters.Status != "" {
			query += " AND a.status = ?"
			args = append(args, filters.Status)
		}
	}

	query += " ORDER BY a.appointment_date, a.appointment_time"

	var appointments []*model.AppointmentDetail
	if err := r.db.SelectContext(ctx, &appointments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment) error {
	query := `
		UPDATE appointments SET
			dentist_id = ?, appointment_date = ?, appointment_time = ?,
			duration = ?, appointment_type = ?, treatment_plan = ?,
			notes = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		apt.DentistID,
		apt.AppointmentDate,
		apt.AppointmentTime,
		apt.Duration,
		apt.AppointmentType,
		apt.TreatmentPlan,
		apt.Notes,
		time.Now(),
		apt.ID,
	)
	if err != nil {
		return mapConstraintErr(err, "appointment")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment not found")
	}
	return nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error {
	query := `UPDATE appointments SET status = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return mapConstraintErr(err, "appointment")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("appointment not found")
	}
	return nil
}

package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/repository"
)

type treatmentRecordRepository struct {
	BaseRepository
}

func NewTreatmentRecordRepository(base BaseRepository) repository.TreatmentRecordRepository {
	return &treatmentRecordRepository{base}
}

func (r *treatmentRecordRepository) Create(ctx context.Context, rec *model.TreatmentRecord) error {
	query := `
		INSERT INTO treatment_records (
			patient_id, treatment_id, appointment_id, dentist_id,
			treatment_date, treatment_notes, actual_cost, payment_status,
			completed_at, created_by, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	rec.CreatedAt = time.Now()
	rec.UpdatedAt = time.Now()

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query,
			rec.PatientID,
			rec.TreatmentID,
			rec.AppointmentID,
			rec.DentistID,
			rec.TreatmentDate,
			rec.TreatmentNotes,
			rec.ActualCost,
			rec.PaymentStatus,
			rec.CompletedAt,
			rec.CreatedBy,
			rec.CreatedAt,
			rec.UpdatedAt,
		)
		if err != nil {
			return mapConstraintErr(err, "treatment record")
		}
		rec.ID, err = res.LastInsertId()
		return err
	})
}

func (r *treatmentRecordRepository) Get(ctx context.Context, id int64) (*model.TreatmentRecord, error) {
	query := `SELECT * FROM treatment_records WHERE id = ?`

	var rec model.TreatmentRecord
	if err := r.db.GetContext(ctx, &rec, query, id); err != nil {
		return nil, mapNotFound(err, "treatment record")
	}
	return &rec, nil
}

func (r *treatmentRecordRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.TreatmentHistoryEntry, error) {
	query := `
		SELECT tr.*,
			t.name AS treatment_name,
			t.description AS description,
			u.username AS dentist_name
		FROM treatment_records tr
		JOIN treatments t ON tr.treatment_id = t.id
		LEFT JOIN users u ON tr.dentist_id = u.id
		WHERE tr.patient_id = ?
		ORDER BY tr.treatment_date DESC
	`

	var history []*model.TreatmentHistoryEntry
	if err := r.db.SelectContext(ctx, &history, query, patientID); err != nil {
		return nil, fmt.Errorf("failed to list treatment history: %w", err)
	}
	return history, nil
}

func (r *treatmentRecordRepository) UpdatePaymentStatus(ctx context.Context, id int64, status model.PaymentStatus) error {
	query := `UPDATE treatment_records SET payment_status = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return mapConstraintErr(err, "treatment record")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("treatment record not found")
	}
	return nil
}

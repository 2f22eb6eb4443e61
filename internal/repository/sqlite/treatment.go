package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/repository"
)

type treatmentRepository struct {
	BaseRepository
}

func NewTreatmentRepository(base BaseRepository) repository.TreatmentRepository {
	return &treatmentRepository{base}
}

func (r *treatmentRepository) Create(ctx context.Context, t *model.Treatment) error {
	query := `
		INSERT INTO treatments (name, description, category, duration, base_cost, is_active, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	t.CreatedAt = time.Now()
	t.UpdatedAt = time.Now()
	t.IsActive = true

	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, query,
			t.Name,
			t.Description,
			t.Category,
			t.Duration,
			t.BaseCost,
			t.IsActive,
			t.CreatedBy,
			t.CreatedAt,
			t.UpdatedAt,
		)
		if err != nil {
			return mapConstraintErr(err, "treatment")
		}
		t.ID, err = res.LastInsertId()
		return err
	})
}

func (r *treatmentRepository) Get(ctx context.Context, id int64) (*model.Treatment, error) {
	query := `SELECT * FROM treatments WHERE id = ?`

	var t model.Treatment
	if err := r.db.GetContext(ctx, &t, query, id); err != nil {
		return nil, mapNotFound(err, "treatment")
	}
	return &t, nil
}

func (r *treatmentRepository) List(ctx context.Context, activeOnly bool) ([]*model.Treatment, error) {
	query := `SELECT * FROM treatments`
	if activeOnly {
		query += " WHERE is_active = 1"
	}
	query += " ORDER BY category, name"

	var treatments []*model.Treatment
	if err := r.db.SelectContext(ctx, &treatments, query); err != nil {
		return nil, fmt.Errorf("failed to list treatments: %w", err)
	}
	return treatments, nil
}

func (r *treatmentRepository) Update(ctx context.Context, t *model.Treatment) error {
	query := `
		UPDATE treatments SET
			name = ?, description = ?, category = ?,
			duration = ?, base_cost = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		t.Name,
		t.Description,
		t.Category,
		t.Duration,
		t.BaseCost,
		time.Now(),
		t.ID,
	)
	if err != nil {
		return mapConstraintErr(err, "treatment")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("treatment not found")
	}
	return nil
}

func (r *treatmentRepository) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE treatments SET is_active = 0, updated_at = ? WHERE id = ? AND is_active = 1`

	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to deactivate treatment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("treatment not found")
	}
	return nil
}

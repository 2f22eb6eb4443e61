package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	apperrors "github.com/avasquez/dental-api/pkg/errors"
)

// BaseRepository provides common functionality for all repositories
type BaseRepository struct {
	db *sqlx.DB
}

// NewBaseRepository creates a new base repository
func NewBaseRepository(db *sqlx.DB) BaseRepository {
	return BaseRepository{db: db}
}

// GetDB returns the database instance
func (r *BaseRepository) GetDB() *sqlx.DB {
	return r.db
}

// WithTx executes a function within a transaction
func (r *BaseRepository) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

// mapConstraintErr translates SQLite constraint violations into
// application errors so handlers can show them to the user.
func mapConstraintErr(err error, entity string) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return apperrors.Conflict(entity+" already exists", err)
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return apperrors.BadRequest("referenced record does not exist", err)
	case strings.Contains(msg, "CHECK constraint failed"):
		return apperrors.BadRequest("invalid value for "+entity, err)
	}
	return err
}

// mapNotFound normalizes sql.ErrNoRows.
func mapNotFound(err error, entity string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(entity, err)
	}
	return err
}

package sqlite

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/avasquez/dental-api/internal/model"
)

func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	db, err := NewDB(Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, RunMigrations(db.DB))
	return db
}

func seedPatient(t *testing.T, db *sqlx.DB) *model.Patient {
	t.Helper()

	repo := NewPatientRepository(NewBaseRepository(db))
	p := &model.Patient{
		FirstName: "Alice",
		LastName:  "Nguyen",
	}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func seedTreatment(t *testing.T, db *sqlx.DB) *model.Treatment {
	t.Helper()

	repo := NewTreatmentRepository(NewBaseRepository(db))
	tr := &model.Treatment{
		Name:     "Cleaning",
		Category: model.TreatmentCategoryPreventive,
		Duration: 30,
		BaseCost: 120,
	}
	require.NoError(t, repo.Create(context.Background(), tr))
	return tr
}

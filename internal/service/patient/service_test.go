package patient

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/repository/sqlite"
	apperrors "github.com/avasquez/dental-api/pkg/errors"
)

func newTestService(t *testing.T) *Service {
	t.Helper()

	db, err := sqlite.NewDB(sqlite.Config{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, sqlite.RunMigrations(db.DB))

	return NewService(sqlite.NewPatientRepository(sqlite.NewBaseRepository(db)))
}

func TestDateOfBirthRoundTrip(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	dob := "1985-04-12"
	created, err := svc.CreatePatient(ctx, &model.CreatePatientRequest{
		FirstName:   "Maria",
		LastName:    "Santos",
		DateOfBirth: &dob,
	}, nil)
	require.NoError(t, err)

	stored, err := svc.GetPatient(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.DateOfBirth)
	assert.Equal(t, dob, *stored.DateOfBirth)

	// Resubmitting the fetched record must not alter the stored date.
	phone := "555-0100"
	_, err = svc.UpdatePatient(ctx, created.ID, &model.CreatePatientRequest{
		FirstName:   stored.FirstName,
		LastName:    stored.LastName,
		DateOfBirth: stored.DateOfBirth,
		Phone:       &phone,
	})
	require.NoError(t, err)

	stored, err = svc.GetPatient(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.DateOfBirth)
	assert.Equal(t, dob, *stored.DateOfBirth)
	assert.True(t, model.ValidDate(*stored.DateOfBirth))
}

func TestCreatePatientRejectsBadDate(t *testing.T) {
	svc := newTestService(t)

	dob := "12/04/1985"
	_, err := svc.CreatePatient(context.Background(), &model.CreatePatientRequest{
		FirstName:   "Maria",
		LastName:    "Santos",
		DateOfBirth: &dob,
	}, nil)
	require.Error(t, err)
	assert.True(t, apperrors.IsBadRequest(err))
}

package sqlite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avasquez/dental-api/internal/model"
)

func TestAppointmentListJoinsNames(t *testing.T) {
	db := newTestDB(t)
	base := NewBaseRepository(db)
	appointments := NewAppointmentRepository(base)
	users := NewUserRepository(base)
	ctx := context.Background()

	p := seedPatient(t, db)
	dentist := newUser("drjones", "jones@example.com")
	dentist.Role = model.UserRoleDentist
	require.NoError(t, users.Create(ctx, dentist))

	apt := &model.Appointment{
		PatientID:       p.ID,
		DentistID:       &dentist.ID,
		AppointmentDate: "2026-09-01",
		AppointmentTime: "09:30",
		Duration:        45,
		AppointmentType: model.AppointmentTypeCleaning,
		Status:          model.AppointmentStatusScheduled,
	}
	require.NoError(t, appointments.Create(ctx, apt))

	walkIn := &model.Appointment{
		PatientID:       p.ID,
		AppointmentDate: "2026-09-02",
		AppointmentTime: "14:00",
		Duration:        60,
		AppointmentType: model.AppointmentTypeEmergency,
		Status:          model.AppointmentStatusScheduled,
	}
	require.NoError(t, appointments.Create(ctx, walkIn))

	list, err := appointments.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// Ordered by date then time.
	assert.Equal(t, apt.ID, list[0].ID)
	assert.Equal(t, "Alice", list[0].PatientFirstName)
	require.NotNil(t, list[0].DentistName)
	assert.Equal(t, "drjones", *list[0].DentistName)
	assert.Nil(t, list[1].DentistName)

	byDate, err := appointments.List(ctx, &model.AppointmentFilters{Date: "2026-09-02"})
	require.NoError(t, err)
	require.Len(t, byDate, 1)
	assert.Equal(t, walkIn.ID, byDate[0].ID)
}

func TestAppointmentUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	appointments := NewAppointmentRepository(NewBaseRepository(db))
	ctx := context.Background()
	p := seedPatient(t, db)

	apt := &model.Appointment{
		PatientID:       p.ID,
		AppointmentDate: "2026-09-01",
		AppointmentTime: "10:00",
		Duration:        60,
		AppointmentType: model.AppointmentTypeCheckup,
		Status:          model.AppointmentStatusScheduled,
	}
	require.NoError(t, appointments.Create(ctx, apt))

	require.NoError(t, appointments.UpdateStatus(ctx, apt.ID, model.AppointmentStatusConfirmed))

	got, err := appointments.Get(ctx, apt.ID)
	require.NoError(t, err)
	assert.Equal(t, model.AppointmentStatusConfirmed, got.Status)

	require.Error(t, appointments.UpdateStatus(ctx, 9999, model.AppointmentStatusConfirmed))
}

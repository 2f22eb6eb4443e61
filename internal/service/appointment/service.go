package appointment

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/avasquez/dental-api/internal/email"
	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/repository"
	apperrors "github.com/avasquez/dental-api/pkg/errors"
)

// validTransitions encodes the appointment lifecycle. Cancelled and
// no_show are terminal, as is completed.
var validTransitions = map[model.AppointmentStatus][]model.AppointmentStatus{
	model.AppointmentStatusScheduled: {
		model.AppointmentStatusConfirmed,
		model.AppointmentStatusCancelled,
		model.AppointmentStatusNoShow,
	},
	model.AppointmentStatusConfirmed: {
		model.AppointmentStatusInProgress,
		model.AppointmentStatusCancelled,
		model.AppointmentStatusNoShow,
	},
	model.AppointmentStatusInProgress: {
		model.AppointmentStatusCompleted,
		model.AppointmentStatusCancelled,
	},
}

func canTransition(from, to model.AppointmentStatus) bool {
	for _, next := range validTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type AppointmentServicer interface {
	CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest, createdBy *int64) (*model.Appointment, error)
	GetAppointment(ctx context.Context, id int64) (*model.Appointment, error)
	ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error)
	UpdateAppointment(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) (*model.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error
}

type Service struct {
	repo     repository.AppointmentRepository
	patients repository.PatientRepository
	mailer   email.Service
}

func NewService(repo repository.AppointmentRepository, patients repository.PatientRepository, mailer email.Service) *Service {
	if mailer == nil {
		mailer = email.NewNoopService()
	}
	return &Service{repo: repo, patients: patients, mailer: mailer}
}

func (s *Service) CreateAppointment(ctx context.Context, req *model.CreateAppointmentRequest, createdBy *int64) (*model.Appointment, error) {
	if !model.ValidDate(req.AppointmentDate) {
		return nil, apperrors.BadRequest("appointment_date must be YYYY-MM-DD", nil)
	}
	if !model.ValidTime(req.AppointmentTime) {
		return nil, apperrors.BadRequest("appointment_time must be HH:MM", nil)
	}
	patient, err := s.patients.Get(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}

	apt := &model.Appointment{
		PatientID:       req.PatientID,
		DentistID:       req.DentistID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		Duration:        req.Duration,
		AppointmentType: model.AppointmentType(req.AppointmentType),
		TreatmentPlan:   req.TreatmentPlan,
		Notes:           req.Notes,
		Status:          model.AppointmentStatusScheduled,
	}
	apt.CreatedBy = createdBy
	if apt.Duration == 0 {
		apt.Duration = 60
	}
	if apt.AppointmentType == "" {
		apt.AppointmentType = model.AppointmentTypeCheckup
	}

	// Overlapping bookings are allowed; chairs and double-booked slots
	// are managed by the front desk, not the system.
	if err := s.repo.Create(ctx, apt); err != nil {
		return nil, err
	}

	// Booking confirmations are best effort; a mail failure never fails
	// the booking.
	if patient.Email != nil {
		if err := s.mailer.SendAppointmentReminder(ctx, *patient.Email, patient.FullName(), apt.AppointmentDate, apt.AppointmentTime); err != nil {
			log.Warn().Err(err).Int64("appointment_id", apt.ID).Msg("failed to send appointment reminder")
		}
	}
	return apt, nil
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListAppointments(ctx context.Context, filters *model.AppointmentFilters) ([]*model.AppointmentDetail, error) {
	if filters != nil && filters.Date != "" && !model.ValidDate(filters.Date) {
		return nil, apperrors.BadRequest("date must be YYYY-MM-DD", nil)
	}
	return s.repo.List(ctx, filters)
}

func (s *Service) UpdateAppointment(ctx context.Context, id int64, req *model.UpdateAppointmentRequest) (*model.Appointment, error) {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if apt.Status == model.AppointmentStatusCompleted ||
		apt.Status == model.AppointmentStatusCancelled ||
		apt.Status == model.AppointmentStatusNoShow {
		return nil, apperrors.Conflict(fmt.Sprintf("cannot reschedule a %s appointment", apt.Status), nil)
	}

	if req.DentistID != nil {
		apt.DentistID = req.DentistID
	}
	if req.AppointmentDate != nil {
		if !model.ValidDate(*req.AppointmentDate) {
			return nil, apperrors.BadRequest("appointment_date must be YYYY-MM-DD", nil)
		}
		apt.AppointmentDate = *req.AppointmentDate
	}
	if req.AppointmentTime != nil {
		if !model.ValidTime(*req.AppointmentTime) {
			return nil, apperrors.BadRequest("appointment_time must be HH:MM", nil)
		}
		apt.AppointmentTime = *req.AppointmentTime
	}
	if req.Duration != nil {
		apt.Duration = *req.Duration
	}
	if req.AppointmentType != nil {
		apt.AppointmentType = model.AppointmentType(*req.AppointmentType)
	}
	if req.TreatmentPlan != nil {
		apt.TreatmentPlan = req.TreatmentPlan
	}
	if req.Notes != nil {
		apt.Notes = req.Notes
	}

	if err := s.repo.Update(ctx, apt); err != nil {
		return nil, err
	}
	return apt, nil
}

func (s *Service) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error {
	if !status.Valid() {
		return apperrors.BadRequest(fmt.Sprintf("invalid status: %s", status), nil)
	}

	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if apt.Status == status {
		return nil
	}
	if !canTransition(apt.Status, status) {
		return apperrors.Conflict(fmt.Sprintf("cannot move appointment from %s to %s", apt.Status, status), nil)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

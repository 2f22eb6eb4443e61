package patient

import (
	"context"

	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/repository"
	apperrors "github.com/avasquez/dental-api/pkg/errors"
)

type PatientServicer interface {
	CreatePatient(ctx context.Context, req *model.CreatePatientRequest, createdBy *int64) (*model.Patient, error)
	GetPatient(ctx context.Context, id int64) (*model.Patient, error)
	ListPatients(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error)
	UpdatePatient(ctx context.Context, id int64, req *model.CreatePatientRequest) (*model.Patient, error)
	DeactivatePatient(ctx context.Context, id int64) error
}

type Service struct {
	repo repository.PatientRepository
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreatePatient(ctx context.Context, req *model.CreatePatientRequest, createdBy *int64) (*model.Patient, error) {
	if req.DateOfBirth != nil && !model.ValidDate(*req.DateOfBirth) {
		return nil, apperrors.BadRequest("date_of_birth must be YYYY-MM-DD", nil)
	}

	patient := patientFromRequest(req)
	patient.CreatedBy = createdBy
	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*model.Patient, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListPatients(ctx context.Context, filters *model.PatientFilters) ([]*model.Patient, error) {
	return s.repo.List(ctx, filters)
}

// UpdatePatient replaces the demographic fields wholesale. The record is
// loaded first so not-found surfaces before the write.
func (s *Service) UpdatePatient(ctx context.Context, id int64, req *model.CreatePatientRequest) (*model.Patient, error) {
	if req.DateOfBirth != nil && !model.ValidDate(*req.DateOfBirth) {
		return nil, apperrors.BadRequest("date_of_birth must be YYYY-MM-DD", nil)
	}

	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	patient := patientFromRequest(req)
	patient.ID = existing.ID
	patient.CreatedBy = existing.CreatedBy
	patient.CreatedAt = existing.CreatedAt
	patient.IsActive = existing.IsActive

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

func (s *Service) DeactivatePatient(ctx context.Context, id int64) error {
	return s.repo.Deactivate(ctx, id)
}

func patientFromRequest(req *model.CreatePatientRequest) *model.Patient {
	var gender *model.Gender
	if req.Gender != nil {
		g := model.Gender(*req.Gender)
		gender = &g
	}
	return &model.Patient{
		FirstName:                    req.FirstName,
		LastName:                     req.LastName,
		DateOfBirth:                  req.DateOfBirth,
		Gender:                       gender,
		Phone:                        req.Phone,
		Email:                        req.Email,
		Address:                      req.Address,
		City:                         req.City,
		State:                        req.State,
		PostalCode:                   req.PostalCode,
		EmergencyContactName:         req.EmergencyContactName,
		EmergencyContactPhone:        req.EmergencyContactPhone,
		EmergencyContactRelationship: req.EmergencyContactRelationship,
		MedicalHistory:               req.MedicalHistory,
		Allergies:                    req.Allergies,
		InsuranceProvider:            req.InsuranceProvider,
		InsuranceNumber:              req.InsuranceNumber,
		InsuranceGroupNumber:         req.InsuranceGroupNumber,
	}
}

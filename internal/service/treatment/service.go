package treatment

import (
	"context"
	"fmt"

	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/repository"
	apperrors "github.com/avasquez/dental-api/pkg/errors"
)

type TreatmentServicer interface {
	CreateTreatment(ctx context.Context, req *model.CreateTreatmentRequest, createdBy *int64) (*model.Treatment, error)
	GetTreatment(ctx context.Context, id int64) (*model.Treatment, error)
	ListTreatments(ctx context.Context, activeOnly bool) ([]*model.Treatment, error)
	UpdateTreatment(ctx context.Context, id int64, req *model.UpdateTreatmentRequest) (*model.Treatment, error)
	DeactivateTreatment(ctx context.Context, id int64) error

	RecordTreatment(ctx context.Context, req *model.CreateTreatmentRecordRequest, createdBy *int64) (*model.TreatmentRecord, error)
	GetTreatmentRecord(ctx context.Context, id int64) (*model.TreatmentRecord, error)
	PatientHistory(ctx context.Context, patientID int64) ([]*model.TreatmentHistoryEntry, error)
}

type Service struct {
	treatments repository.TreatmentRepository
	records    repository.TreatmentRecordRepository
	patients   repository.PatientRepository
}

func NewService(treatments repository.TreatmentRepository, records repository.TreatmentRecordRepository, patients repository.PatientRepository) *Service {
	return &Service{treatments: treatments, records: records, patients: patients}
}

func (s *Service) CreateTreatment(ctx context.Context, req *model.CreateTreatmentRequest, createdBy *int64) (*model.Treatment, error) {
	category := model.TreatmentCategory(req.Category)
	if req.Category == "" {
		category = model.TreatmentCategoryGeneral
	}
	if !category.Valid() {
		return nil, apperrors.BadRequest(fmt.Sprintf("invalid category: %s", req.Category), nil)
	}

	t := &model.Treatment{
		Name:        req.Name,
		Description: req.Description,
		Category:    category,
		Duration:    req.Duration,
		BaseCost:    req.BaseCost,
	}
	t.CreatedBy = createdBy
	if t.Duration == 0 {
		t.Duration = 60
	}

	if err := s.treatments.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) GetTreatment(ctx context.Context, id int64) (*model.Treatment, error) {
	return s.treatments.Get(ctx, id)
}

func (s *Service) ListTreatments(ctx context.Context, activeOnly bool) ([]*model.Treatment, error) {
	return s.treatments.List(ctx, activeOnly)
}

func (s *Service) UpdateTreatment(ctx context.Context, id int64, req *model.UpdateTreatmentRequest) (*model.Treatment, error) {
	t, err := s.treatments.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		t.Name = *req.Name
	}
	if req.Description != nil {
		t.Description = req.Description
	}
	if req.Category != nil {
		category := model.TreatmentCategory(*req.Category)
		if !category.Valid() {
			return nil, apperrors.BadRequest(fmt.Sprintf("invalid category: %s", *req.Category), nil)
		}
		t.Category = category
	}
	if req.Duration != nil {
		t.Duration = *req.Duration
	}
	if req.BaseCost != nil {
		t.BaseCost = *req.BaseCost
	}

	if err := s.treatments.Update(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Service) DeactivateTreatment(ctx context.Context, id int64) error {
	return s.treatments.Deactivate(ctx, id)
}

// RecordTreatment stores a performed procedure. The catalog entry must
// exist and still be active; the record starts unpaid.
func (s *Service) RecordTreatment(ctx context.Context, req *model.CreateTreatmentRecordRequest, createdBy *int64) (*model.TreatmentRecord, error) {
	if !model.ValidDate(req.TreatmentDate) {
		return nil, apperrors.BadRequest("treatment_date must be YYYY-MM-DD", nil)
	}
	if _, err := s.patients.Get(ctx, req.PatientID); err != nil {
		return nil, err
	}
	t, err := s.treatments.Get(ctx, req.TreatmentID)
	if err != nil {
		return nil, err
	}
	if !t.IsActive {
		return nil, apperrors.Conflict(fmt.Sprintf("treatment %q is no longer offered", t.Name), nil)
	}

	rec := &model.TreatmentRecord{
		PatientID:      req.PatientID,
		TreatmentID:    req.TreatmentID,
		AppointmentID:  req.AppointmentID,
		DentistID:      req.DentistID,
		TreatmentDate:  req.TreatmentDate,
		TreatmentNotes: req.TreatmentNotes,
		ActualCost:     req.ActualCost,
		PaymentStatus:  model.PaymentStatusPending,
	}
	rec.CreatedBy = createdBy

	if err := s.records.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) GetTreatmentRecord(ctx context.Context, id int64) (*model.TreatmentRecord, error) {
	return s.records.Get(ctx, id)
}

func (s *Service) PatientHistory(ctx context.Context, patientID int64) ([]*model.TreatmentHistoryEntry, error) {
	if _, err := s.patients.Get(ctx, patientID); err != nil {
		return nil, err
	}
	return s.records.ListByPatient(ctx, patientID)
}

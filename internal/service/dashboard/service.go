package dashboard

import (
	"context"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/avasquez/dental-api/internal/model"
	"github.com/avasquez/dental-api/internal/repository"
	apperrors "github.com/avasquez/dental-api/pkg/errors"
)

const (
	cacheTTL     = 30 * time.Second
	cacheCleanup = 5 * time.Minute
)

type DashboardServicer interface {
	Stats(ctx context.Context, role model.UserRole) (*model.DashboardStats, error)
}

type Service struct {
	repo  repository.DashboardRepository
	cache *gocache.Cache
}

func NewService(repo repository.DashboardRepository) *Service {
	return &Service{
		repo:  repo,
		cache: gocache.New(cacheTTL, cacheCleanup),
	}
}

// Stats returns the landing-screen aggregates. Figures are computed per
// role so billing numbers never reach clinical staff, and cached briefly
// since the dashboard is polled.
func (s *Service) Stats(ctx context.Context, role model.UserRole) (*model.DashboardStats, error) {
	key := fmt.Sprintf("stats:%s:%s", role, model.Today())
	if cached, ok := s.cache.Get(key); ok {
		return cached.(*model.DashboardStats), nil
	}

	stats, err := s.build(ctx, role)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, stats)
	return stats, nil
}

func (s *Service) build(ctx context.Context, role model.UserRole) (*model.DashboardStats, error) {
	today := model.Today()
	stats := &model.DashboardStats{}

	var err error
	if stats.TotalPatients, err = s.repo.CountActivePatients(ctx); err != nil {
		return nil, apperrors.Internal(err)
	}
	if stats.TodaysAppointments, err = s.repo.CountAppointmentsOn(ctx, today); err != nil {
		return nil, apperrors.Internal(err)
	}
	if stats.PendingAppointments, err = s.repo.CountAppointmentsByStatus(ctx, model.AppointmentStatusScheduled); err != nil {
		return nil, apperrors.Internal(err)
	}
	if stats.TotalTreatments, err = s.repo.CountActiveTreatments(ctx); err != nil {
		return nil, apperrors.Internal(err)
	}

	switch role {
	case model.UserRoleAdmin:
		if err := s.addBillingFigures(ctx, stats); err != nil {
			return nil, err
		}
		if err := s.addClinicalFigures(ctx, stats, today); err != nil {
			return nil, err
		}
		if stats.TreatmentRecordCount, err = s.repo.CountTreatmentRecords(ctx); err != nil {
			return nil, apperrors.Internal(err)
		}
	case model.UserRoleReceptionist:
		if err := s.addBillingFigures(ctx, stats); err != nil {
			return nil, err
		}
	case model.UserRoleDentist, model.UserRoleHygienist:
		if err := s.addClinicalFigures(ctx, stats, today); err != nil {
			return nil, err
		}
	}
	return stats, nil
}

func (s *Service) addBillingFigures(ctx context.Context, stats *model.DashboardStats) error {
	count, balance, err := s.repo.CountOutstandingInvoices(ctx)
	if err != nil {
		return apperrors.Internal(err)
	}
	stats.OutstandingInvoices = count
	stats.OutstandingBalance = balance
	return nil
}

func (s *Service) addClinicalFigures(ctx context.Context, stats *model.DashboardStats, today string) error {
	var err error
	if stats.PatientsSeenToday, err = s.repo.CountCompletedAppointmentsOn(ctx, today); err != nil {
		return apperrors.Internal(err)
	}
	if stats.PendingTreatments, err = s.repo.CountTreatmentRecordsByStatus(ctx, model.PaymentStatusPending); err != nil {
		return apperrors.Internal(err)
	}
	return nil
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/domain"
	"github.com/mwhitford/planline/internal/repository"
)

type phaseService struct {
	phases       repository.PhaseRepo
	subphases    repository.SubphaseRepo
	dependencies repository.DependencyRepo
}

func NewPhaseService(
	phases repository.PhaseRepo,
	subphases repository.SubphaseRepo,
	dependencies repository.DependencyRepo,
) PhaseService {
	return &phaseService{phases: phases, subphases: subphases, dependencies: dependencies}
}

func (s *phaseService) Create(ctx context.Context, ph *domain.Phase) error {
	if ph.EndDate.Before(ph.StartDate) {
		return &domain.InvalidDateRangeError{Start: dateutil.FormatISO(ph.StartDate), End: dateutil.FormatISO(ph.EndDate)}
	}
	if ph.ID == "" {
		ph.ID = uuid.New().String()
	}
	ph.StartDate = dateutil.Normalize(ph.StartDate)
	ph.EndDate = dateutil.Normalize(ph.EndDate)
	now := time.Now().UTC()
	ph.CreatedAt = now
	ph.UpdatedAt = now
	return s.phases.Create(ctx, ph)
}

func (s *phaseService) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	return s.phases.GetByID(ctx, id)
}

func (s *phaseService) ListByProject(ctx context.Context, projectID string) ([]*domain.Phase, error) {
	return s.phases.ListByProject(ctx, projectID)
}

func (s *phaseService) Update(ctx context.Context, ph *domain.Phase) error {
	if ph.EndDate.Before(ph.StartDate) {
		return &domain.InvalidDateRangeError{Start: dateutil.FormatISO(ph.StartDate), End: dateutil.FormatISO(ph.EndDate)}
	}
	ph.UpdatedAt = time.Now().UTC()
	return s.phases.Update(ctx, ph)
}

func (s *phaseService) Delete(ctx context.Context, id string) error {
	if err := deleteEdgesForPhase(ctx, s.subphases, s.dependencies, id); err != nil {
		return err
	}
	return s.phases.Delete(ctx, id)
}

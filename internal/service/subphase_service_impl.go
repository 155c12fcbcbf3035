package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/domain"
	"github.com/mwhitford/planline/internal/repository"
)

type subphaseService struct {
	subphases    repository.SubphaseRepo
	dependencies repository.DependencyRepo
}

func NewSubphaseService(
	subphases repository.SubphaseRepo,
	dependencies repository.DependencyRepo,
) SubphaseService {
	return &subphaseService{subphases: subphases, dependencies: dependencies}
}

func (s *subphaseService) Create(ctx context.Context, sp *domain.Subphase) error {
	if sp.EndDate.Before(sp.StartDate) {
		return &domain.InvalidDateRangeError{Start: dateutil.FormatISO(sp.StartDate), End: dateutil.FormatISO(sp.EndDate)}
	}
	if sp.ID == "" {
		sp.ID = uuid.New().String()
	}
	sp.StartDate = dateutil.Normalize(sp.StartDate)
	sp.EndDate = dateutil.Normalize(sp.EndDate)
	now := time.Now().UTC()
	sp.CreatedAt = now
	sp.UpdatedAt = now
	return s.subphases.Create(ctx, sp)
}

func (s *subphaseService) GetByID(ctx context.Context, id string) (*domain.Subphase, error) {
	return s.subphases.GetByID(ctx, id)
}

func (s *subphaseService) ListByPhase(ctx context.Context, phaseID string) ([]*domain.Subphase, error) {
	return s.subphases.ListByPhase(ctx, phaseID)
}

func (s *subphaseService) Update(ctx context.Context, sp *domain.Subphase) error {
	if sp.EndDate.Before(sp.StartDate) {
		return &domain.InvalidDateRangeError{Start: dateutil.FormatISO(sp.StartDate), End: dateutil.FormatISO(sp.EndDate)}
	}
	sp.UpdatedAt = time.Now().UTC()
	return s.subphases.Update(ctx, sp)
}

func (s *subphaseService) Delete(ctx context.Context, id string) error {
	if err := deleteEdgesForSubphase(ctx, s.subphases, s.dependencies, id); err != nil {
		return err
	}
	return s.subphases.Delete(ctx, id)
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/domain"
	"github.com/mwhitford/planline/internal/repository"
)

type projectService struct {
	projects     repository.ProjectRepo
	phases       repository.PhaseRepo
	subphases    repository.SubphaseRepo
	dependencies repository.DependencyRepo
}

func NewProjectService(
	projects repository.ProjectRepo,
	phases repository.PhaseRepo,
	subphases repository.SubphaseRepo,
	dependencies repository.DependencyRepo,
) ProjectService {
	return &projectService{
		projects:     projects,
		phases:       phases,
		subphases:    subphases,
		dependencies: dependencies,
	}
}

func (s *projectService) Create(ctx context.Context, p *domain.Project) error {
	if p.EndDate.Before(p.StartDate) {
		return &domain.InvalidDateRangeError{Start: dateutil.FormatISO(p.StartDate), End: dateutil.FormatISO(p.EndDate)}
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.StartDate = dateutil.Normalize(p.StartDate)
	p.EndDate = dateutil.Normalize(p.EndDate)
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	return s.projects.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *projectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *projectService) Update(ctx context.Context, p *domain.Project) error {
	if p.EndDate.Before(p.StartDate) {
		return &domain.InvalidDateRangeError{Start: dateutil.FormatISO(p.StartDate), End: dateutil.FormatISO(p.EndDate)}
	}
	p.UpdatedAt = time.Now().UTC()
	return s.projects.Update(ctx, p)
}

func (s *projectService) Delete(ctx context.Context, id string) error {
	// Drop dependency edges touching the project's phases and subphases
	// before the rows cascade away, so no edge dangles for other readers.
	phases, err := s.phases.ListByProject(ctx, id)
	if err != nil {
		return err
	}
	for _, ph := range phases {
		if err := deleteEdgesForPhase(ctx, s.subphases, s.dependencies, ph.ID); err != nil {
			return err
		}
	}
	return s.projects.Delete(ctx, id)
}

// deleteEdgesForPhase removes every edge referencing the phase or anything
// in its subphase subtree.
func deleteEdgesForPhase(ctx context.Context, subphases repository.SubphaseRepo, dependencies repository.DependencyRepo, phaseID string) error {
	if err := dependencies.DeleteReferencing(ctx, phaseID); err != nil {
		return err
	}
	tops, err := subphases.ListByPhase(ctx, phaseID)
	if err != nil {
		return err
	}
	for _, sp := range tops {
		if err := deleteEdgesForSubphase(ctx, subphases, dependencies, sp.ID); err != nil {
			return err
		}
	}
	return nil
}

func deleteEdgesForSubphase(ctx context.Context, subphases repository.SubphaseRepo, dependencies repository.DependencyRepo, subphaseID string) error {
	if err := dependencies.DeleteReferencing(ctx, subphaseID); err != nil {
		return err
	}
	children, err := subphases.ListChildren(ctx, subphaseID)
	if err != nil {
		return err
	}
	for _, child := range children {
		if err := deleteEdgesForSubphase(ctx, subphases, dependencies, child.ID); err != nil {
			return err
		}
	}
	return nil
}

package service

import (
	"context"
	"fmt"

	"github.com/mwhitford/planline/internal/domain"
	"github.com/mwhitford/planline/internal/repository"
)

type treeService struct {
	projects     repository.ProjectRepo
	phases       repository.PhaseRepo
	subphases    repository.SubphaseRepo
	dependencies repository.DependencyRepo
	staff        repository.StaffAssignmentRepo
	equipment    repository.EquipmentAssignmentRepo
}

func NewTreeService(
	projects repository.ProjectRepo,
	phases repository.PhaseRepo,
	subphases repository.SubphaseRepo,
	dependencies repository.DependencyRepo,
	staff repository.StaffAssignmentRepo,
	equipment repository.EquipmentAssignmentRepo,
) TreeService {
	return &treeService{
		projects:     projects,
		phases:       phases,
		subphases:    subphases,
		dependencies: dependencies,
		staff:        staff,
		equipment:    equipment,
	}
}

// Load assembles the full nested project: phases in order, subphase trees,
// dependency edges hung on their successors, assignments on their owners.
func (s *treeService) Load(ctx context.Context, projectID string) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	p.Staff, err = s.staff.ListByOwner(ctx, domain.EntityProject, p.ID)
	if err != nil {
		return nil, fmt.Errorf("loading project staff: %w", err)
	}
	p.Equipment, err = s.equipment.ListByOwner(ctx, domain.EntityProject, p.ID)
	if err != nil {
		return nil, fmt.Errorf("loading project equipment: %w", err)
	}

	phases, err := s.phases.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("loading phases: %w", err)
	}
	for _, ph := range phases {
		ph.Dependencies, err = s.loadDependencies(ctx, ph.ID)
		if err != nil {
			return nil, err
		}
		ph.Staff, err = s.staff.ListByOwner(ctx, domain.EntityPhase, ph.ID)
		if err != nil {
			return nil, fmt.Errorf("loading phase staff: %w", err)
		}
		ph.Equipment, err = s.equipment.ListByOwner(ctx, domain.EntityPhase, ph.ID)
		if err != nil {
			return nil, fmt.Errorf("loading phase equipment: %w", err)
		}

		tops, err := s.subphases.ListByPhase(ctx, ph.ID)
		if err != nil {
			return nil, fmt.Errorf("loading subphases: %w", err)
		}
		for _, sp := range tops {
			if err := s.loadSubphase(ctx, sp); err != nil {
				return nil, err
			}
		}
		ph.Subphases = tops
	}
	p.Phases = phases
	return p, nil
}

func (s *treeService) loadSubphase(ctx context.Context, sp *domain.Subphase) error {
	var err error
	sp.Dependencies, err = s.loadDependencies(ctx, sp.ID)
	if err != nil {
		return err
	}
	sp.Staff, err = s.staff.ListByOwner(ctx, domain.EntitySubphase, sp.ID)
	if err != nil {
		return fmt.Errorf("loading subphase staff: %w", err)
	}
	sp.Equipment, err = s.equipment.ListByOwner(ctx, domain.EntitySubphase, sp.ID)
	if err != nil {
		return fmt.Errorf("loading subphase equipment: %w", err)
	}

	children, err := s.subphases.ListChildren(ctx, sp.ID)
	if err != nil {
		return fmt.Errorf("loading subphase children: %w", err)
	}
	for _, child := range children {
		if err := s.loadSubphase(ctx, child); err != nil {
			return err
		}
	}
	sp.Children = children
	return nil
}

func (s *treeService) loadDependencies(ctx context.Context, successorID string) ([]domain.Dependency, error) {
	edges, err := s.dependencies.ListBySuccessor(ctx, successorID)
	if err != nil {
		return nil, fmt.Errorf("loading dependencies: %w", err)
	}
	deps := make([]domain.Dependency, 0, len(edges))
	for _, e := range edges {
		deps = append(deps, domain.Dependency{
			PredecessorID: e.PredecessorID,
			Type:          e.Type,
			LagDays:       e.LagDays,
		})
	}
	return deps, nil
}

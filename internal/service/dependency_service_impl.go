package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mwhitford/planline/internal/cascade"
	"github.com/mwhitford/planline/internal/contract"
	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/domain"
	"github.com/mwhitford/planline/internal/repository"
)

type dependencyService struct {
	tree         TreeService
	phases       repository.PhaseRepo
	subphases    repository.SubphaseRepo
	dependencies repository.DependencyRepo
	batch        *repository.BatchApplier
	observer     UseCaseObserver
}

func NewDependencyService(
	tree TreeService,
	phases repository.PhaseRepo,
	subphases repository.SubphaseRepo,
	dependencies repository.DependencyRepo,
	batch *repository.BatchApplier,
	observers ...UseCaseObserver,
) DependencyService {
	return &dependencyService{
		tree:         tree,
		phases:       phases,
		subphases:    subphases,
		dependencies: dependencies,
		batch:        batch,
		observer:     useCaseObserverOrNoop(observers),
	}
}

func (s *dependencyService) Add(ctx context.Context, req contract.AddDependencyRequest) (resp *contract.AddDependencyResponse, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "dependency-add",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields: map[string]any{
				"project":     req.ProjectID,
				"predecessor": req.PredecessorID,
				"successor":   req.SuccessorID,
				"type":        string(req.Type),
			},
		})
	}()

	if !domain.ValidDependencyTypes[string(req.Type)] {
		return nil, fmt.Errorf("unknown dependency type %q", req.Type)
	}

	tree, err := s.tree.Load(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	dep := domain.Dependency{
		PredecessorID: req.PredecessorID,
		Type:          req.Type,
		LagDays:       req.LagDays,
	}
	_, updates, err := cascade.CreateDependency(tree, req.SuccessorID, dep)
	if err != nil {
		// The engine sees one tree; a predecessor it cannot find may still
		// exist in another project, which is a different refusal.
		if errors.Is(err, domain.ErrEntityNotFound) {
			if crossErr := s.crossProjectCheck(ctx, tree, req); crossErr != nil {
				return nil, crossErr
			}
		}
		return nil, err
	}

	if err = s.dependencies.Create(ctx, repository.DependencyEdge{
		SuccessorID:   req.SuccessorID,
		PredecessorID: req.PredecessorID,
		Type:          req.Type,
		LagDays:       req.LagDays,
	}); err != nil {
		return nil, err
	}

	pending := toPendingUpdates(updates)
	saved, failures, err := s.batch.Apply(ctx, pending)
	if err != nil {
		return nil, err
	}
	return &contract.AddDependencyResponse{
		GeneratedAt: time.Now().UTC(),
		Updates:     pending,
		Saved:       saved,
		Failures:    failures,
	}, nil
}

func (s *dependencyService) Remove(ctx context.Context, req contract.RemoveDependencyRequest) error {
	return s.dependencies.Delete(ctx, req.SuccessorID, req.PredecessorID)
}

// crossProjectCheck reports whether a predecessor missing from the tree
// exists in some other project, which callers must refuse distinctly from
// a plain unknown id.
func (s *dependencyService) crossProjectCheck(ctx context.Context, tree *domain.Project, req contract.AddDependencyRequest) error {
	projectID, ok := s.owningProject(ctx, req.PredecessorID)
	if !ok || projectID == tree.ID {
		return nil
	}
	return &domain.CrossProjectDependencyError{
		PredecessorID:        req.PredecessorID,
		SuccessorID:          req.SuccessorID,
		PredecessorProjectID: projectID,
		SuccessorProjectID:   tree.ID,
	}
}

// owningProject resolves the project an entity id belongs to, looking at
// phases first and then subphases.
func (s *dependencyService) owningProject(ctx context.Context, entityID string) (string, bool) {
	if ph, err := s.phases.GetByID(ctx, entityID); err == nil {
		return ph.ProjectID, true
	}
	sp, err := s.subphases.GetByID(ctx, entityID)
	if err != nil {
		return "", false
	}
	ph, err := s.phases.GetByID(ctx, sp.PhaseID)
	if err != nil {
		return "", false
	}
	return ph.ProjectID, true
}

// toPendingUpdates converts engine updates to the wire form.
func toPendingUpdates(updates []cascade.Update) []contract.PendingUpdate {
	pending := make([]contract.PendingUpdate, 0, len(updates))
	for _, u := range updates {
		pending = append(pending, contract.PendingUpdate{
			EntityType: u.EntityType,
			ID:         u.ID,
			StartDate:  dateutil.FormatISO(u.NewStart),
			EndDate:    dateutil.FormatISO(u.NewEnd),
		})
	}
	return pending
}

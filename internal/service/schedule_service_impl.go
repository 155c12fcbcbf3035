package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mwhitford/planline/internal/cascade"
	"github.com/mwhitford/planline/internal/contract"
	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/repository"
)

type scheduleService struct {
	tree     TreeService
	batch    *repository.BatchApplier
	observer UseCaseObserver
}

func NewScheduleService(
	tree TreeService,
	batch *repository.BatchApplier,
	observers ...UseCaseObserver,
) ScheduleService {
	return &scheduleService{
		tree:     tree,
		batch:    batch,
		observer: useCaseObserverOrNoop(observers),
	}
}

// Move loads the project snapshot, runs the cascade, and persists the
// resulting batch. Persistence is best effort per item: a failed row is
// reported, not rolled back, and never blocks its siblings.
func (s *scheduleService) Move(ctx context.Context, req contract.MoveRequest) (resp *contract.MoveResponse, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "schedule-move",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields: map[string]any{
				"project": req.ProjectID,
				"entity":  req.EntityID,
				"type":    string(req.EntityType),
				"dry_run": req.DryRun,
			},
		})
	}()

	newStart, err := dateutil.ParseISO(req.NewStart)
	if err != nil {
		return nil, fmt.Errorf("parsing new start: %w", err)
	}
	newEnd, err := dateutil.ParseISO(req.NewEnd)
	if err != nil {
		return nil, fmt.Errorf("parsing new end: %w", err)
	}

	tree, err := s.tree.Load(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	_, updates, err := cascade.Move(tree, req.EntityType, req.EntityID, newStart, newEnd)
	if err != nil {
		return nil, err
	}

	pending := toPendingUpdates(updates)
	resp = &contract.MoveResponse{
		GeneratedAt: time.Now().UTC(),
		Updates:     pending,
	}
	if req.DryRun {
		return resp, nil
	}

	resp.Saved, resp.Failures, err = s.batch.Apply(ctx, pending)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

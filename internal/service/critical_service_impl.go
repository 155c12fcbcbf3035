package service

import (
	"context"
	"sort"
	"time"

	"github.com/mwhitford/planline/internal/contract"
	"github.com/mwhitford/planline/internal/cpm"
)

type criticalPathService struct {
	tree     TreeService
	observer UseCaseObserver
}

func NewCriticalPathService(tree TreeService, observers ...UseCaseObserver) CriticalPathService {
	return &criticalPathService{
		tree:     tree,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *criticalPathService) Compute(ctx context.Context, req contract.CriticalPathRequest) (resp *contract.CriticalPathResponse, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "critical-path",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"project": req.ProjectID},
		})
	}()

	tree, err := s.tree.Load(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	result := cpm.Analyze(tree)
	keys := make([]string, 0, len(result.CriticalKeys))
	for key := range result.CriticalKeys {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	return &contract.CriticalPathResponse{
		GeneratedAt:     time.Now().UTC(),
		Keys:            keys,
		HasDependencies: result.HasDependencies,
	}, nil
}

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mwhitford/planline/internal/db"
	"github.com/mwhitford/planline/internal/importer"
	"github.com/mwhitford/planline/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportProject(ctx context.Context, filePath string) (*ImportResult, error) {
	schema, err := importer.LoadImportSchema(filePath)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.importSchema(ctx, schema)
}

func (s *importService) ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error) {
	return s.importSchema(ctx, schema)
}

// importSchema validates, converts, and persists the whole import inside
// one transaction. Any failed insert rolls the whole project back.
func (s *importService) importSchema(ctx context.Context, schema *importer.ImportSchema) (result *ImportResult, err error) {
	startedAt := time.Now()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import-project",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"project": schema.Project.Name},
		})
	}()

	if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	converted, err := importer.Convert(schema)
	if err != nil {
		return nil, fmt.Errorf("converting import schema: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txProjects := repository.NewSQLiteProjectRepo(tx)
		txPhases := repository.NewSQLitePhaseRepo(tx)
		txSubphases := repository.NewSQLiteSubphaseRepo(tx)
		txDeps := repository.NewSQLiteDependencyRepo(tx)
		txStaff := repository.NewSQLiteStaffAssignmentRepo(tx)
		txEquipment := repository.NewSQLiteEquipmentAssignmentRepo(tx)

		if err := txProjects.Create(ctx, converted.Project); err != nil {
			return fmt.Errorf("creating project: %w", err)
		}
		for _, ph := range converted.Phases {
			if err := txPhases.Create(ctx, ph); err != nil {
				return fmt.Errorf("creating phase %q: %w", ph.Name, err)
			}
		}
		for _, sp := range converted.Subphases {
			if err := txSubphases.Create(ctx, sp); err != nil {
				return fmt.Errorf("creating subphase %q: %w", sp.Name, err)
			}
		}
		for _, edge := range converted.Edges {
			if err := txDeps.Create(ctx, repository.DependencyEdge{
				SuccessorID:   edge.SuccessorID,
				PredecessorID: edge.PredecessorID,
				Type:          edge.Type,
				LagDays:       edge.LagDays,
			}); err != nil {
				return fmt.Errorf("creating dependency: %w", err)
			}
		}
		for _, a := range converted.Staff {
			if err := txStaff.Create(ctx, a); err != nil {
				return fmt.Errorf("creating staff assignment %q: %w", a.PersonName, err)
			}
		}
		for _, a := range converted.Equipment {
			if err := txEquipment.Create(ctx, a); err != nil {
				return fmt.Errorf("creating equipment assignment %q: %w", a.EquipmentName, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &ImportResult{
		Project:         converted.Project,
		PhaseCount:      len(converted.Phases),
		SubphaseCount:   len(converted.Subphases),
		DependencyCount: len(converted.Edges),
		AssignmentCount: len(converted.Staff) + len(converted.Equipment),
	}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}

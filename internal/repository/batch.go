package repository

import (
	"context"
	"fmt"

	"github.com/mwhitford/planline/internal/contract"
	"github.com/mwhitford/planline/internal/domain"
)

// BatchApplier persists a cascade's pending updates. Each item is applied
// independently: a failed item is recorded and skipped, siblings that
// already saved stay saved.
type BatchApplier struct {
	projects  ProjectRepo
	phases    PhaseRepo
	subphases SubphaseRepo
	staff     StaffAssignmentRepo
	equipment EquipmentAssignmentRepo
}

// NewBatchApplier creates a BatchApplier over the given repositories.
func NewBatchApplier(
	projects ProjectRepo,
	phases PhaseRepo,
	subphases SubphaseRepo,
	staff StaffAssignmentRepo,
	equipment EquipmentAssignmentRepo,
) *BatchApplier {
	return &BatchApplier{
		projects:  projects,
		phases:    phases,
		subphases: subphases,
		staff:     staff,
		equipment: equipment,
	}
}

// Apply writes each pending update through the repository matching its
// entity type. It returns the number of items saved and the per-item
// failures; the error return is reserved for context cancellation.
func (b *BatchApplier) Apply(ctx context.Context, updates []contract.PendingUpdate) (int, []contract.SaveFailure, error) {
	var saved int
	var failures []contract.SaveFailure
	for _, u := range updates {
		if err := ctx.Err(); err != nil {
			return saved, failures, err
		}
		if err := b.applyOne(ctx, u); err != nil {
			failures = append(failures, contract.SaveFailure{Update: u, Err: err.Error()})
			continue
		}
		saved++
	}
	return saved, failures, nil
}

func (b *BatchApplier) applyOne(ctx context.Context, u contract.PendingUpdate) error {
	switch u.EntityType {
	case domain.EntityProject:
		return b.projects.UpdateDates(ctx, u.ID, u.StartDate, u.EndDate)
	case domain.EntityPhase:
		return b.phases.UpdateDates(ctx, u.ID, u.StartDate, u.EndDate)
	case domain.EntitySubphase:
		return b.subphases.UpdateDates(ctx, u.ID, u.StartDate, u.EndDate)
	case domain.EntityStaffAssignment:
		return b.staff.UpdateDates(ctx, u.ID, u.StartDate, u.EndDate)
	case domain.EntityEquipmentAssignment:
		return b.equipment.UpdateDates(ctx, u.ID, u.StartDate, u.EndDate)
	default:
		return fmt.Errorf("unknown entity type %q", u.EntityType)
	}
}

package repository

import (
	"context"
	"errors"

	"github.com/mwhitford/planline/internal/domain"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	UpdateDates(ctx context.Context, id, startDate, endDate string) error
	Delete(ctx context.Context, id string) error
}

type PhaseRepo interface {
	Create(ctx context.Context, ph *domain.Phase) error
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Phase, error)
	Update(ctx context.Context, ph *domain.Phase) error
	UpdateDates(ctx context.Context, id, startDate, endDate string) error
	Delete(ctx context.Context, id string) error
}

type SubphaseRepo interface {
	Create(ctx context.Context, sp *domain.Subphase) error
	GetByID(ctx context.Context, id string) (*domain.Subphase, error)
	ListByPhase(ctx context.Context, phaseID string) ([]*domain.Subphase, error)
	ListChildren(ctx context.Context, parentSubphaseID string) ([]*domain.Subphase, error)
	Update(ctx context.Context, sp *domain.Subphase) error
	UpdateDates(ctx context.Context, id, startDate, endDate string) error
	Delete(ctx context.Context, id string) error
}

// DependencyEdge is the flat storage form of one typed edge.
type DependencyEdge struct {
	SuccessorID   string
	PredecessorID string
	Type          domain.DependencyType
	LagDays       int
}

type DependencyRepo interface {
	Create(ctx context.Context, e DependencyEdge) error
	Delete(ctx context.Context, successorID, predecessorID string) error
	// DeleteReferencing removes every edge where the entity appears on
	// either side, used when an entity's subtree is removed.
	DeleteReferencing(ctx context.Context, entityID string) error
	ListBySuccessor(ctx context.Context, successorID string) ([]DependencyEdge, error)
	ListByPredecessor(ctx context.Context, predecessorID string) ([]DependencyEdge, error)
}

type StaffAssignmentRepo interface {
	Create(ctx context.Context, a *domain.StaffAssignment) error
	GetByID(ctx context.Context, id string) (*domain.StaffAssignment, error)
	ListByOwner(ctx context.Context, entityType domain.EntityType, ownerID string) ([]*domain.StaffAssignment, error)
	UpdateDates(ctx context.Context, id, startDate, endDate string) error
	Delete(ctx context.Context, id string) error
}

type EquipmentAssignmentRepo interface {
	Create(ctx context.Context, a *domain.EquipmentAssignment) error
	GetByID(ctx context.Context, id string) (*domain.EquipmentAssignment, error)
	ListByOwner(ctx context.Context, entityType domain.EntityType, ownerID string) ([]*domain.EquipmentAssignment, error)
	UpdateDates(ctx context.Context, id, startDate, endDate string) error
	Delete(ctx context.Context, id string) error
}

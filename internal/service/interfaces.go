package service

import (
	"context"

	"github.com/mwhitford/planline/internal/contract"
	"github.com/mwhitford/planline/internal/domain"
	"github.com/mwhitford/planline/internal/importer"
)

type ProjectService interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id string) error
}

type PhaseService interface {
	Create(ctx context.Context, ph *domain.Phase) error
	GetByID(ctx context.Context, id string) (*domain.Phase, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Phase, error)
	Update(ctx context.Context, ph *domain.Phase) error
	Delete(ctx context.Context, id string) error
}

type SubphaseService interface {
	Create(ctx context.Context, sp *domain.Subphase) error
	GetByID(ctx context.Context, id string) (*domain.Subphase, error)
	ListByPhase(ctx context.Context, phaseID string) ([]*domain.Subphase, error)
	Update(ctx context.Context, sp *domain.Subphase) error
	Delete(ctx context.Context, id string) error
}

type AssignmentService interface {
	CreateStaff(ctx context.Context, a *domain.StaffAssignment) error
	CreateEquipment(ctx context.Context, a *domain.EquipmentAssignment) error
	ListStaff(ctx context.Context, ownerType domain.EntityType, ownerID string) ([]*domain.StaffAssignment, error)
	ListEquipment(ctx context.Context, ownerType domain.EntityType, ownerID string) ([]*domain.EquipmentAssignment, error)
	DeleteStaff(ctx context.Context, id string) error
	DeleteEquipment(ctx context.Context, id string) error
}

// TreeService loads a project as a fully nested tree: phases ordered by
// OrderIndex, subphases recursively attached, dependencies and assignments
// hung on their owners.
type TreeService interface {
	Load(ctx context.Context, projectID string) (*domain.Project, error)
}

// DependencyService validates and persists typed edges. Add performs the
// creation-time snap cascade for FS/SS edges.
type DependencyService interface {
	Add(ctx context.Context, req contract.AddDependencyRequest) (*contract.AddDependencyResponse, error)
	Remove(ctx context.Context, req contract.RemoveDependencyRequest) error
}

// ScheduleService applies a committed date edit and cascades it.
type ScheduleService interface {
	Move(ctx context.Context, req contract.MoveRequest) (*contract.MoveResponse, error)
}

type TimelineService interface {
	Build(ctx context.Context, req contract.TimelineRequest) (*contract.TimelineResponse, error)
}

type CriticalPathService interface {
	Compute(ctx context.Context, req contract.CriticalPathRequest) (*contract.CriticalPathResponse, error)
}

// ImportResult holds the outcome of a project import.
type ImportResult struct {
	Project         *domain.Project
	PhaseCount      int
	SubphaseCount   int
	DependencyCount int
	AssignmentCount int
}

type ImportService interface {
	ImportProject(ctx context.Context, filePath string) (*ImportResult, error)
	ImportProjectFromSchema(ctx context.Context, schema *importer.ImportSchema) (*ImportResult, error)
}

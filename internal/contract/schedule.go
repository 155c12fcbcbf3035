package contract

import (
	"time"

	"github.com/mwhitford/planline/internal/domain"
)

// PendingUpdate is one batch item handed to the persistence layer. Dates are
// ISO "YYYY-MM-DD" strings on the wire.
type PendingUpdate struct {
	EntityType domain.EntityType
	ID         string
	StartDate  string
	EndDate    string
}

// SaveFailure records one batch item that could not be persisted. Failures
// are per-item: siblings already saved stay saved.
type SaveFailure struct {
	Update PendingUpdate
	Err    string
}

// MoveRequest is a committed drag or resize of one entity.
type MoveRequest struct {
	ProjectID  string
	EntityType domain.EntityType
	EntityID   string
	NewStart   string
	NewEnd     string
	// DryRun computes the cascade without persisting anything.
	DryRun bool
}

// MoveResponse reports the cascade outcome and what was persisted.
type MoveResponse struct {
	GeneratedAt time.Time
	Updates     []PendingUpdate
	Saved       int
	Failures    []SaveFailure
}

// AddDependencyRequest creates a typed edge on the successor entity.
type AddDependencyRequest struct {
	ProjectID     string
	SuccessorID   string
	PredecessorID string
	Type          domain.DependencyType
	LagDays       int
}

// AddDependencyResponse reports the creation-time snap cascade, empty for
// FF/SF edges which never snap.
type AddDependencyResponse struct {
	GeneratedAt time.Time
	Updates     []PendingUpdate
	Saved       int
	Failures    []SaveFailure
}

// RemoveDependencyRequest drops the edge between two entities.
type RemoveDependencyRequest struct {
	ProjectID     string
	SuccessorID   string
	PredecessorID string
}

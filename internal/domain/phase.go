package domain

import "time"

// Phase belongs to exactly one Project. If it has subphases, its date range
// is derived from them: StartDate = min(child.StartDate), EndDate =
// max(child.EndDate).
type Phase struct {
	ID          string
	ProjectID   string
	Name        string
	StartDate   time.Time
	EndDate     time.Time
	Color       string
	IsMilestone bool
	// Completion is the stored completion percentage (0-100), nil when unset.
	// The effective value rolls up from subphases; see EffectiveCompletion.
	Completion   *float64
	OrderIndex   int
	Subphases    []*Subphase
	Dependencies []Dependency
	Staff        []*StaffAssignment
	Equipment    []*EquipmentAssignment
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Subphase belongs to a Phase or to another Subphase. The tree nests to
// arbitrary depth; parent references are plain id fields, never pointers.
type Subphase struct {
	ID        string
	PhaseID   string
	// ParentSubphaseID is nil when the subphase sits directly under its phase.
	ParentSubphaseID *string
	Name             string
	StartDate        time.Time
	EndDate          time.Time
	Color            string
	IsMilestone      bool
	Completion       *float64
	OrderIndex       int
	Children         []*Subphase
	Dependencies     []Dependency
	Staff            []*StaffAssignment
	Equipment        []*EquipmentAssignment
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Dependency is a typed edge stored on the successor entity. PredecessorID
// references a Phase or Subphase in the same project; ids are unique across
// the whole phase/subphase namespace.
type Dependency struct {
	PredecessorID string
	Type          DependencyType
	LagDays       int
}

package cpm

import "github.com/mwhitford/planline/internal/domain"

// NodeSchedule holds the forward/backward pass values for one phase or
// subphase. All day values are offsets from the project's earliest date.
type NodeSchedule struct {
	Key        string
	EntityType domain.EntityType
	ID         string
	Duration   int

	EarlyStart  int
	EarlyFinish int
	LateStart   int
	LateFinish  int

	// Float is LateStart - EarlyStart. Zero or negative marks the node
	// critical; the tolerance absorbs day-granularity rounding.
	Float    int
	Critical bool
}

// Result is the critical path analysis of one project.
type Result struct {
	// Nodes is keyed by entity id.
	Nodes map[string]*NodeSchedule
	// CriticalKeys holds "phase-{id}" / "subphase-{id}" keys for every
	// zero-float node.
	CriticalKeys map[string]bool
	// HasDependencies is false when the project has no edges at all;
	// callers skip highlighting in that case.
	HasDependencies bool
}

package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/mwhitford/planline/internal/domain"
)

// Date builds a local-midnight date, the normal form for schedule dates.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectDates(start, end time.Time) ProjectOption {
	return func(p *domain.Project) {
		p.StartDate = start
		p.EndDate = end
	}
}

func WithPhases(phases ...*domain.Phase) ProjectOption {
	return func(p *domain.Project) {
		p.Phases = append(p.Phases, phases...)
	}
}

func NewTestProject(name string, opts ...ProjectOption) *domain.Project {
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      name,
		StartDate: Date(2024, time.January, 1),
		EndDate:   Date(2024, time.December, 31),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Phase options
type PhaseOption func(*domain.Phase)

func WithPhaseDates(start, end time.Time) PhaseOption {
	return func(ph *domain.Phase) {
		ph.StartDate = start
		ph.EndDate = end
	}
}

func WithPhaseCompletion(c float64) PhaseOption {
	return func(ph *domain.Phase) {
		ph.Completion = &c
	}
}

func WithPhaseOrder(i int) PhaseOption {
	return func(ph *domain.Phase) {
		ph.OrderIndex = i
	}
}

func WithSubphases(subs ...*domain.Subphase) PhaseOption {
	return func(ph *domain.Phase) {
		ph.Subphases = append(ph.Subphases, subs...)
	}
}

func WithPhaseDependency(predecessorID string, depType domain.DependencyType, lagDays int) PhaseOption {
	return func(ph *domain.Phase) {
		ph.Dependencies = append(ph.Dependencies, domain.Dependency{
			PredecessorID: predecessorID,
			Type:          depType,
			LagDays:       lagDays,
		})
	}
}

func NewTestPhase(projectID, name string, opts ...PhaseOption) *domain.Phase {
	now := time.Now().UTC()
	ph := &domain.Phase{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		Name:      name,
		StartDate: Date(2024, time.January, 1),
		EndDate:   Date(2024, time.January, 10),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(ph)
	}
	return ph
}

// Subphase options
type SubphaseOption func(*domain.Subphase)

func WithSubphaseDates(start, end time.Time) SubphaseOption {
	return func(sp *domain.Subphase) {
		sp.StartDate = start
		sp.EndDate = end
	}
}

func WithParentSubphase(id string) SubphaseOption {
	return func(sp *domain.Subphase) {
		sp.ParentSubphaseID = &id
	}
}

func WithSubphaseCompletion(c float64) SubphaseOption {
	return func(sp *domain.Subphase) {
		sp.Completion = &c
	}
}

func WithMilestone() SubphaseOption {
	return func(sp *domain.Subphase) {
		sp.IsMilestone = true
	}
}

func WithChildren(children ...*domain.Subphase) SubphaseOption {
	return func(sp *domain.Subphase) {
		sp.Children = append(sp.Children, children...)
	}
}

func WithSubphaseDependency(predecessorID string, depType domain.DependencyType, lagDays int) SubphaseOption {
	return func(sp *domain.Subphase) {
		sp.Dependencies = append(sp.Dependencies, domain.Dependency{
			PredecessorID: predecessorID,
			Type:          depType,
			LagDays:       lagDays,
		})
	}
}

func NewTestSubphase(phaseID, name string, opts ...SubphaseOption) *domain.Subphase {
	now := time.Now().UTC()
	sp := &domain.Subphase{
		ID:        uuid.New().String(),
		PhaseID:   phaseID,
		Name:      name,
		StartDate: Date(2024, time.January, 1),
		EndDate:   Date(2024, time.January, 5),
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, opt := range opts {
		opt(sp)
	}
	return sp
}

// Assignment fixtures
type StaffOption func(*domain.StaffAssignment)

func WithStaffDates(start, end time.Time) StaffOption {
	return func(a *domain.StaffAssignment) {
		a.StartDate = start
		a.EndDate = end
	}
}

func WithStaffPhase(phaseID string) StaffOption {
	return func(a *domain.StaffAssignment) {
		a.PhaseID = &phaseID
		a.ProjectID = nil
		a.SubphaseID = nil
	}
}

func WithStaffSubphase(subphaseID string) StaffOption {
	return func(a *domain.StaffAssignment) {
		a.SubphaseID = &subphaseID
		a.ProjectID = nil
		a.PhaseID = nil
	}
}

func NewTestStaff(projectID, person string, opts ...StaffOption) *domain.StaffAssignment {
	now := time.Now().UTC()
	a := &domain.StaffAssignment{
		ID:         uuid.New().String(),
		ProjectID:  &projectID,
		PersonName: person,
		Role:       "engineer",
		StartDate:  Date(2024, time.January, 1),
		EndDate:    Date(2024, time.January, 10),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

type EquipmentOption func(*domain.EquipmentAssignment)

func WithEquipmentDates(start, end time.Time) EquipmentOption {
	return func(a *domain.EquipmentAssignment) {
		a.StartDate = start
		a.EndDate = end
	}
}

func WithEquipmentPhase(phaseID string) EquipmentOption {
	return func(a *domain.EquipmentAssignment) {
		a.PhaseID = &phaseID
		a.ProjectID = nil
		a.SubphaseID = nil
	}
}

func NewTestEquipment(projectID, name string, opts ...EquipmentOption) *domain.EquipmentAssignment {
	now := time.Now().UTC()
	a := &domain.EquipmentAssignment{
		ID:            uuid.New().String(),
		ProjectID:     &projectID,
		EquipmentName: name,
		StartDate:     Date(2024, time.January, 1),
		EndDate:       Date(2024, time.January, 10),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

package domain

import "time"

// StaffAssignment books a person onto a project, phase, or subphase for a
// date range. Exactly one of the owner id fields is set.
type StaffAssignment struct {
	ID         string
	ProjectID  *string
	PhaseID    *string
	SubphaseID *string
	PersonName string
	Role       string
	StartDate  time.Time
	EndDate    time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// EquipmentAssignment books a piece of equipment the same way.
type EquipmentAssignment struct {
	ID            string
	ProjectID     *string
	PhaseID       *string
	SubphaseID    *string
	EquipmentName string
	StartDate     time.Time
	EndDate       time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

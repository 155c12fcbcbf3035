package domain

import "time"

// Project is the root of the scheduling hierarchy. Its date range is derived
// from its phases whenever phases exist: StartDate = min(phase.StartDate),
// EndDate = max(phase.EndDate).
type Project struct {
	ID        string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	Phases    []*Phase
	Staff     []*StaffAssignment
	Equipment []*EquipmentAssignment
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FindPhase returns the phase with the given id, or nil.
func (p *Project) FindPhase(id string) *Phase {
	for _, ph := range p.Phases {
		if ph.ID == id {
			return ph
		}
	}
	return nil
}

// FindSubphase searches every phase's subtree for the subphase with the
// given id. Returns the subphase and its owning phase, or nil, nil.
func (p *Project) FindSubphase(id string) (*Subphase, *Phase) {
	for _, ph := range p.Phases {
		if sp := findSubphaseIn(ph.Subphases, id); sp != nil {
			return sp, ph
		}
	}
	return nil, nil
}

func findSubphaseIn(subphases []*Subphase, id string) *Subphase {
	for _, sp := range subphases {
		if sp.ID == id {
			return sp
		}
		if found := findSubphaseIn(sp.Children, id); found != nil {
			return found
		}
	}
	return nil
}

// WalkSubphases visits every subphase in the project, depth-first, in
// document order. The walk continues while fn returns true.
func (p *Project) WalkSubphases(fn func(sp *Subphase) bool) {
	for _, ph := range p.Phases {
		if !walkSubphases(ph.Subphases, fn) {
			return
		}
	}
}

func walkSubphases(subphases []*Subphase, fn func(sp *Subphase) bool) bool {
	for _, sp := range subphases {
		if !fn(sp) {
			return false
		}
		if !walkSubphases(sp.Children, fn) {
			return false
		}
	}
	return true
}

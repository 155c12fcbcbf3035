package cascade

import "github.com/mwhitford/planline/internal/domain"

// CloneProject deep-copies a project tree so a cascade can mutate freely and
// the caller can diff or discard before committing anything.
func CloneProject(p *domain.Project) *domain.Project {
	if p == nil {
		return nil
	}
	out := *p
	out.Phases = make([]*domain.Phase, len(p.Phases))
	for i, ph := range p.Phases {
		out.Phases[i] = clonePhase(ph)
	}
	out.Staff = cloneStaff(p.Staff)
	out.Equipment = cloneEquipment(p.Equipment)
	return &out
}

func clonePhase(ph *domain.Phase) *domain.Phase {
	out := *ph
	out.Completion = cloneFloat(ph.Completion)
	out.Subphases = cloneSubphases(ph.Subphases)
	out.Dependencies = append([]domain.Dependency(nil), ph.Dependencies...)
	out.Staff = cloneStaff(ph.Staff)
	out.Equipment = cloneEquipment(ph.Equipment)
	return &out
}

func cloneSubphases(subphases []*domain.Subphase) []*domain.Subphase {
	if subphases == nil {
		return nil
	}
	out := make([]*domain.Subphase, len(subphases))
	for i, sp := range subphases {
		c := *sp
		c.ParentSubphaseID = cloneStr(sp.ParentSubphaseID)
		c.Completion = cloneFloat(sp.Completion)
		c.Children = cloneSubphases(sp.Children)
		c.Dependencies = append([]domain.Dependency(nil), sp.Dependencies...)
		c.Staff = cloneStaff(sp.Staff)
		c.Equipment = cloneEquipment(sp.Equipment)
		out[i] = &c
	}
	return out
}

func cloneStaff(in []*domain.StaffAssignment) []*domain.StaffAssignment {
	if in == nil {
		return nil
	}
	out := make([]*domain.StaffAssignment, len(in))
	for i, a := range in {
		c := *a
		c.ProjectID = cloneStr(a.ProjectID)
		c.PhaseID = cloneStr(a.PhaseID)
		c.SubphaseID = cloneStr(a.SubphaseID)
		out[i] = &c
	}
	return out
}

func cloneEquipment(in []*domain.EquipmentAssignment) []*domain.EquipmentAssignment {
	if in == nil {
		return nil
	}
	out := make([]*domain.EquipmentAssignment, len(in))
	for i, a := range in {
		c := *a
		c.ProjectID = cloneStr(a.ProjectID)
		c.PhaseID = cloneStr(a.PhaseID)
		c.SubphaseID = cloneStr(a.SubphaseID)
		out[i] = &c
	}
	return out
}

func cloneStr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

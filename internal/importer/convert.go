package importer

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/domain"
)

// Edge is one converted dependency with real ids on both ends.
type Edge struct {
	PredecessorID string
	SuccessorID   string
	Type          domain.DependencyType
	LagDays       int
}

// ConvertedProject holds the flat persistence-ready output of Convert.
// Subphases appear parents-before-children so inserts satisfy the
// self-referencing foreign key.
type ConvertedProject struct {
	Project   *domain.Project
	Phases    []*domain.Phase
	Subphases []*domain.Subphase
	Edges     []Edge
	Staff     []*domain.StaffAssignment
	Equipment []*domain.EquipmentAssignment
}

// Convert transforms a validated ImportSchema into domain objects ready for
// persistence. Call ValidateImportSchema first; Convert assumes the schema
// is valid.
func Convert(schema *ImportSchema) (*ConvertedProject, error) {
	now := time.Now().UTC()

	startDate, err := parseDate(schema.Project.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parsing project start_date: %w", err)
	}
	endDate, err := parseDate(schema.Project.EndDate)
	if err != nil {
		return nil, fmt.Errorf("parsing project end_date: %w", err)
	}

	project := &domain.Project{
		ID:        uuid.New().String(),
		Name:      schema.Project.Name,
		StartDate: startDate,
		EndDate:   endDate,
		CreatedAt: now,
		UpdatedAt: now,
	}

	refMap := make(map[string]string) // ref -> generated id

	phases := make([]*domain.Phase, 0, len(schema.Phases))
	for _, ph := range schema.Phases {
		realID := uuid.New().String()
		refMap[ph.Ref] = realID

		start, err := parseDate(ph.StartDate)
		if err != nil {
			return nil, fmt.Errorf("phase %q: %w", ph.Ref, err)
		}
		end, err := parseDate(ph.EndDate)
		if err != nil {
			return nil, fmt.Errorf("phase %q: %w", ph.Ref, err)
		}

		phases = append(phases, &domain.Phase{
			ID:          realID,
			ProjectID:   project.ID,
			Name:        ph.Name,
			StartDate:   start,
			EndDate:     end,
			Color:       ph.Color,
			IsMilestone: ph.IsMilestone,
			Completion:  ph.Completion,
			OrderIndex:  ph.Order,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	subphases := make([]*domain.Subphase, 0, len(schema.Subphases))
	for _, sp := range schema.Subphases {
		realID := uuid.New().String()
		refMap[sp.Ref] = realID

		phaseID, ok := refMap[sp.PhaseRef]
		if !ok {
			return nil, fmt.Errorf("phase_ref %q not found for subphase %q", sp.PhaseRef, sp.Ref)
		}
		var parentID *string
		if sp.ParentRef != nil && *sp.ParentRef != "" {
			pid, ok := refMap[*sp.ParentRef]
			if !ok {
				return nil, fmt.Errorf("parent_ref %q not found for subphase %q", *sp.ParentRef, sp.Ref)
			}
			parentID = &pid
		}

		start, err := parseDate(sp.StartDate)
		if err != nil {
			return nil, fmt.Errorf("subphase %q: %w", sp.Ref, err)
		}
		end, err := parseDate(sp.EndDate)
		if err != nil {
			return nil, fmt.Errorf("subphase %q: %w", sp.Ref, err)
		}

		subphases = append(subphases, &domain.Subphase{
			ID:               realID,
			PhaseID:          phaseID,
			ParentSubphaseID: parentID,
			Name:             sp.Name,
			StartDate:        start,
			EndDate:          end,
			Color:            sp.Color,
			IsMilestone:      sp.IsMilestone,
			Completion:       sp.Completion,
			OrderIndex:       sp.Order,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}

	var edges []Edge
	for _, d := range schema.Dependencies {
		predID, ok := refMap[d.PredecessorRef]
		if !ok {
			return nil, fmt.Errorf("predecessor_ref %q not found", d.PredecessorRef)
		}
		succID, ok := refMap[d.SuccessorRef]
		if !ok {
			return nil, fmt.Errorf("successor_ref %q not found", d.SuccessorRef)
		}
		edges = append(edges, Edge{
			PredecessorID: predID,
			SuccessorID:   succID,
			Type:          domain.DependencyType(d.Type),
			LagDays:       d.LagDays,
		})
	}

	phaseIDs := make(map[string]bool, len(phases))
	for _, ph := range phases {
		phaseIDs[ph.ID] = true
	}

	var staff []*domain.StaffAssignment
	for _, st := range schema.Staff {
		start, err := parseDate(st.StartDate)
		if err != nil {
			return nil, fmt.Errorf("staff %q: %w", st.PersonName, err)
		}
		end, err := parseDate(st.EndDate)
		if err != nil {
			return nil, fmt.Errorf("staff %q: %w", st.PersonName, err)
		}
		a := &domain.StaffAssignment{
			ID:         uuid.New().String(),
			PersonName: st.PersonName,
			Role:       st.Role,
			StartDate:  start,
			EndDate:    end,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		a.ProjectID, a.PhaseID, a.SubphaseID, err = resolveOwner(st.OwnerRef, project.ID, refMap, phaseIDs)
		if err != nil {
			return nil, err
		}
		staff = append(staff, a)
	}

	var equipment []*domain.EquipmentAssignment
	for _, eq := range schema.Equipment {
		start, err := parseDate(eq.StartDate)
		if err != nil {
			return nil, fmt.Errorf("equipment %q: %w", eq.EquipmentName, err)
		}
		end, err := parseDate(eq.EndDate)
		if err != nil {
			return nil, fmt.Errorf("equipment %q: %w", eq.EquipmentName, err)
		}
		a := &domain.EquipmentAssignment{
			ID:            uuid.New().String(),
			EquipmentName: eq.EquipmentName,
			StartDate:     start,
			EndDate:       end,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		a.ProjectID, a.PhaseID, a.SubphaseID, err = resolveOwner(eq.OwnerRef, project.ID, refMap, phaseIDs)
		if err != nil {
			return nil, err
		}
		equipment = append(equipment, a)
	}

	return &ConvertedProject{
		Project:   project,
		Phases:    phases,
		Subphases: subphases,
		Edges:     edges,
		Staff:     staff,
		Equipment: equipment,
	}, nil
}

// resolveOwner picks exactly one owner id: the project when OwnerRef is
// absent, otherwise the phase or subphase the ref resolved to.
func resolveOwner(ownerRef *string, projectID string, refMap map[string]string, phaseIDs map[string]bool) (projID, phaseID, subID *string, err error) {
	if ownerRef == nil || *ownerRef == "" {
		return &projectID, nil, nil, nil
	}
	id, ok := refMap[*ownerRef]
	if !ok {
		return nil, nil, nil, fmt.Errorf("owner_ref %q not found", *ownerRef)
	}
	if phaseIDs[id] {
		return nil, &id, nil, nil
	}
	return nil, nil, &id, nil
}

func parseDate(s string) (time.Time, error) {
	t, err := dateutil.ParseISO(s)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

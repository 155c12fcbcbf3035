package importer

import (
	"fmt"
	"time"

	"github.com/mwhitford/planline/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateProject(&schema.Project)...)

	phaseRefs := make(map[string]bool)
	errs = append(errs, validatePhases(schema.Phases, phaseRefs)...)

	subRefs := make(map[string]bool)
	errs = append(errs, validateSubphases(schema.Subphases, phaseRefs, subRefs)...)

	entityRefs := make(map[string]bool, len(phaseRefs)+len(subRefs))
	for ref := range phaseRefs {
		entityRefs[ref] = true
	}
	for ref := range subRefs {
		entityRefs[ref] = true
	}
	errs = append(errs, validateDependencies(schema.Dependencies, entityRefs)...)
	errs = append(errs, validateAssignments(schema, entityRefs)...)

	return errs
}

func validateProject(p *ProjectImport) []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, fmt.Errorf("project.name is required"))
	}
	errs = append(errs, validateDateRange("project", p.StartDate, p.EndDate)...)

	return errs
}

func validatePhases(phases []PhaseImport, phaseRefs map[string]bool) []error {
	var errs []error

	if len(phases) == 0 {
		errs = append(errs, fmt.Errorf("at least one phase is required"))
	}
	for i, ph := range phases {
		prefix := fmt.Sprintf("phases[%d]", i)

		if ph.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if phaseRefs[ph.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, ph.Ref))
		} else {
			phaseRefs[ph.Ref] = true
		}

		if ph.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		errs = append(errs, validateDateRange(prefix, ph.StartDate, ph.EndDate)...)
		errs = append(errs, validateCompletion(prefix, ph.Completion)...)
	}

	return errs
}

func validateSubphases(subs []SubphaseImport, phaseRefs, subRefs map[string]bool) []error {
	var errs []error

	for i, sp := range subs {
		prefix := fmt.Sprintf("subphases[%d]", i)

		if sp.Ref == "" {
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		} else if phaseRefs[sp.Ref] || subRefs[sp.Ref] {
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, sp.Ref))
		} else {
			subRefs[sp.Ref] = true
		}

		if sp.PhaseRef == "" {
			errs = append(errs, fmt.Errorf("%s.phase_ref is required", prefix))
		} else if !phaseRefs[sp.PhaseRef] {
			errs = append(errs, fmt.Errorf("%s.phase_ref: ref %q not found in phases", prefix, sp.PhaseRef))
		}

		if sp.ParentRef != nil && *sp.ParentRef != "" {
			if !subRefs[*sp.ParentRef] {
				errs = append(errs, fmt.Errorf("%s.parent_ref: ref %q not found (must appear earlier in subphases list)", prefix, *sp.ParentRef))
			}
		}

		if sp.Name == "" {
			errs = append(errs, fmt.Errorf("%s.name is required", prefix))
		}
		errs = append(errs, validateDateRange(prefix, sp.StartDate, sp.EndDate)...)
		errs = append(errs, validateCompletion(prefix, sp.Completion)...)
	}

	return errs
}

func validateDependencies(deps []DependencyImport, entityRefs map[string]bool) []error {
	var errs []error

	seen := make(map[[2]string]bool)
	for i, d := range deps {
		prefix := fmt.Sprintf("dependencies[%d]", i)

		if d.PredecessorRef == "" {
			errs = append(errs, fmt.Errorf("%s.predecessor_ref is required", prefix))
		} else if !entityRefs[d.PredecessorRef] {
			errs = append(errs, fmt.Errorf("%s.predecessor_ref: ref %q not found", prefix, d.PredecessorRef))
		}

		if d.SuccessorRef == "" {
			errs = append(errs, fmt.Errorf("%s.successor_ref is required", prefix))
		} else if !entityRefs[d.SuccessorRef] {
			errs = append(errs, fmt.Errorf("%s.successor_ref: ref %q not found", prefix, d.SuccessorRef))
		}

		if !domain.ValidDependencyTypes[d.Type] {
			errs = append(errs, fmt.Errorf("%s.type: invalid value %q (expected FS, SS, FF, or SF)", prefix, d.Type))
		}

		if d.PredecessorRef != "" && d.SuccessorRef != "" {
			if d.PredecessorRef == d.SuccessorRef {
				errs = append(errs, fmt.Errorf("%s: self-dependency (predecessor_ref == successor_ref == %q)", prefix, d.PredecessorRef))
			}
			pair := [2]string{d.SuccessorRef, d.PredecessorRef}
			if seen[pair] {
				errs = append(errs, fmt.Errorf("%s: duplicate edge %q -> %q", prefix, d.PredecessorRef, d.SuccessorRef))
			}
			seen[pair] = true
		}
	}

	if len(deps) > 1 {
		errs = append(errs, detectCycles(deps)...)
	}

	return errs
}

func validateAssignments(schema *ImportSchema, entityRefs map[string]bool) []error {
	var errs []error

	for i, st := range schema.Staff {
		prefix := fmt.Sprintf("staff[%d]", i)
		if st.PersonName == "" {
			errs = append(errs, fmt.Errorf("%s.person_name is required", prefix))
		}
		if st.OwnerRef != nil && *st.OwnerRef != "" && !entityRefs[*st.OwnerRef] {
			errs = append(errs, fmt.Errorf("%s.owner_ref: ref %q not found", prefix, *st.OwnerRef))
		}
		errs = append(errs, validateDateRange(prefix, st.StartDate, st.EndDate)...)
	}
	for i, eq := range schema.Equipment {
		prefix := fmt.Sprintf("equipment[%d]", i)
		if eq.EquipmentName == "" {
			errs = append(errs, fmt.Errorf("%s.equipment_name is required", prefix))
		}
		if eq.OwnerRef != nil && *eq.OwnerRef != "" && !entityRefs[*eq.OwnerRef] {
			errs = append(errs, fmt.Errorf("%s.owner_ref: ref %q not found", prefix, *eq.OwnerRef))
		}
		errs = append(errs, validateDateRange(prefix, eq.StartDate, eq.EndDate)...)
	}

	return errs
}

func detectCycles(deps []DependencyImport) []error {
	graph := make(map[string][]string)
	nodes := make(map[string]bool)
	for _, d := range deps {
		if d.PredecessorRef != "" && d.SuccessorRef != "" && d.PredecessorRef != d.SuccessorRef {
			graph[d.PredecessorRef] = append(graph[d.PredecessorRef], d.SuccessorRef)
			nodes[d.PredecessorRef] = true
			nodes[d.SuccessorRef] = true
		}
	}

	const (
		white = 0 // unvisited
		gray  = 1 // in current path
		black = 2 // fully processed
	)

	color := make(map[string]int)
	var errs []error

	var visit func(node string) bool
	visit = func(node string) bool {
		color[node] = gray
		for _, neighbor := range graph[node] {
			if color[neighbor] == gray {
				errs = append(errs, fmt.Errorf("circular dependency detected involving %q and %q", node, neighbor))
				return true
			}
			if color[neighbor] == white {
				if visit(neighbor) {
					return true
				}
			}
		}
		color[node] = black
		return false
	}

	for node := range nodes {
		if color[node] == white {
			visit(node)
		}
	}

	return errs
}

func validateDateRange(prefix, start, end string) []error {
	var errs []error

	startDate, startErr := parseRequiredDate(prefix+".start_date", start)
	if startErr != nil {
		errs = append(errs, startErr)
	}
	endDate, endErr := parseRequiredDate(prefix+".end_date", end)
	if endErr != nil {
		errs = append(errs, endErr)
	}
	if startErr == nil && endErr == nil && endDate.Before(startDate) {
		errs = append(errs, fmt.Errorf("%s: end_date %q before start_date %q", prefix, end, start))
	}

	return errs
}

func parseRequiredDate(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid date format %q (expected YYYY-MM-DD)", field, s)
	}
	return t, nil
}

func validateCompletion(prefix string, c *float64) []error {
	if c == nil {
		return nil
	}
	if *c < 0 || *c > 100 {
		return []error{fmt.Errorf("%s.completion must be between 0 and 100", prefix)}
	}
	return nil
}

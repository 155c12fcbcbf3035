// Package cascade applies a single committed edit to a project tree and
// propagates it: descendants and assignments shift with their parent, and
// containment bounds re-fit upward through the hierarchy. All work happens
// on a deep copy; the caller receives the new tree plus the batch of
// pending updates to persist.
package cascade

import (
	"fmt"
	"time"

	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/depgraph"
	"github.com/mwhitford/planline/internal/domain"
)

// Move applies a drag or resize of one entity. Validation happens before
// any mutation, so an error means the input tree is untouched and no
// partial cascade escapes.
func Move(tree *domain.Project, entityType domain.EntityType, id string, newStart, newEnd time.Time) (*domain.Project, []Update, error) {
	if err := validateRange(newStart, newEnd); err != nil {
		return nil, nil, err
	}
	newStart = dateutil.Normalize(newStart)
	newEnd = dateutil.Normalize(newEnd)

	switch entityType {
	case domain.EntityProject:
		if tree.ID != id {
			return nil, nil, domain.ErrEntityNotFound
		}
	case domain.EntityPhase:
		if tree.FindPhase(id) == nil {
			return nil, nil, domain.ErrEntityNotFound
		}
	case domain.EntitySubphase:
		if sp, _ := tree.FindSubphase(id); sp == nil {
			return nil, nil, domain.ErrEntityNotFound
		}
	default:
		return nil, nil, fmt.Errorf("cannot move entity type %q", entityType)
	}

	clone := CloneProject(tree)
	b := newBatch()

	switch entityType {
	case domain.EntityProject:
		moveProject(clone, newStart, b)
	case domain.EntityPhase:
		movePhase(clone, clone.FindPhase(id), newStart, newEnd, b)
	case domain.EntitySubphase:
		sp, _ := clone.FindSubphase(id)
		moveSubphase(clone, sp, newStart, newEnd, b)
	}

	return clone, b.updates(), nil
}

// CreateDependency validates and stores a new typed edge on the successor.
// FS and SS edges snap the successor into alignment immediately; that
// initial snap cascades into the successor's children and upward through
// its ancestors. The snap happens only here, at creation time: later moves
// of the predecessor never re-align the successor.
func CreateDependency(tree *domain.Project, successorID string, dep domain.Dependency) (*domain.Project, []Update, error) {
	if !domain.ValidDependencyTypes[string(dep.Type)] {
		return nil, nil, fmt.Errorf("unknown dependency type %q", dep.Type)
	}
	if err := depgraph.ValidateNewEdge(tree, dep.PredecessorID, successorID); err != nil {
		return nil, nil, err
	}

	clone := CloneProject(tree)
	b := newBatch()
	idx := depgraph.IndexEntities(clone)
	succ := idx[successorID]
	pred := idx[dep.PredecessorID]

	switch succ.Type {
	case domain.EntityPhase:
		succ.Phase.Dependencies = append(succ.Phase.Dependencies, dep)
	default:
		succ.Sub.Dependencies = append(succ.Sub.Dependencies, dep)
	}

	if dep.Type == domain.FinishToStart || dep.Type == domain.StartToStart {
		predStart, predEnd := entityDates(pred)
		curStart, curEnd := entityDates(succ)
		duration := dateutil.DurationDays(curStart, curEnd)
		newStart := depgraph.RequiredStart(dep.Type, predStart, predEnd, duration, dep.LagDays)
		newEnd := dateutil.AddDays(newStart, duration-1)

		if succ.Type == domain.EntityPhase {
			movePhase(clone, succ.Phase, newStart, newEnd, b)
		} else {
			moveSubphase(clone, succ.Sub, newStart, newEnd, b)
		}
	}

	return clone, b.updates(), nil
}

func validateRange(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return &domain.InvalidDateRangeError{
			Start: dateutil.FormatISO(start),
			End:   dateutil.FormatISO(end),
			Cause: "missing date",
		}
	}
	if dateutil.Normalize(end).Before(dateutil.Normalize(start)) {
		return &domain.InvalidDateRangeError{
			Start: dateutil.FormatISO(start),
			End:   dateutil.FormatISO(end),
			Cause: "end before start",
		}
	}
	return nil
}

func entityDates(info depgraph.EntityInfo) (time.Time, time.Time) {
	if info.Type == domain.EntityPhase {
		return info.Phase.StartDate, info.Phase.EndDate
	}
	return info.Sub.StartDate, info.Sub.EndDate
}

// moveProject shifts the whole tree by the start delta; relative positions
// are preserved so no re-fit is needed afterwards.
func moveProject(p *domain.Project, newStart time.Time, b *batch) {
	offset := dateutil.DayDiff(p.StartDate, newStart)
	if offset == 0 {
		return
	}
	for _, ph := range p.Phases {
		shiftPhaseSubtree(ph, offset, b)
	}
	shiftAssignments(p.Staff, p.Equipment, offset, b)
	rederiveProjectBounds(p, b)
}

// movePhase sets the phase's new dates. A pure move (duration preserved)
// shifts the subphase subtree and the phase's own assignments by the same
// offset; a resize touches only the phase itself. Project bounds are
// re-derived either way.
func movePhase(p *domain.Project, ph *domain.Phase, newStart, newEnd time.Time, b *batch) {
	offset := dateutil.DayDiff(ph.StartDate, newStart)
	isMove := dateutil.DurationDays(newStart, newEnd) == dateutil.DurationDays(ph.StartDate, ph.EndDate)

	ph.StartDate = newStart
	ph.EndDate = newEnd
	b.add(Update{EntityType: domain.EntityPhase, ID: ph.ID, NewStart: newStart, NewEnd: newEnd})

	if isMove && offset != 0 {
		for _, sp := range ph.Subphases {
			shiftSubphaseSubtree(sp, offset, b)
		}
		shiftAssignments(ph.Staff, ph.Equipment, offset, b)
	}

	rederiveProjectBounds(p, b)
}

// moveSubphase sets the subphase's new dates, shifting nested children and
// assignments on a pure move, then re-fits every containment level above.
func moveSubphase(p *domain.Project, sp *domain.Subphase, newStart, newEnd time.Time, b *batch) {
	offset := dateutil.DayDiff(sp.StartDate, newStart)
	isMove := dateutil.DurationDays(newStart, newEnd) == dateutil.DurationDays(sp.StartDate, sp.EndDate)

	sp.StartDate = newStart
	sp.EndDate = newEnd
	b.add(Update{EntityType: domain.EntitySubphase, ID: sp.ID, NewStart: newStart, NewEnd: newEnd})

	if isMove && offset != 0 {
		for _, child := range sp.Children {
			shiftSubphaseSubtree(child, offset, b)
		}
		shiftAssignments(sp.Staff, sp.Equipment, offset, b)
	}

	refitAncestors(p, sp.ID, b)
}

func shiftPhaseSubtree(ph *domain.Phase, offset int, b *batch) {
	ph.StartDate = dateutil.AddDays(ph.StartDate, offset)
	ph.EndDate = dateutil.AddDays(ph.EndDate, offset)
	b.add(Update{EntityType: domain.EntityPhase, ID: ph.ID, NewStart: ph.StartDate, NewEnd: ph.EndDate})
	for _, sp := range ph.Subphases {
		shiftSubphaseSubtree(sp, offset, b)
	}
	shiftAssignments(ph.Staff, ph.Equipment, offset, b)
}

func shiftSubphaseSubtree(sp *domain.Subphase, offset int, b *batch) {
	sp.StartDate = dateutil.AddDays(sp.StartDate, offset)
	sp.EndDate = dateutil.AddDays(sp.EndDate, offset)
	b.add(Update{EntityType: domain.EntitySubphase, ID: sp.ID, NewStart: sp.StartDate, NewEnd: sp.EndDate})
	for _, child := range sp.Children {
		shiftSubphaseSubtree(child, offset, b)
	}
	shiftAssignments(sp.Staff, sp.Equipment, offset, b)
}

func shiftAssignments(staff []*domain.StaffAssignment, equipment []*domain.EquipmentAssignment, offset int, b *batch) {
	for _, a := range staff {
		a.StartDate = dateutil.AddDays(a.StartDate, offset)
		a.EndDate = dateutil.AddDays(a.EndDate, offset)
		b.add(Update{EntityType: domain.EntityStaffAssignment, ID: a.ID, NewStart: a.StartDate, NewEnd: a.EndDate})
	}
	for _, a := range equipment {
		a.StartDate = dateutil.AddDays(a.StartDate, offset)
		a.EndDate = dateutil.AddDays(a.EndDate, offset)
		b.add(Update{EntityType: domain.EntityEquipmentAssignment, ID: a.ID, NewStart: a.StartDate, NewEnd: a.EndDate})
	}
}

package cascade

import (
	"time"

	"github.com/mwhitford/planline/internal/domain"
)

// refitAncestors walks from the changed subphase up through its parent
// subphases to the owning phase, re-deriving bounds as min/max over children
// at each level. The walk expands parents a child outgrew and contracts
// parents whose children no longer need the old span. An unchanged level
// stops the walk, but project bounds are always re-derived from phase
// bounds as the final step.
func refitAncestors(p *domain.Project, subphaseID string, b *batch) {
	phase, chain := subphasePath(p, subphaseID)
	if phase == nil {
		return
	}

	stopped := false
	for i := len(chain) - 1; i >= 0; i-- {
		sp := chain[i]
		start, end, ok := subphaseBounds(sp.Children)
		if !ok || (start.Equal(sp.StartDate) && end.Equal(sp.EndDate)) {
			stopped = true
			break
		}
		sp.StartDate = start
		sp.EndDate = end
		b.add(Update{EntityType: domain.EntitySubphase, ID: sp.ID, NewStart: start, NewEnd: end})
	}

	if !stopped && len(phase.Subphases) > 0 {
		start, end, ok := subphaseBounds(phase.Subphases)
		if ok && !(start.Equal(phase.StartDate) && end.Equal(phase.EndDate)) {
			phase.StartDate = start
			phase.EndDate = end
			b.add(Update{EntityType: domain.EntityPhase, ID: phase.ID, NewStart: start, NewEnd: end})
		}
	}

	rederiveProjectBounds(p, b)
}

// rederiveProjectBounds enforces project.start = min(phase.start) and
// project.end = max(phase.end) whenever phases exist.
func rederiveProjectBounds(p *domain.Project, b *batch) {
	if len(p.Phases) == 0 {
		return
	}
	start := p.Phases[0].StartDate
	end := p.Phases[0].EndDate
	for _, ph := range p.Phases[1:] {
		if ph.StartDate.Before(start) {
			start = ph.StartDate
		}
		if ph.EndDate.After(end) {
			end = ph.EndDate
		}
	}
	if start.Equal(p.StartDate) && end.Equal(p.EndDate) {
		return
	}
	p.StartDate = start
	p.EndDate = end
	b.add(Update{EntityType: domain.EntityProject, ID: p.ID, NewStart: start, NewEnd: end})
}

func subphaseBounds(children []*domain.Subphase) (time.Time, time.Time, bool) {
	if len(children) == 0 {
		return time.Time{}, time.Time{}, false
	}
	start := children[0].StartDate
	end := children[0].EndDate
	for _, sp := range children[1:] {
		if sp.StartDate.Before(start) {
			start = sp.StartDate
		}
		if sp.EndDate.After(end) {
			end = sp.EndDate
		}
	}
	return start, end, true
}

// subphasePath locates the owning phase and the chain of ancestor subphases
// (outermost first) above the given subphase id.
func subphasePath(p *domain.Project, id string) (*domain.Phase, []*domain.Subphase) {
	for _, ph := range p.Phases {
		if chain, ok := findPath(ph.Subphases, id, nil); ok {
			return ph, chain
		}
	}
	return nil, nil
}

func findPath(subphases []*domain.Subphase, id string, ancestors []*domain.Subphase) ([]*domain.Subphase, bool) {
	for _, sp := range subphases {
		if sp.ID == id {
			return append([]*domain.Subphase(nil), ancestors...), true
		}
		if chain, ok := findPath(sp.Children, id, append(ancestors, sp)); ok {
			return chain, ok
		}
	}
	return nil, false
}

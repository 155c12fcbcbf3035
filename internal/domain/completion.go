package domain

import "github.com/mwhitford/planline/internal/dateutil"

// EffectiveCompletion is the read-side completion rollup. An entity with no
// descendant completion data reports its own stored value; otherwise it
// reports the duration-weighted average of its children's effective values,
// treating children without any completion as 0%. The boolean is false when
// neither the entity nor any descendant carries a completion value.
func (p *Phase) EffectiveCompletion() (float64, bool) {
	if !anySubphaseHasCompletion(p.Subphases) {
		if p.Completion == nil {
			return 0, false
		}
		return *p.Completion, true
	}
	return weightedCompletion(p.Subphases), true
}

func (sp *Subphase) EffectiveCompletion() (float64, bool) {
	if !anySubphaseHasCompletion(sp.Children) {
		if sp.Completion == nil {
			return 0, false
		}
		return *sp.Completion, true
	}
	return weightedCompletion(sp.Children), true
}

// EffectiveCompletion for a project is the duration-weighted average over
// its phases, false when no phase reports a value.
func (p *Project) EffectiveCompletion() (float64, bool) {
	any := false
	for _, ph := range p.Phases {
		if _, ok := ph.EffectiveCompletion(); ok {
			any = true
			break
		}
	}
	if !any {
		return 0, false
	}
	var totalDays, weighted float64
	for _, ph := range p.Phases {
		days := float64(dateutil.DurationDays(ph.StartDate, ph.EndDate))
		pct, _ := ph.EffectiveCompletion()
		totalDays += days
		weighted += days * pct
	}
	if totalDays == 0 {
		return 0, true
	}
	return weighted / totalDays, true
}

func anySubphaseHasCompletion(children []*Subphase) bool {
	for _, sp := range children {
		if sp.Completion != nil {
			return true
		}
		if anySubphaseHasCompletion(sp.Children) {
			return true
		}
	}
	return false
}

func weightedCompletion(children []*Subphase) float64 {
	var totalDays, weighted float64
	for _, sp := range children {
		days := float64(dateutil.DurationDays(sp.StartDate, sp.EndDate))
		pct, ok := sp.EffectiveCompletion()
		if !ok {
			pct = 0
		}
		totalDays += days
		weighted += days * pct
	}
	if totalDays == 0 {
		return 0
	}
	return weighted / totalDays
}

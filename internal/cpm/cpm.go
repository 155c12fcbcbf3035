// Package cpm computes the critical path of a project via a standard
// forward/backward pass over the dependency graph. Durations are simple
// calendar days; working-day exclusion is out of scope.
package cpm

import (
	"fmt"
	"sort"
	"time"

	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/depgraph"
	"github.com/mwhitford/planline/internal/domain"
)

// Analyze flattens the project's phases and subphases into one node list,
// runs the forward and backward passes, and flags every node with
// float <= 0 as critical. Edges referencing deleted predecessors are
// skipped rather than failing the analysis.
func Analyze(p *domain.Project) *Result {
	edges := depgraph.Extract(p)
	idx := depgraph.IndexEntities(p)

	result := &Result{
		Nodes:           make(map[string]*NodeSchedule, len(idx)),
		CriticalKeys:    make(map[string]bool),
		HasDependencies: len(edges) > 0,
	}
	if len(idx) == 0 {
		return result
	}

	// Day offsets are measured from the project's earliest date.
	origin := earliestStart(p, idx)
	projectEnd := 0

	for id, info := range idx {
		start, end := entityDates(info)
		duration := dateutil.DurationDays(start, end)
		es := dateutil.DayDiff(origin, start)
		node := &NodeSchedule{
			Key:         fmt.Sprintf("%s-%s", keyPrefix(info.Type), id),
			EntityType:  info.Type,
			ID:          id,
			Duration:    duration,
			EarlyStart:  es,
			EarlyFinish: es + duration - 1,
		}
		result.Nodes[id] = node
		if endOffset := dateutil.DayDiff(origin, end); endOffset > projectEnd {
			projectEnd = endOffset
		}
	}

	// Predecessor edges grouped by successor for the forward pass.
	incoming := make(map[string][]depgraph.Edge)
	for _, e := range edges {
		incoming[e.SuccessorID] = append(incoming[e.SuccessorID], e)
	}

	forwardPass(result.Nodes, incoming)
	backwardPass(result.Nodes, edges, projectEnd)

	for _, node := range result.Nodes {
		node.Float = node.LateStart - node.EarlyStart
		node.Critical = node.Float <= 0
		if node.Critical {
			result.CriticalKeys[node.Key] = true
		}
	}
	return result
}

// forwardPass raises each node's earlyStart to the latest requirement among
// its dependencies; a dependency can only push a node later, never earlier
// than its scheduled start. Nodes are processed ascending by current start.
func forwardPass(nodes map[string]*NodeSchedule, incoming map[string][]depgraph.Edge) {
	order := make([]*NodeSchedule, 0, len(nodes))
	for _, n := range nodes {
		order = append(order, n)
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].EarlyStart != order[j].EarlyStart {
			return order[i].EarlyStart < order[j].EarlyStart
		}
		return order[i].ID < order[j].ID
	})

	for _, node := range order {
		for _, e := range incoming[node.ID] {
			pred, ok := nodes[e.PredecessorID]
			if !ok {
				continue
			}
			var required int
			switch e.Type {
			case domain.StartToStart:
				required = pred.EarlyStart + e.LagDays
			case domain.FinishToFinish:
				required = pred.EarlyFinish + e.LagDays - node.Duration + 1
			case domain.StartToFinish:
				required = pred.EarlyStart + e.LagDays - node.Duration + 1
			default: // FS
				required = pred.EarlyFinish + 1 + e.LagDays
			}
			if required > node.EarlyStart {
				node.EarlyStart = required
				node.EarlyFinish = required + node.Duration - 1
			}
		}
	}
}

// backwardPass initializes every lateFinish to the project end offset, then
// walks nodes descending by earlyFinish, tightening each predecessor's
// lateFinish to the minimum consistent with its successors.
func backwardPass(nodes map[string]*NodeSchedule, edges []depgraph.Edge, projectEnd int) {
	for _, n := range nodes {
		n.LateFinish = projectEnd
		n.LateStart = projectEnd - n.Duration + 1
	}

	// Successor edges grouped by predecessor.
	outgoing := make(map[string][]depgraph.Edge)
	for _, e := range edges {
		outgoing[e.PredecessorID] = append(outgoing[e.PredecessorID], e)
	}

	order := make([]*NodeSchedule, 0, len(nodes))
	for _, n := range nodes {
		order = append(order, n)
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].EarlyFinish != order[j].EarlyFinish {
			return order[i].EarlyFinish > order[j].EarlyFinish
		}
		return order[i].ID < order[j].ID
	})

	for _, node := range order {
		for _, e := range outgoing[node.ID] {
			succ, ok := nodes[e.SuccessorID]
			if !ok {
				continue
			}
			var limit int
			switch e.Type {
			case domain.StartToStart:
				limit = succ.LateStart - e.LagDays + node.Duration - 1
			case domain.FinishToFinish:
				limit = succ.LateFinish - e.LagDays
			case domain.StartToFinish:
				limit = succ.LateFinish - e.LagDays + node.Duration - 1
			default: // FS
				limit = succ.LateStart - 1 - e.LagDays
			}
			if limit < node.LateFinish {
				node.LateFinish = limit
			}
		}
		node.LateStart = node.LateFinish - node.Duration + 1
	}
}

func keyPrefix(t domain.EntityType) string {
	if t == domain.EntityPhase {
		return "phase"
	}
	return "subphase"
}

func entityDates(info depgraph.EntityInfo) (time.Time, time.Time) {
	if info.Type == domain.EntityPhase {
		return info.Phase.StartDate, info.Phase.EndDate
	}
	return info.Sub.StartDate, info.Sub.EndDate
}

func earliestStart(p *domain.Project, idx map[string]depgraph.EntityInfo) time.Time {
	origin := time.Time{}
	for _, info := range idx {
		start, _ := entityDates(info)
		if origin.IsZero() || start.Before(origin) {
			origin = start
		}
	}
	if !p.StartDate.IsZero() && p.StartDate.Before(origin) {
		origin = p.StartDate
	}
	return origin
}

// Package depgraph extracts the typed dependency edges of a project tree,
// builds adjacency maps for traversal, and guards the acyclicity invariant
// with explicit reachability searches.
package depgraph

import (
	"sort"

	"github.com/mwhitford/planline/internal/domain"
)

// Edge is one typed dependency with routing metadata for the arrow layer.
type Edge struct {
	PredecessorID   string
	PredecessorType domain.EntityType
	SuccessorID     string
	SuccessorType   domain.EntityType
	Type            domain.DependencyType
	LagDays         int
	ProjectID       string
}

// Extract walks every phase and subphase and reads their stored dependency
// lists. Edges whose predecessor no longer exists in the tree are dropped
// silently; a deleted entity must not fail the whole computation.
func Extract(p *domain.Project) []Edge {
	idx := IndexEntities(p)

	var edges []Edge
	appendEdges := func(succID string, succType domain.EntityType, deps []domain.Dependency) {
		for _, d := range deps {
			pred, ok := idx[d.PredecessorID]
			if !ok {
				continue // orphaned reference
			}
			edges = append(edges, Edge{
				PredecessorID:   d.PredecessorID,
				PredecessorType: pred.Type,
				SuccessorID:     succID,
				SuccessorType:   succType,
				Type:            d.Type,
				LagDays:         d.LagDays,
				ProjectID:       p.ID,
			})
		}
	}

	for _, ph := range p.Phases {
		appendEdges(ph.ID, domain.EntityPhase, ph.Dependencies)
	}
	p.WalkSubphases(func(sp *domain.Subphase) bool {
		appendEdges(sp.ID, domain.EntitySubphase, sp.Dependencies)
		return true
	})
	return edges
}

// EntityInfo is the index entry for one phase or subphase.
type EntityInfo struct {
	Type  domain.EntityType
	Phase *domain.Phase
	Sub   *domain.Subphase
}

// IndexEntities maps every phase and subphase id in the tree. Ids are unique
// across the whole phase/subphase namespace within a project.
func IndexEntities(p *domain.Project) map[string]EntityInfo {
	idx := make(map[string]EntityInfo)
	for _, ph := range p.Phases {
		idx[ph.ID] = EntityInfo{Type: domain.EntityPhase, Phase: ph}
	}
	p.WalkSubphases(func(sp *domain.Subphase) bool {
		idx[sp.ID] = EntityInfo{Type: domain.EntitySubphase, Sub: sp}
		return true
	})
	return idx
}

// Successors builds the forward adjacency map: predecessor id -> successor
// ids, sorted for deterministic traversal.
func Successors(edges []Edge) map[string][]string {
	adj := make(map[string][]string)
	for _, e := range edges {
		adj[e.PredecessorID] = append(adj[e.PredecessorID], e.SuccessorID)
	}
	for k := range adj {
		sort.Strings(adj[k])
	}
	return adj
}

// WouldCycle reports whether adding predecessorID -> successorID to the
// existing edges would close a cycle. It searches from the proposed
// successor along existing predecessor -> successor chains; reaching the
// proposed predecessor means the new edge would complete a loop. A
// self-edge always cycles.
func WouldCycle(edges []Edge, predecessorID, successorID string) bool {
	if predecessorID == successorID {
		return true
	}
	adj := Successors(edges)

	seen := map[string]bool{successorID: true}
	stack := []string{successorID}
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range adj[node] {
			if next == predecessorID {
				return true
			}
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

// ValidateNewEdge checks a candidate dependency against the tree before any
// mutation: both endpoints must exist in the project and the edge must not
// close a cycle.
func ValidateNewEdge(p *domain.Project, predecessorID, successorID string) error {
	idx := IndexEntities(p)
	if _, ok := idx[predecessorID]; !ok {
		return domain.ErrEntityNotFound
	}
	if _, ok := idx[successorID]; !ok {
		return domain.ErrEntityNotFound
	}
	if WouldCycle(Extract(p), predecessorID, successorID) {
		return &domain.CircularDependencyError{
			PredecessorID: predecessorID,
			SuccessorID:   successorID,
		}
	}
	return nil
}

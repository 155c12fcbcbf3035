package depgraph

import (
	"errors"
	"testing"

	"github.com/mwhitford/planline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chainProject() *domain.Project {
	// ph1 -> ph2 (FS), ph2 -> sp1 (SS lag 2)
	return &domain.Project{
		ID: "p1",
		Phases: []*domain.Phase{
			{ID: "ph1", ProjectID: "p1"},
			{
				ID: "ph2", ProjectID: "p1",
				Dependencies: []domain.Dependency{
					{PredecessorID: "ph1", Type: domain.FinishToStart},
				},
				Subphases: []*domain.Subphase{
					{
						ID: "sp1", PhaseID: "ph2",
						Dependencies: []domain.Dependency{
							{PredecessorID: "ph2", Type: domain.StartToStart, LagDays: 2},
						},
					},
				},
			},
		},
	}
}

func TestExtract_TypedEdges(t *testing.T) {
	edges := Extract(chainProject())
	require.Len(t, edges, 2)

	assert.Equal(t, "ph1", edges[0].PredecessorID)
	assert.Equal(t, domain.EntityPhase, edges[0].PredecessorType)
	assert.Equal(t, "ph2", edges[0].SuccessorID)
	assert.Equal(t, domain.FinishToStart, edges[0].Type)
	assert.Equal(t, "p1", edges[0].ProjectID)

	assert.Equal(t, "ph2", edges[1].PredecessorID)
	assert.Equal(t, "sp1", edges[1].SuccessorID)
	assert.Equal(t, domain.EntitySubphase, edges[1].SuccessorType)
	assert.Equal(t, 2, edges[1].LagDays)
}

func TestExtract_SkipsOrphanedPredecessors(t *testing.T) {
	p := chainProject()
	p.Phases[1].Dependencies = append(p.Phases[1].Dependencies,
		domain.Dependency{PredecessorID: "deleted", Type: domain.FinishToStart})

	edges := Extract(p)
	for _, e := range edges {
		assert.NotEqual(t, "deleted", e.PredecessorID)
	}
	assert.Len(t, edges, 2)
}

func TestWouldCycle(t *testing.T) {
	edges := Extract(chainProject()) // ph1 -> ph2 -> sp1

	assert.True(t, WouldCycle(edges, "sp1", "ph1"), "closing the chain backwards cycles")
	assert.True(t, WouldCycle(edges, "ph2", "ph1"), "direct back-edge cycles")
	assert.True(t, WouldCycle(edges, "ph1", "ph1"), "self-edge cycles")
	assert.False(t, WouldCycle(edges, "ph1", "sp1"), "forward shortcut is acyclic")
	assert.False(t, WouldCycle(edges, "sp1", "ph3"), "edge to an unknown node is acyclic")
}

func TestValidateNewEdge_Cycle(t *testing.T) {
	p := chainProject()

	err := ValidateNewEdge(p, "sp1", "ph1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCircularDependency))

	var cycleErr *domain.CircularDependencyError
	require.True(t, errors.As(err, &cycleErr))
	assert.Equal(t, "sp1", cycleErr.PredecessorID)
	assert.Equal(t, "ph1", cycleErr.SuccessorID)
}

func TestValidateNewEdge_UnknownEntities(t *testing.T) {
	p := chainProject()
	assert.ErrorIs(t, ValidateNewEdge(p, "ghost", "ph1"), domain.ErrEntityNotFound)
	assert.ErrorIs(t, ValidateNewEdge(p, "ph1", "ghost"), domain.ErrEntityNotFound)
}

func TestValidateNewEdge_OK(t *testing.T) {
	assert.NoError(t, ValidateNewEdge(chainProject(), "ph1", "sp1"))
}

func TestSuccessors_Deterministic(t *testing.T) {
	edges := []Edge{
		{PredecessorID: "a", SuccessorID: "c"},
		{PredecessorID: "a", SuccessorID: "b"},
	}
	adj := Successors(edges)
	assert.Equal(t, []string{"b", "c"}, adj["a"])
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitford/planline/internal/contract"
	"github.com/mwhitford/planline/internal/domain"
	"github.com/mwhitford/planline/internal/testutil"
)

func newDependencyService(f *serviceFixture) DependencyService {
	return NewDependencyService(f.tree, f.phases, f.subphases, f.deps, f.batch)
}

func TestDependencyService_AddFinishToStartSnaps(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("Snap",
		testutil.WithProjectDates(testutil.Date(2024, time.January, 1), testutil.Date(2024, time.March, 31)))
	require.NoError(t, f.projects.Create(ctx, proj))
	pred := testutil.NewTestPhase(proj.ID, "Pour",
		testutil.WithPhaseDates(testutil.Date(2024, time.February, 1), testutil.Date(2024, time.February, 5)))
	require.NoError(t, f.phases.Create(ctx, pred))
	succ := testutil.NewTestPhase(proj.ID, "Cure",
		testutil.WithPhaseDates(testutil.Date(2024, time.January, 10), testutil.Date(2024, time.January, 12)))
	require.NoError(t, f.phases.Create(ctx, succ))

	svc := newDependencyService(f)
	resp, err := svc.Add(ctx, contract.AddDependencyRequest{
		ProjectID:     proj.ID,
		SuccessorID:   succ.ID,
		PredecessorID: pred.ID,
		Type:          domain.FinishToStart,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Failures)

	// Successor snapped to predecessor end + 1, duration preserved.
	moved, err := f.phases.GetByID(ctx, succ.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-02-06", moved.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2024-02-08", moved.EndDate.Format("2006-01-02"))

	// The edge is persisted on the successor.
	edges, err := f.deps.ListBySuccessor(ctx, succ.ID)
	require.NoError(t, err)
	require.Len(t, edges, 1)
	assert.Equal(t, pred.ID, edges[0].PredecessorID)
}

func TestDependencyService_AddFinishToFinishNeverSnaps(t *testing.T) {
	f := newServiceFixture(t)
	ctx := context.Background()

	proj := testutil.NewTestProject("NoSnap")
	require.NoError(t, f.projects.Create(ctx, proj))
	pred := testutil.NewTestPhase(proj.ID, "A")
	require.NoError(t, f.phases.Create(ctx, pred))
	succ := testutil.NewTestPhase(proj.ID, "B",
		testutil.WithPhaseDates(testutil.Date(2024, time.March, 1), testutil.Date(2024, time.March, 10)))
	require.NoError(t, f.phases.Create(ctx, succ))

	svc := newDependencyService(f)
	resp, err := svc.Add(ctx, contract.AddDependencyRequest{
		ProjectID:     proj.ID,
		SuccessorID:   succ.ID,
		PredecessorID: pred.ID,
		Type:          domain.FinishToFinish,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Updates)

	unchanged, err := f.phases.GetByID(ctx, succ.ID)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-01", unchanged.StartDate.Format("2006-01-02"))
}

func TestDependencyService_RejectsCycle(t *testing.T) {
	f := newServiceFixture(t)
	projectID, phaseID, _, _ := seedTree(t, f)
	ctx := context.Background()

	// seedTree already stores Sitework -> Fitout; the reverse closes a cycle.
	tree, err := f.tree.Load(ctx, projectID)
	require.NoError(t, err)
	fitoutID := tree.Phases[1].ID

	svc := newDependencyService(f)
	_, err = svc.Add(ctx, contract.AddDependencyRequest{
		ProjectID:     projectID,
		SuccessorID:   phaseID,
		PredecessorID: fitoutID,
		Type:          domain.FinishToStart,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCircularDependency))

	// Nothing was stored.
	edges, err := f.deps.ListBySuccessor(ctx, phaseID)
	require.NoError(t, err)
	assert.Empty(t, edges)
}

func TestDependencyService_RejectsCrossProject(t *testing.T) {
	f := newServiceFixture(t)
	projectID, phaseID, _, _ := seedTree(t, f)
	ctx := context.Background()

	other := testutil.NewTestProject("Other")
	require.NoError(t, f.projects.Create(ctx, other))
	foreign := testutil.NewTestPhase(other.ID, "Foreign")
	require.NoError(t, f.phases.Create(ctx, foreign))

	svc := newDependencyService(f)
	_, err := svc.Add(ctx, contract.AddDependencyRequest{
		ProjectID:     projectID,
		SuccessorID:   phaseID,
		PredecessorID: foreign.ID,
		Type:          domain.FinishToStart,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrCrossProjectDependency))

	var crossErr *domain.CrossProjectDependencyError
	require.True(t, errors.As(err, &crossErr))
	assert.Equal(t, other.ID, crossErr.PredecessorProjectID)
}

func TestDependencyService_UnknownPredecessor(t *testing.T) {
	f := newServiceFixture(t)
	projectID, phaseID, _, _ := seedTree(t, f)

	svc := newDependencyService(f)
	_, err := svc.Add(context.Background(), contract.AddDependencyRequest{
		ProjectID:     projectID,
		SuccessorID:   phaseID,
		PredecessorID: "ghost",
		Type:          domain.FinishToStart,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEntityNotFound))
}

func TestDependencyService_Remove(t *testing.T) {
	f := newServiceFixture(t)
	projectID, phaseID, _, _ := seedTree(t, f)
	ctx := context.Background()

	tree, err := f.tree.Load(ctx, projectID)
	require.NoError(t, err)
	fitoutID := tree.Phases[1].ID

	svc := newDependencyService(f)
	require.NoError(t, svc.Remove(ctx, contract.RemoveDependencyRequest{
		ProjectID:     projectID,
		SuccessorID:   fitoutID,
		PredecessorID: phaseID,
	}))

	edges, err := f.deps.ListBySuccessor(ctx, fitoutID)
	require.NoError(t, err)
	assert.Empty(t, edges)
}

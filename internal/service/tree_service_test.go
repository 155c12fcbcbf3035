package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitford/planline/internal/domain"
	"github.com/mwhitford/planline/internal/repository"
	"github.com/mwhitford/planline/internal/testutil"
)

type serviceFixture struct {
	projects  *repository.SQLiteProjectRepo
	phases    *repository.SQLitePhaseRepo
	subphases *repository.SQLiteSubphaseRepo
	deps      *repository.SQLiteDependencyRepo
	staff     *repository.SQLiteStaffAssignmentRepo
	equipment *repository.SQLiteEquipmentAssignmentRepo
	tree      TreeService
	batch     *repository.BatchApplier
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	return newFixtureOver(testutil.NewTestDB(t))
}

func newFixtureOver(database *sql.DB) *serviceFixture {
	f := &serviceFixture{
		projects:  repository.NewSQLiteProjectRepo(database),
		phases:    repository.NewSQLitePhaseRepo(database),
		subphases: repository.NewSQLiteSubphaseRepo(database),
		deps:      repository.NewSQLiteDependencyRepo(database),
		staff:     repository.NewSQLiteStaffAssignmentRepo(database),
		equipment: repository.NewSQLiteEquipmentAssignmentRepo(database),
	}
	f.tree = NewTreeService(f.projects, f.phases, f.subphases, f.deps, f.staff, f.equipment)
	f.batch = repository.NewBatchApplier(f.projects, f.phases, f.subphases, f.staff, f.equipment)
	return f
}

// seedTree inserts a project with one phase, a nested subphase pair, a
// dependency edge, and assignments at two levels.
func seedTree(t *testing.T, f *serviceFixture) (projectID, phaseID, topSubID, childSubID string) {
	t.Helper()
	ctx := context.Background()

	proj := testutil.NewTestProject("Terminal",
		testutil.WithProjectDates(testutil.Date(2024, time.January, 1), testutil.Date(2024, time.June, 30)))
	require.NoError(t, f.projects.Create(ctx, proj))

	phA := testutil.NewTestPhase(proj.ID, "Sitework",
		testutil.WithPhaseDates(testutil.Date(2024, time.January, 1), testutil.Date(2024, time.February, 29)),
		testutil.WithPhaseOrder(0))
	require.NoError(t, f.phases.Create(ctx, phA))
	phB := testutil.NewTestPhase(proj.ID, "Fitout",
		testutil.WithPhaseDates(testutil.Date(2024, time.March, 1), testutil.Date(2024, time.April, 30)),
		testutil.WithPhaseOrder(1))
	require.NoError(t, f.phases.Create(ctx, phB))

	top := testutil.NewTestSubphase(phA.ID, "Grading",
		testutil.WithSubphaseDates(testutil.Date(2024, time.January, 1), testutil.Date(2024, time.January, 31)))
	require.NoError(t, f.subphases.Create(ctx, top))
	child := testutil.NewTestSubphase(phA.ID, "Survey",
		testutil.WithParentSubphase(top.ID),
		testutil.WithSubphaseDates(testutil.Date(2024, time.January, 5), testutil.Date(2024, time.January, 10)))
	require.NoError(t, f.subphases.Create(ctx, child))

	require.NoError(t, f.deps.Create(ctx, repository.DependencyEdge{
		SuccessorID: phB.ID, PredecessorID: phA.ID, Type: domain.FinishToStart, LagDays: 0,
	}))

	require.NoError(t, f.staff.Create(ctx, testutil.NewTestStaff(proj.ID, "Morgan")))
	require.NoError(t, f.staff.Create(ctx,
		testutil.NewTestStaff(proj.ID, "Riley", testutil.WithStaffSubphase(top.ID))))
	require.NoError(t, f.equipment.Create(ctx,
		testutil.NewTestEquipment(proj.ID, "Grader", testutil.WithEquipmentPhase(phA.ID))))

	return proj.ID, phA.ID, top.ID, child.ID
}

func TestTreeService_LoadAssemblesNestedTree(t *testing.T) {
	f := newServiceFixture(t)
	projectID, phaseID, topSubID, childSubID := seedTree(t, f)

	tree, err := f.tree.Load(context.Background(), projectID)
	require.NoError(t, err)

	require.Len(t, tree.Phases, 2)
	assert.Equal(t, "Sitework", tree.Phases[0].Name)
	assert.Equal(t, "Fitout", tree.Phases[1].Name)

	sitework := tree.Phases[0]
	assert.Equal(t, phaseID, sitework.ID)
	require.Len(t, sitework.Subphases, 1)
	top := sitework.Subphases[0]
	assert.Equal(t, topSubID, top.ID)
	require.Len(t, top.Children, 1)
	assert.Equal(t, childSubID, top.Children[0].ID)

	// Dependency edge hangs on its successor.
	fitout := tree.Phases[1]
	require.Len(t, fitout.Dependencies, 1)
	assert.Equal(t, phaseID, fitout.Dependencies[0].PredecessorID)
	assert.Equal(t, domain.FinishToStart, fitout.Dependencies[0].Type)

	// Assignments land on their owners.
	require.Len(t, tree.Staff, 1)
	assert.Equal(t, "Morgan", tree.Staff[0].PersonName)
	require.Len(t, top.Staff, 1)
	assert.Equal(t, "Riley", top.Staff[0].PersonName)
	require.Len(t, sitework.Equipment, 1)
	assert.Equal(t, "Grader", sitework.Equipment[0].EquipmentName)
}

func TestTreeService_LoadUnknownProject(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.tree.Load(context.Background(), "nope")
	assert.Error(t, err)
}

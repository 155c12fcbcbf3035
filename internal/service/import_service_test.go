package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitford/planline/internal/importer"
	"github.com/mwhitford/planline/internal/testutil"
)

func importFixtureSchema() *importer.ImportSchema {
	return &importer.ImportSchema{
		Project: importer.ProjectImport{
			Name:      "Depot Refresh",
			StartDate: "2024-01-01",
			EndDate:   "2024-08-31",
		},
		Phases: []importer.PhaseImport{
			{Ref: "demo", Name: "Demolition", StartDate: "2024-01-01", EndDate: "2024-02-29", Order: 0},
			{Ref: "rebuild", Name: "Rebuild", StartDate: "2024-03-01", EndDate: "2024-08-31", Order: 1},
		},
		Subphases: []importer.SubphaseImport{
			{Ref: "strip", PhaseRef: "demo", Name: "Strip Out", StartDate: "2024-01-01", EndDate: "2024-01-31"},
		},
		Dependencies: []importer.DependencyImport{
			{PredecessorRef: "demo", SuccessorRef: "rebuild", Type: "FS"},
		},
		Staff: []importer.StaffImport{
			{PersonName: "Jesse", StartDate: "2024-01-01", EndDate: "2024-08-31"},
		},
	}
}

func TestImportService_ImportsWholeProject(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewImportService(testutil.NewTestUoW(database))
	ctx := context.Background()

	result, err := svc.ImportProjectFromSchema(ctx, importFixtureSchema())
	require.NoError(t, err)
	assert.Equal(t, 2, result.PhaseCount)
	assert.Equal(t, 1, result.SubphaseCount)
	assert.Equal(t, 1, result.DependencyCount)
	assert.Equal(t, 1, result.AssignmentCount)

	f := newFixtureOver(database)
	tree, err := f.tree.Load(ctx, result.Project.ID)
	require.NoError(t, err)
	require.Len(t, tree.Phases, 2)
	assert.Equal(t, "Demolition", tree.Phases[0].Name)
	require.Len(t, tree.Phases[1].Dependencies, 1)
	require.Len(t, tree.Phases[0].Subphases, 1)
	require.Len(t, tree.Staff, 1)
}

func TestImportService_ValidationFailureImportsNothing(t *testing.T) {
	database := testutil.NewTestDB(t)
	svc := NewImportService(testutil.NewTestUoW(database))

	schema := importFixtureSchema()
	schema.Phases[1].EndDate = "2024-02-01" // before start
	schema.Phases[1].StartDate = "2024-03-01"

	_, err := svc.ImportProjectFromSchema(context.Background(), schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed")

	projects, err := newFixtureOver(database).projects.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestImportService_MidwayFailureRollsBack(t *testing.T) {
	database := testutil.NewTestDB(t)
	injected := errors.New("disk full")
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 3, Err: injected}
	svc := NewImportService(uow)

	_, err := svc.ImportProjectFromSchema(context.Background(), importFixtureSchema())
	require.Error(t, err)
	assert.True(t, errors.Is(err, injected))

	// The project inserted before the failure was rolled back.
	projects, err := newFixtureOver(database).projects.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, projects)
}

package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitford/planline/internal/domain"
)

func TestConvert_GeneratesIDsAndResolvesRefs(t *testing.T) {
	schema := validSchema()
	require.Empty(t, ValidateImportSchema(schema))

	converted, err := Convert(schema)
	require.NoError(t, err)

	assert.NotEmpty(t, converted.Project.ID)
	assert.Equal(t, "Bridge Retrofit", converted.Project.Name)
	require.Len(t, converted.Phases, 2)
	require.Len(t, converted.Subphases, 2)

	plan := converted.Phases[0]
	build := converted.Phases[1]
	assert.Equal(t, converted.Project.ID, plan.ProjectID)

	design := converted.Subphases[0]
	review := converted.Subphases[1]
	assert.Equal(t, plan.ID, design.PhaseID)
	assert.Nil(t, design.ParentSubphaseID)
	require.NotNil(t, review.ParentSubphaseID)
	assert.Equal(t, design.ID, *review.ParentSubphaseID)

	require.Len(t, converted.Edges, 1)
	assert.Equal(t, plan.ID, converted.Edges[0].PredecessorID)
	assert.Equal(t, build.ID, converted.Edges[0].SuccessorID)
	assert.Equal(t, domain.FinishToStart, converted.Edges[0].Type)
	assert.Equal(t, 1, converted.Edges[0].LagDays)
}

func TestConvert_DatesAreLocalMidnight(t *testing.T) {
	converted, err := Convert(validSchema())
	require.NoError(t, err)

	start := converted.Phases[0].StartDate
	assert.Equal(t, "2024-01-01", start.Format("2006-01-02"))
	assert.Equal(t, 0, start.Hour())
}

func TestConvert_AssignmentOwnership(t *testing.T) {
	schema := validSchema()
	planRef := "plan"
	designRef := "design"
	schema.Staff = append(schema.Staff,
		StaffImport{OwnerRef: &planRef, PersonName: "Pat", StartDate: "2024-01-01", EndDate: "2024-02-01"},
		StaffImport{OwnerRef: &designRef, PersonName: "Quinn", StartDate: "2024-01-01", EndDate: "2024-01-31"},
	)
	require.Empty(t, ValidateImportSchema(schema))

	converted, err := Convert(schema)
	require.NoError(t, err)
	require.Len(t, converted.Staff, 3)

	// No owner_ref books onto the project.
	sam := converted.Staff[0]
	require.NotNil(t, sam.ProjectID)
	assert.Equal(t, converted.Project.ID, *sam.ProjectID)
	assert.Nil(t, sam.PhaseID)

	pat := converted.Staff[1]
	require.NotNil(t, pat.PhaseID)
	assert.Equal(t, converted.Phases[0].ID, *pat.PhaseID)
	assert.Nil(t, pat.ProjectID)

	quinn := converted.Staff[2]
	require.NotNil(t, quinn.SubphaseID)
	assert.Equal(t, converted.Subphases[0].ID, *quinn.SubphaseID)
}

func TestConvert_SubphasesOrderedParentFirst(t *testing.T) {
	converted, err := Convert(validSchema())
	require.NoError(t, err)

	// The parent must precede its child so inserts satisfy the
	// self-referencing foreign key.
	seen := map[string]bool{}
	for _, sp := range converted.Subphases {
		if sp.ParentSubphaseID != nil {
			assert.True(t, seen[*sp.ParentSubphaseID], "parent inserted before child")
		}
		seen[sp.ID] = true
	}
}

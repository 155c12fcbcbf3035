package cascade

import (
	"errors"
	"testing"
	"time"

	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := dateutil.ParseISO(s)
	require.NoError(t, err)
	return d
}

func iso(d time.Time) string { return dateutil.FormatISO(d) }

func strPtr(s string) *string { return &s }

// buildProject returns a project with one phase spanning 2024-01-01..2024-01-10
// holding a nested subphase tree and assignments at several levels.
func buildProject(t *testing.T) *domain.Project {
	t.Helper()
	return &domain.Project{
		ID:        "p1",
		Name:      "Build",
		StartDate: day(t, "2024-01-01"),
		EndDate:   day(t, "2024-01-10"),
		Phases: []*domain.Phase{
			{
				ID: "ph1", ProjectID: "p1", Name: "Groundwork",
				StartDate: day(t, "2024-01-01"), EndDate: day(t, "2024-01-10"),
				Subphases: []*domain.Subphase{
					{
						ID: "sp1", PhaseID: "ph1", Name: "Excavate",
						StartDate: day(t, "2024-01-01"), EndDate: day(t, "2024-01-05"),
						Children: []*domain.Subphase{
							{
								ID: "sp1a", PhaseID: "ph1", ParentSubphaseID: strPtr("sp1"),
								Name:      "Survey",
								StartDate: day(t, "2024-01-01"), EndDate: day(t, "2024-01-02"),
							},
						},
					},
					{
						ID: "sp2", PhaseID: "ph1", Name: "Pour",
						StartDate: day(t, "2024-01-06"), EndDate: day(t, "2024-01-10"),
					},
				},
				Staff: []*domain.StaffAssignment{
					{ID: "st1", PhaseID: strPtr("ph1"), PersonName: "Ana",
						StartDate: day(t, "2024-01-02"), EndDate: day(t, "2024-01-08")},
				},
				Equipment: []*domain.EquipmentAssignment{
					{ID: "eq1", PhaseID: strPtr("ph1"), EquipmentName: "Crane",
						StartDate: day(t, "2024-01-03"), EndDate: day(t, "2024-01-09")},
				},
			},
		},
	}
}

func updatesByKey(updates []Update) map[string]Update {
	m := make(map[string]Update, len(updates))
	for _, u := range updates {
		m[string(u.EntityType)+"/"+u.ID] = u
	}
	return m
}

func TestMove_PhaseShiftsWholeSubtree(t *testing.T) {
	tree := buildProject(t)

	newTree, updates, err := Move(tree, domain.EntityPhase, "ph1",
		day(t, "2024-01-06"), day(t, "2024-01-15"))
	require.NoError(t, err)

	ph := newTree.FindPhase("ph1")
	assert.Equal(t, "2024-01-06", iso(ph.StartDate))
	assert.Equal(t, "2024-01-15", iso(ph.EndDate))

	sp1, _ := newTree.FindSubphase("sp1")
	assert.Equal(t, "2024-01-06", iso(sp1.StartDate))
	assert.Equal(t, "2024-01-10", iso(sp1.EndDate))

	sp1a, _ := newTree.FindSubphase("sp1a")
	assert.Equal(t, "2024-01-06", iso(sp1a.StartDate))
	assert.Equal(t, "2024-01-07", iso(sp1a.EndDate))

	// Assignments shift by the same offset.
	assert.Equal(t, "2024-01-07", iso(ph.Staff[0].StartDate))
	assert.Equal(t, "2024-01-13", iso(ph.Staff[0].EndDate))
	assert.Equal(t, "2024-01-08", iso(ph.Equipment[0].StartDate))

	// Project bounds re-derive to include the new phase range.
	assert.Equal(t, "2024-01-06", iso(newTree.StartDate))
	assert.Equal(t, "2024-01-15", iso(newTree.EndDate))

	byKey := updatesByKey(updates)
	assert.Contains(t, byKey, "phase/ph1")
	assert.Contains(t, byKey, "subphase/sp1")
	assert.Contains(t, byKey, "subphase/sp1a")
	assert.Contains(t, byKey, "subphase/sp2")
	assert.Contains(t, byKey, "staffAssignment/st1")
	assert.Contains(t, byKey, "equipmentAssignment/eq1")
	assert.Contains(t, byKey, "project/p1")
}

func TestMove_DoesNotMutateInput(t *testing.T) {
	tree := buildProject(t)

	_, _, err := Move(tree, domain.EntityPhase, "ph1",
		day(t, "2024-01-06"), day(t, "2024-01-15"))
	require.NoError(t, err)

	assert.Equal(t, "2024-01-01", iso(tree.Phases[0].StartDate), "input tree untouched")
	sp1a, _ := tree.FindSubphase("sp1a")
	assert.Equal(t, "2024-01-01", iso(sp1a.StartDate))
}

func TestMove_SubphaseRefitsAncestorsUpward(t *testing.T) {
	tree := buildProject(t)

	// Drag sp1a past its parent's end; sp1 must expand, phase and project follow.
	newTree, updates, err := Move(tree, domain.EntitySubphase, "sp1a",
		day(t, "2024-01-11"), day(t, "2024-01-12"))
	require.NoError(t, err)

	sp1, _ := newTree.FindSubphase("sp1")
	assert.Equal(t, "2024-01-11", iso(sp1.StartDate), "parent contracts to its only child")
	assert.Equal(t, "2024-01-12", iso(sp1.EndDate))

	ph := newTree.FindPhase("ph1")
	assert.Equal(t, "2024-01-06", iso(ph.StartDate), "phase start follows sp2")
	assert.Equal(t, "2024-01-12", iso(ph.EndDate), "phase end expands past sp1")

	assert.Equal(t, "2024-01-06", iso(newTree.StartDate))
	assert.Equal(t, "2024-01-12", iso(newTree.EndDate))

	byKey := updatesByKey(updates)
	assert.Contains(t, byKey, "subphase/sp1a")
	assert.Contains(t, byKey, "subphase/sp1")
	assert.Contains(t, byKey, "phase/ph1")
	assert.Contains(t, byKey, "project/p1")
}

func TestMove_ContainmentInvariantHolds(t *testing.T) {
	tree := buildProject(t)

	newTree, _, err := Move(tree, domain.EntitySubphase, "sp2",
		day(t, "2024-01-20"), day(t, "2024-01-24"))
	require.NoError(t, err)

	ph := newTree.FindPhase("ph1")
	start, end, ok := subphaseBounds(ph.Subphases)
	require.True(t, ok)
	assert.True(t, ph.StartDate.Equal(start), "phase.start = min(children.start)")
	assert.True(t, ph.EndDate.Equal(end), "phase.end = max(children.end)")
	assert.True(t, newTree.StartDate.Equal(ph.StartDate))
	assert.True(t, newTree.EndDate.Equal(ph.EndDate))
}

func TestMove_ProjectShiftsEverything(t *testing.T) {
	tree := buildProject(t)

	newTree, updates, err := Move(tree, domain.EntityProject, "p1",
		day(t, "2024-01-06"), day(t, "2024-01-15"))
	require.NoError(t, err)

	assert.Equal(t, "2024-01-06", iso(newTree.StartDate))
	assert.Equal(t, "2024-01-15", iso(newTree.EndDate))

	sp2, _ := newTree.FindSubphase("sp2")
	assert.Equal(t, "2024-01-11", iso(sp2.StartDate), "every descendant shifts by +5")

	byKey := updatesByKey(updates)
	assert.Contains(t, byKey, "phase/ph1")
	assert.Contains(t, byKey, "staffAssignment/st1")
}

func TestMove_ResizeDoesNotShiftChildren(t *testing.T) {
	tree := buildProject(t)

	// Extending the phase end changes duration: children stay put.
	newTree, _, err := Move(tree, domain.EntityPhase, "ph1",
		day(t, "2024-01-01"), day(t, "2024-01-20"))
	require.NoError(t, err)

	sp1, _ := newTree.FindSubphase("sp1")
	assert.Equal(t, "2024-01-01", iso(sp1.StartDate))
	assert.Equal(t, "2024-01-20", iso(newTree.EndDate))
}

func TestMove_InvalidRangeRejectedAtomically(t *testing.T) {
	tree := buildProject(t)

	_, _, err := Move(tree, domain.EntityPhase, "ph1",
		day(t, "2024-01-15"), day(t, "2024-01-06"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidDateRange))

	var rangeErr *domain.InvalidDateRangeError
	require.True(t, errors.As(err, &rangeErr))
	assert.Equal(t, "2024-01-15", rangeErr.Start)

	assert.Equal(t, "2024-01-01", iso(tree.Phases[0].StartDate), "prior state untouched")
}

func TestMove_UnknownEntity(t *testing.T) {
	tree := buildProject(t)
	_, _, err := Move(tree, domain.EntityPhase, "ghost",
		day(t, "2024-01-01"), day(t, "2024-01-02"))
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
}

func TestMove_BatchDeduplicatesLastWriteWins(t *testing.T) {
	b := newBatch()
	b.add(Update{EntityType: domain.EntityPhase, ID: "ph1", NewStart: time.Time{}})
	first := time.Date(2024, 1, 6, 0, 0, 0, 0, time.Local)
	b.add(Update{EntityType: domain.EntityPhase, ID: "ph1", NewStart: first})

	updates := b.updates()
	require.Len(t, updates, 1)
	assert.True(t, updates[0].NewStart.Equal(first))
}

func TestMove_DoesNotRealignDependents(t *testing.T) {
	// B depends on A (FS), already snapped at creation time. A later move
	// of A must leave B where it is: edges snap only when created.
	tree := &domain.Project{
		ID: "p1", Name: "Yard",
		StartDate: day(t, "2024-01-01"), EndDate: day(t, "2024-02-20"),
		Phases: []*domain.Phase{
			{
				ID: "a", ProjectID: "p1", Name: "Demolition",
				StartDate: day(t, "2024-01-01"), EndDate: day(t, "2024-01-10"),
			},
			{
				ID: "b", ProjectID: "p1", Name: "Rebuild",
				StartDate: day(t, "2024-01-11"), EndDate: day(t, "2024-01-20"),
				Dependencies: []domain.Dependency{
					{PredecessorID: "a", Type: domain.FinishToStart},
				},
			},
		},
	}

	newTree, updates, err := Move(tree, domain.EntityPhase, "a",
		day(t, "2024-01-05"), day(t, "2024-01-14"))
	require.NoError(t, err)

	b := newTree.FindPhase("b")
	assert.Equal(t, "2024-01-11", iso(b.StartDate))
	assert.Equal(t, "2024-01-20", iso(b.EndDate))
	assert.NotContains(t, updatesByKey(updates), "phase/b")
}

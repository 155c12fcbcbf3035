package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func day(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02", s, time.Local)
	if err != nil {
		panic(err)
	}
	return t
}

func pct(v float64) *float64 { return &v }

func TestEffectiveCompletion_LeafUsesStoredValue(t *testing.T) {
	ph := &Phase{
		StartDate:  day("2024-01-01"),
		EndDate:    day("2024-01-10"),
		Completion: pct(40),
	}

	got, ok := ph.EffectiveCompletion()
	assert.True(t, ok)
	assert.Equal(t, 40.0, got)
}

func TestEffectiveCompletion_NoDataAnywhere(t *testing.T) {
	ph := &Phase{
		StartDate: day("2024-01-01"),
		EndDate:   day("2024-01-10"),
		Subphases: []*Subphase{
			{StartDate: day("2024-01-01"), EndDate: day("2024-01-05")},
		},
	}

	_, ok := ph.EffectiveCompletion()
	assert.False(t, ok)
}

func TestEffectiveCompletion_ChildrenOverrideStoredValue(t *testing.T) {
	// 5-day child at 100%, 5-day child at 0% (unset) => 50%.
	ph := &Phase{
		StartDate:  day("2024-01-01"),
		EndDate:    day("2024-01-10"),
		Completion: pct(10), // ignored once children report
		Subphases: []*Subphase{
			{StartDate: day("2024-01-01"), EndDate: day("2024-01-05"), Completion: pct(100)},
			{StartDate: day("2024-01-06"), EndDate: day("2024-01-10")},
		},
	}

	got, ok := ph.EffectiveCompletion()
	assert.True(t, ok)
	assert.InDelta(t, 50.0, got, 0.001)
}

func TestEffectiveCompletion_WeightsByDuration(t *testing.T) {
	// 9-day child at 100%, 1-day child at 0% => 90%.
	ph := &Phase{
		Subphases: []*Subphase{
			{StartDate: day("2024-01-01"), EndDate: day("2024-01-09"), Completion: pct(100)},
			{StartDate: day("2024-01-10"), EndDate: day("2024-01-10"), Completion: pct(0)},
		},
	}

	got, ok := ph.EffectiveCompletion()
	assert.True(t, ok)
	assert.InDelta(t, 90.0, got, 0.001)
}

func TestEffectiveCompletion_NestedRollup(t *testing.T) {
	// Deep value surfaces through an intermediate subphase without its own.
	ph := &Phase{
		Subphases: []*Subphase{
			{
				StartDate: day("2024-01-01"), EndDate: day("2024-01-04"),
				Children: []*Subphase{
					{StartDate: day("2024-01-01"), EndDate: day("2024-01-04"), Completion: pct(75)},
				},
			},
		},
	}

	got, ok := ph.EffectiveCompletion()
	assert.True(t, ok)
	assert.InDelta(t, 75.0, got, 0.001)
}

func TestEffectiveCompletion_ProjectAveragesPhases(t *testing.T) {
	p := &Project{
		Phases: []*Phase{
			{StartDate: day("2024-01-01"), EndDate: day("2024-01-10"), Completion: pct(100)},
			{StartDate: day("2024-01-11"), EndDate: day("2024-01-20"), Completion: pct(0)},
		},
	}

	got, ok := p.EffectiveCompletion()
	assert.True(t, ok)
	assert.InDelta(t, 50.0, got, 0.001)
}

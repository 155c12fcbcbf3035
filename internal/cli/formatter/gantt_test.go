package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhitford/planline/internal/domain"
	"github.com/mwhitford/planline/internal/timeline"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// weekCells builds a small daily grid for tests.
func weekCells(start time.Time, days int) []timeline.Cell {
	cells := make([]timeline.Cell, days)
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		cells[i] = timeline.Cell{
			Start: d, End: d,
			Label:     d.Format("02"),
			IsWeekend: d.Weekday() == time.Saturday || d.Weekday() == time.Sunday,
			Month:     d.Month(),
			Year:      d.Year(),
		}
	}
	return cells
}

func TestRenderGantt_BarAlignsWithDates(t *testing.T) {
	cells := weekCells(date(2024, time.June, 3), 7)
	data := GanttData{
		Zoom:      domain.ZoomWeek,
		Cells:     cells,
		Headers:   []timeline.HeaderSpan{{Label: "June", Span: 7}},
		CellWidth: 40,
		Rows: []GanttRow{
			{Label: "Paving", Start: date(2024, time.June, 4), End: date(2024, time.June, 6)},
		},
	}

	out := RenderGantt(data)
	lines := strings.Split(out, "\n")
	require.GreaterOrEqual(t, len(lines), 3)

	assert.Contains(t, lines[0], "June")
	assert.Contains(t, out, "Paving")
	assert.Contains(t, out, "█")

	// Three days at four columns per cell, offset one cell from the left.
	barLine := lines[2]
	assert.Equal(t, strings.Index(stripANSI(barLine), "█"), ganttLabelWidth(data.Rows)+charsPerCell)
	assert.Equal(t, 3*charsPerCell, strings.Count(barLine, "█"))
}

func TestRenderGantt_MilestoneRendersDiamond(t *testing.T) {
	cells := weekCells(date(2024, time.June, 3), 7)
	data := GanttData{
		Zoom:      domain.ZoomWeek,
		Cells:     cells,
		CellWidth: 40,
		Rows: []GanttRow{
			{Label: "Handover", Start: date(2024, time.June, 5), End: date(2024, time.June, 5), IsMilestone: true},
		},
	}

	out := RenderGantt(data)
	assert.Contains(t, out, "◆")
	assert.NotContains(t, out, "█")
}

func TestRenderGantt_OutOfViewRange(t *testing.T) {
	cells := weekCells(date(2024, time.June, 3), 7)
	data := GanttData{
		Zoom:      domain.ZoomWeek,
		Cells:     cells,
		CellWidth: 40,
		Rows: []GanttRow{
			{Label: "Old Work", Start: date(2023, time.January, 1), End: date(2023, time.January, 31)},
		},
	}

	out := RenderGantt(data)
	assert.Contains(t, out, "(out of view)")
}

func TestRenderGantt_EmptyGrid(t *testing.T) {
	out := RenderGantt(GanttData{})
	assert.Contains(t, out, "empty timeline")
}

func TestRenderGantt_CompletionBadge(t *testing.T) {
	cells := weekCells(date(2024, time.June, 3), 7)
	pct := 40.0
	data := GanttData{
		Zoom:      domain.ZoomWeek,
		Cells:     cells,
		CellWidth: 40,
		Rows: []GanttRow{
			{Label: "Paving", Start: date(2024, time.June, 3), End: date(2024, time.June, 9), Completion: &pct},
		},
	}

	out := RenderGantt(data)
	assert.Contains(t, out, "40%")
}

// stripANSI removes escape sequences so column positions can be asserted.
func stripANSI(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case inEscape:
			if r == 'm' {
				inEscape = false
			}
		case r == '\x1b':
			inEscape = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

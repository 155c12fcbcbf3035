package formatter

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mwhitford/planline/internal/domain"
	"github.com/mwhitford/planline/internal/timeline"
)

// charsPerCell is the terminal width of one grid cell. Pixel geometry from
// the mapper is scaled down by cellWidth/charsPerCell before rendering.
const charsPerCell = 4

// GanttRow is one bar row in the rendered chart.
type GanttRow struct {
	Label       string
	Indent      int
	Start       time.Time
	End         time.Time
	IsMilestone bool
	Critical    bool
	Completion  *float64
}

// GanttData carries a built timeline grid plus the bar rows to draw on it.
type GanttData struct {
	Zoom        domain.ZoomLevel
	Cells       []timeline.Cell
	Headers     []timeline.HeaderSpan
	CellWidth   int
	MinBarWidth float64
	Rows        []GanttRow
}

// RenderGantt renders a text Gantt chart: a coarse header row, a cell label
// row, and one bar row per entity. Bars are positioned through the same
// date-to-pixel mapping the grid geometry uses, scaled to terminal columns.
func RenderGantt(d GanttData) string {
	if len(d.Cells) == 0 {
		return Dim("  (empty timeline)")
	}

	labelWidth := ganttLabelWidth(d.Rows)
	gridWidth := len(d.Cells) * charsPerCell

	var b strings.Builder
	b.WriteString(renderHeaderRow(d.Headers, labelWidth))
	b.WriteString("\n")
	b.WriteString(renderCellRow(d.Cells, labelWidth))
	b.WriteString("\n")

	for _, row := range d.Rows {
		b.WriteString(renderBarRow(row, d, labelWidth, gridWidth))
		b.WriteString("\n")
	}

	return b.String()
}

func ganttLabelWidth(rows []GanttRow) int {
	w := 12
	for _, r := range rows {
		if lw := lipgloss.Width(r.Label) + r.Indent*2; lw > w {
			w = lw
		}
	}
	return w + 2
}

func renderHeaderRow(headers []timeline.HeaderSpan, labelWidth int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelWidth))
	for _, h := range headers {
		cellSpan := h.Span * charsPerCell
		label := truncate(h.Label, cellSpan)
		text := centerPad(label, cellSpan)
		if h.IsCurrent {
			b.WriteString(StyleHeader.Render(text))
		} else {
			b.WriteString(StyleFg.Render(text))
		}
	}
	return b.String()
}

func renderCellRow(cells []timeline.Cell, labelWidth int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", labelWidth))
	for _, c := range cells {
		text := centerPad(truncate(c.Label, charsPerCell), charsPerCell)
		switch {
		case c.IsToday:
			b.WriteString(StyleYellow.Bold(true).Render(text))
		case c.IsHoliday, c.IsCompanyEvent:
			b.WriteString(StylePurple.Render(text))
		case c.IsWeekend:
			b.WriteString(StyleDim.Render(text))
		default:
			b.WriteString(StyleFg.Render(text))
		}
	}
	return b.String()
}

func renderBarRow(row GanttRow, d GanttData, labelWidth, gridWidth int) string {
	var b strings.Builder

	label := strings.Repeat("  ", row.Indent) + row.Label
	label = truncate(label, labelWidth-1)
	pad := labelWidth - lipgloss.Width(label)
	if row.Critical {
		b.WriteString(StyleCritical.Render(label))
	} else {
		b.WriteString(StyleFg.Render(label))
	}
	b.WriteString(strings.Repeat(" ", pad))

	span := timeline.MapRangeToPixels(row.Start, row.End, d.Cells, d.CellWidth, d.MinBarWidth, d.Zoom)
	if span == nil {
		b.WriteString(Dim("(out of view)"))
		return b.String()
	}

	scale := float64(charsPerCell) / float64(d.CellWidth)
	startCol := int(math.Round(span.Left * scale))
	width := int(math.Round(span.Width * scale))
	if width < 1 {
		width = 1
	}
	if startCol >= gridWidth {
		startCol = gridWidth - 1
	}
	if startCol+width > gridWidth {
		width = gridWidth - startCol
	}

	b.WriteString(strings.Repeat(" ", startCol))

	style := StyleBlue
	if row.Critical {
		style = StyleRed
	}
	if row.IsMilestone {
		b.WriteString(style.Render("◆"))
	} else {
		b.WriteString(style.Render(strings.Repeat("█", width)))
	}

	if row.Completion != nil {
		b.WriteString(Dim(fmt.Sprintf(" %.0f%%", *row.Completion)))
	}
	return b.String()
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max == 1 {
		return string(r[:1])
	}
	return string(r[:max-1]) + "…"
}

func centerPad(s string, width int) string {
	gap := width - lipgloss.Width(s)
	if gap <= 0 {
		return s
	}
	left := gap / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", gap-left)
}

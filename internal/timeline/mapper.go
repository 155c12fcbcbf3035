package timeline

import (
	"math"
	"time"

	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/domain"
)

// PixelSpan is a bar's horizontal geometry within the grid.
type PixelSpan struct {
	Left  float64
	Width float64
}

const msPerDay = 86400000.0

// dayMillis maps a local-midnight date onto a zoneless millisecond axis so
// the linear proportion below is immune to DST-length days.
func dayMillis(t time.Time) float64 {
	epoch := time.Date(1970, 1, 1, 0, 0, 0, 0, t.Location())
	return float64(dateutil.DayDiff(epoch, t)) * msPerDay
}

// visibleSpan returns the grid's time extent in milliseconds. The end bound
// is exclusive: the end of the last cell's final day.
func visibleSpan(cells []Cell) (startMs, endMs float64) {
	first := cells[0]
	last := cells[len(cells)-1]
	return dayMillis(first.Start), dayMillis(dateutil.AddDays(last.End, 1))
}

// MapRangeToPixels converts a date range to a pixel span within the grid.
// Returns nil when the range has no overlap with the visible span. The range
// is otherwise clamped and positioned as a linear proportion of elapsed
// milliseconds over the total visible span, with a minimum rendered width so
// short bars stay clickable. minBarWidth zero or negative falls back to the
// MinBarWidth default.
func MapRangeToPixels(start, end time.Time, cells []Cell, cellWidth int, minBarWidth float64, zoom domain.ZoomLevel) *PixelSpan {
	if len(cells) == 0 || end.Before(start) {
		return nil
	}

	visStart, visEnd := visibleSpan(cells)
	rangeStart := dayMillis(dateutil.Normalize(start))
	rangeEnd := dayMillis(dateutil.AddDays(end, 1)) // bar covers the end day

	if rangeEnd <= visStart || rangeStart >= visEnd {
		return nil
	}

	rangeStart = math.Max(rangeStart, visStart)
	rangeEnd = math.Min(rangeEnd, visEnd)

	totalPx := float64(len(cells) * cellWidth)
	totalMs := visEnd - visStart

	if minBarWidth <= 0 {
		minBarWidth = MinBarWidth
	}

	left := (rangeStart - visStart) / totalMs * totalPx
	width := (rangeEnd - rangeStart) / totalMs * totalPx
	if width < minBarWidth {
		width = minBarWidth
	}
	return &PixelSpan{Left: left, Width: width}
}

// MapPixelToDate is the inverse mapping, used to translate drag positions
// back into dates. At daily-cell zooms it snaps to the nearest cell index so
// date -> pixel -> date round-trips exactly; at weekly/monthly cells it uses
// the same proportional formula, stable to one cell.
func MapPixelToDate(x float64, cells []Cell, cellWidth int, zoom domain.ZoomLevel) time.Time {
	if len(cells) == 0 {
		return time.Time{}
	}

	switch zoom {
	case domain.ZoomWeek, domain.ZoomMonth:
		idx := int(math.Round(x / float64(cellWidth)))
		idx = clampIndex(idx, len(cells))
		return cells[idx].Start
	default:
		visStart, visEnd := visibleSpan(cells)
		totalPx := float64(len(cells) * cellWidth)
		frac := x / totalPx
		if frac < 0 {
			frac = 0
		}
		if frac > 1 {
			frac = 1
		}
		ms := visStart + frac*(visEnd-visStart)
		days := int(math.Floor((ms - dayMillis(cells[0].Start)) / msPerDay))
		d := dateutil.AddDays(cells[0].Start, days)
		if d.After(cells[len(cells)-1].End) {
			d = cells[len(cells)-1].End
		}
		return d
	}
}

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

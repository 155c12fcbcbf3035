package timeline

import "github.com/mwhitford/planline/internal/domain"

// Window is the generation buffer around the anchor, in days before and
// after the anchored period start. Generous buffers keep the grid stable
// across ordinary scrolling without regeneration.
type Window struct {
	DaysBefore int
	DaysAfter  int
}

// DefaultWindows is the built-in per-zoom window table. Treat as immutable;
// config files overlay copies of it.
var DefaultWindows = map[domain.ZoomLevel]Window{
	domain.ZoomWeek:    {DaysBefore: 182, DaysAfter: 365},
	domain.ZoomMonth:   {DaysBefore: 365, DaysAfter: 730},
	domain.ZoomQuarter: {DaysBefore: 365, DaysAfter: 1095},
	domain.ZoomYear:    {DaysBefore: 730, DaysAfter: 1460},
}

// DefaultCellWidths is the per-zoom cell pixel width table.
var DefaultCellWidths = map[domain.ZoomLevel]int{
	domain.ZoomWeek:    48,
	domain.ZoomMonth:   28,
	domain.ZoomQuarter: 36,
	domain.ZoomYear:    64,
}

// MinBarWidth is the smallest rendered bar width in pixels, keeping
// zero-duration milestones visible and clickable.
const MinBarWidth = 20.0

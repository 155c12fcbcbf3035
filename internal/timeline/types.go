package timeline

import "time"

// Cell is one unit of the rendered grid: a day at week/month zoom, a
// Monday-start week at quarter zoom, a month at year zoom.
type Cell struct {
	// Start is the cell's first day at local midnight. End is its last day:
	// equal to Start for daily cells, the Sunday for weekly cells, the final
	// day of the month for monthly cells.
	Start time.Time
	End   time.Time

	Label string

	IsToday        bool
	IsWeekend      bool
	IsHoliday      bool
	IsCompanyEvent bool

	// Grouping keys for header construction.
	WeekNumber int
	Month      time.Month
	Year       int
}

// HeaderSpan is one group in the coarse header row: a run of consecutive
// cells sharing a month, quarter, or year.
type HeaderSpan struct {
	Label string
	Span  int
	// IsCurrent is true only for the single span containing today.
	IsCurrent bool
}

// Result is what the timeline consumer receives. Geometry must be re-derived
// from Cells on every zoom change rather than cached.
type Result struct {
	Cells           []Cell
	Headers         []HeaderSpan
	TotalPixelWidth int
}

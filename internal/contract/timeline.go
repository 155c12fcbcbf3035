package contract

import (
	"time"

	"github.com/mwhitford/planline/internal/domain"
	"github.com/mwhitford/planline/internal/timeline"
)

// TimelineRequest asks for the grid around an anchor date. Zoom defaults to
// month when empty; Anchor defaults to today.
type TimelineRequest struct {
	Anchor string
	Zoom   domain.ZoomLevel
	Today  *time.Time
}

// TimelineResponse carries everything the consumer needs; geometry must be
// re-derived from Cells after any zoom change.
type TimelineResponse struct {
	Zoom            domain.ZoomLevel
	Cells           []timeline.Cell
	Headers         []timeline.HeaderSpan
	TotalPixelWidth int
	CellWidth       int
	// MinBarWidth is the configured minimum rendered bar width in pixels;
	// zero means the generator default.
	MinBarWidth float64
}

// CriticalPathRequest runs CPM over one project snapshot.
type CriticalPathRequest struct {
	ProjectID string
}

// CriticalPathResponse lists the zero-float entity keys
// ("phase-{id}" / "subphase-{id}"). HasDependencies false means the project
// has no edges and callers skip highlighting entirely.
type CriticalPathResponse struct {
	GeneratedAt     time.Time
	Keys            []string
	HasDependencies bool
}

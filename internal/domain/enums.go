package domain

// DependencyType is the relationship between a predecessor's and a
// successor's schedule.
type DependencyType string

const (
	// FinishToStart: successor starts after predecessor finishes.
	FinishToStart DependencyType = "FS"
	// StartToStart: successor starts with predecessor's start.
	StartToStart DependencyType = "SS"
	// FinishToFinish: successor finishes with predecessor's finish.
	FinishToFinish DependencyType = "FF"
	// StartToFinish: successor finishes at predecessor's start.
	StartToFinish DependencyType = "SF"
)

// ValidDependencyTypes is the canonical set of accepted dependency type strings.
var ValidDependencyTypes = map[string]bool{
	"FS": true, "SS": true, "FF": true, "SF": true,
}

type ZoomLevel string

const (
	ZoomWeek    ZoomLevel = "week"
	ZoomMonth   ZoomLevel = "month"
	ZoomQuarter ZoomLevel = "quarter"
	ZoomYear    ZoomLevel = "year"
)

// ValidZoomLevels is the canonical set of accepted zoom level strings.
var ValidZoomLevels = map[string]bool{
	"week": true, "month": true, "quarter": true, "year": true,
}

// EntityType tags entries in a pending-update batch so the persistence
// layer knows which table each update targets.
type EntityType string

const (
	EntityProject             EntityType = "project"
	EntityPhase               EntityType = "phase"
	EntitySubphase            EntityType = "subphase"
	EntityStaffAssignment     EntityType = "staffAssignment"
	EntityEquipmentAssignment EntityType = "equipmentAssignment"
)

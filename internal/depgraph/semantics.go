package depgraph

import (
	"time"

	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/domain"
)

// RequiredStart computes where a successor must start to satisfy a
// dependency, given the predecessor's dates, the successor's duration in
// days, and the lag. The successor's end is always start + duration - 1, so
// duration is preserved by every type.
//
//	FS: predecessor end + 1 + lag
//	SS: predecessor start + lag
//	FF: (predecessor end + lag) - duration + 1
//	SF: (predecessor start + lag) - duration + 1
func RequiredStart(depType domain.DependencyType, predStart, predEnd time.Time, durationDays, lagDays int) time.Time {
	switch depType {
	case domain.StartToStart:
		return dateutil.AddDays(predStart, lagDays)
	case domain.FinishToFinish:
		return dateutil.AddDays(predEnd, lagDays-durationDays+1)
	case domain.StartToFinish:
		return dateutil.AddDays(predStart, lagDays-durationDays+1)
	default: // FS
		return dateutil.AddDays(predEnd, 1+lagDays)
	}
}

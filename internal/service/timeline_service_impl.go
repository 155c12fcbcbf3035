package service

import (
	"context"
	"fmt"
	"time"

	"github.com/mwhitford/planline/internal/config"
	"github.com/mwhitford/planline/internal/contract"
	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/domain"
	"github.com/mwhitford/planline/internal/timeline"
)

type timelineService struct {
	cfg *config.Config
}

func NewTimelineService(cfg *config.Config) TimelineService {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &timelineService{cfg: cfg}
}

func (s *timelineService) Build(ctx context.Context, req contract.TimelineRequest) (*contract.TimelineResponse, error) {
	zoom := req.Zoom
	if zoom == "" {
		zoom = domain.ZoomMonth
	}
	if !domain.ValidZoomLevels[string(zoom)] {
		return nil, fmt.Errorf("unknown zoom level %q", zoom)
	}

	anchor := time.Now()
	if req.Anchor != "" {
		var err error
		anchor, err = dateutil.ParseISO(req.Anchor)
		if err != nil {
			return nil, fmt.Errorf("parsing anchor: %w", err)
		}
	}

	opts := timeline.Options{
		Holidays:      s.cfg.HolidaySet(),
		CompanyEvents: s.cfg.CompanyEventSet(),
		Windows:       s.cfg.Windows(),
		CellWidths:    s.cfg.CellWidths(),
	}
	if req.Today != nil {
		opts.Today = *req.Today
	}

	result, err := timeline.Generate(anchor, zoom, opts)
	if err != nil {
		return nil, err
	}
	return &contract.TimelineResponse{
		Zoom:            zoom,
		Cells:           result.Cells,
		Headers:         result.Headers,
		TotalPixelWidth: result.TotalPixelWidth,
		CellWidth:       s.cfg.CellWidths()[zoom],
		MinBarWidth:     s.cfg.Timeline.MinBarWidth,
	}, nil
}

package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mwhitford/planline/internal/cli/formatter"
	"github.com/mwhitford/planline/internal/contract"
	"github.com/mwhitford/planline/internal/domain"
)

func newTimelineCmd(app *App) *cobra.Command {
	var project, zoom, anchor string
	var interactive, showCritical bool

	cmd := &cobra.Command{
		Use:   "timeline",
		Short: "Render a project's Gantt timeline",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			if interactive {
				if !app.interactive() {
					return fmt.Errorf("--interactive requires a terminal")
				}
				model := newTimelineModel(app, projectID, domain.ZoomLevel(zoom), anchor)
				_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
				return err
			}

			data, err := buildGanttData(ctx, app, projectID, domain.ZoomLevel(zoom), anchor, showCritical)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderGantt(data))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project name or ID")
	cmd.Flags().StringVar(&zoom, "zoom", "month", "Zoom level (week|month|quarter|year)")
	cmd.Flags().StringVar(&anchor, "anchor", "", "Anchor date (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Open the interactive viewer")
	cmd.Flags().BoolVar(&showCritical, "critical", false, "Highlight critical-path entities")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// buildGanttData assembles the timeline grid plus one bar row per phase and
// subphase, depth-first so the chart mirrors the tree.
func buildGanttData(ctx context.Context, app *App, projectID string, zoom domain.ZoomLevel, anchor string, withCritical bool) (formatter.GanttData, error) {
	tl, err := app.Timeline.Build(ctx, contract.TimelineRequest{Anchor: anchor, Zoom: zoom})
	if err != nil {
		return formatter.GanttData{}, err
	}
	project, err := app.Tree.Load(ctx, projectID)
	if err != nil {
		return formatter.GanttData{}, err
	}

	critical := map[string]bool{}
	if withCritical {
		resp, err := app.Critical.Compute(ctx, contract.CriticalPathRequest{ProjectID: projectID})
		if err != nil {
			return formatter.GanttData{}, err
		}
		if resp.HasDependencies {
			for _, k := range resp.Keys {
				critical[k] = true
			}
		}
	}

	rows := []formatter.GanttRow{{
		Label: project.Name,
		Start: project.StartDate,
		End:   project.EndDate,
	}}
	for _, ph := range project.Phases {
		pct, hasPct := ph.EffectiveCompletion()
		row := formatter.GanttRow{
			Label:       ph.Name,
			Indent:      1,
			Start:       ph.StartDate,
			End:         ph.EndDate,
			IsMilestone: ph.IsMilestone,
			Critical:    critical["phase-"+ph.ID],
		}
		if hasPct {
			row.Completion = &pct
		}
		rows = append(rows, row)
		rows = appendSubphaseRows(rows, ph.Subphases, 2, critical)
	}

	return formatter.GanttData{
		Zoom:        tl.Zoom,
		Cells:       tl.Cells,
		Headers:     tl.Headers,
		CellWidth:   tl.CellWidth,
		MinBarWidth: tl.MinBarWidth,
		Rows:        rows,
	}, nil
}

func appendSubphaseRows(rows []formatter.GanttRow, subs []*domain.Subphase, indent int, critical map[string]bool) []formatter.GanttRow {
	for _, sp := range subs {
		pct, hasPct := sp.EffectiveCompletion()
		row := formatter.GanttRow{
			Label:       sp.Name,
			Indent:      indent,
			Start:       sp.StartDate,
			End:         sp.EndDate,
			IsMilestone: sp.IsMilestone,
			Critical:    critical["subphase-"+sp.ID],
		}
		if hasPct {
			row.Completion = &pct
		}
		rows = append(rows, row)
		rows = appendSubphaseRows(rows, sp.Children, indent+1, critical)
	}
	return rows
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/domain"
)

func newPhaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phase",
		Short: "Manage phases",
	}
	cmd.AddCommand(
		newPhaseAddCmd(app),
		newPhaseRmCmd(app),
	)
	return cmd
}

func newPhaseAddCmd(app *App) *cobra.Command {
	var (
		project, name, start, end, color string
		milestone                        bool
		order                            int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a phase to a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			startDate, err := dateutil.ParseISO(start)
			if err != nil {
				return fmt.Errorf("parsing --start: %w", err)
			}
			endDate, err := dateutil.ParseISO(end)
			if err != nil {
				return fmt.Errorf("parsing --end: %w", err)
			}

			ph := &domain.Phase{
				ProjectID:   projectID,
				Name:        name,
				StartDate:   startDate,
				EndDate:     endDate,
				Color:       color,
				IsMilestone: milestone,
				OrderIndex:  order,
			}
			if err := app.Phases.Create(ctx, ph); err != nil {
				return err
			}

			loggerFrom(ctx).Debug("phase created", "id", ph.ID, "project", projectID)
			fmt.Fprintf(cmd.OutOrStdout(), "Created phase %q (%s)\n", ph.Name, ph.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project name or ID")
	cmd.Flags().StringVar(&name, "name", "", "Phase name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&color, "color", "", "Display color (hex)")
	cmd.Flags().BoolVar(&milestone, "milestone", false, "Mark as milestone")
	cmd.Flags().IntVar(&order, "order", 0, "Display order index")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newPhaseRmCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "rm <phase>",
		Short: "Delete a phase and its subphases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			match, err := resolveEntity(ctx, app, projectID, args[0])
			if err != nil {
				return err
			}
			if match.Type != domain.EntityPhase {
				return fmt.Errorf("%q is a subphase, not a phase", match.Name)
			}
			if err := app.Phases.Delete(ctx, match.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted phase %q\n", match.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project name or ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

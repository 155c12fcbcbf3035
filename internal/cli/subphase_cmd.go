package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/domain"
)

func newSubphaseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "subphase",
		Short: "Manage subphases",
	}
	cmd.AddCommand(
		newSubphaseAddCmd(app),
		newSubphaseRmCmd(app),
	)
	return cmd
}

func newSubphaseAddCmd(app *App) *cobra.Command {
	var (
		project, phase, parent, name, start, end, color string
		milestone                                       bool
		completion                                      float64
		order                                           int
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a subphase under a phase or another subphase",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			sp := &domain.Subphase{
				Name:        name,
				Color:       color,
				IsMilestone: milestone,
				OrderIndex:  order,
			}

			if parent != "" {
				match, err := resolveEntity(ctx, app, projectID, parent)
				if err != nil {
					return err
				}
				if match.Type != domain.EntitySubphase {
					return fmt.Errorf("--parent must name a subphase; %q is a phase", match.Name)
				}
				parentSub, err := app.Subphases.GetByID(ctx, match.ID)
				if err != nil {
					return err
				}
				sp.PhaseID = parentSub.PhaseID
				sp.ParentSubphaseID = &parentSub.ID
			} else {
				match, err := resolveEntity(ctx, app, projectID, phase)
				if err != nil {
					return err
				}
				if match.Type != domain.EntityPhase {
					return fmt.Errorf("--phase must name a phase; %q is a subphase (use --parent)", match.Name)
				}
				sp.PhaseID = match.ID
			}

			sp.StartDate, err = dateutil.ParseISO(start)
			if err != nil {
				return fmt.Errorf("parsing --start: %w", err)
			}
			sp.EndDate, err = dateutil.ParseISO(end)
			if err != nil {
				return fmt.Errorf("parsing --end: %w", err)
			}
			if cmd.Flags().Changed("completion") {
				sp.Completion = &completion
			}

			if err := app.Subphases.Create(ctx, sp); err != nil {
				return err
			}

			loggerFrom(ctx).Debug("subphase created", "id", sp.ID, "phase", sp.PhaseID)
			fmt.Fprintf(cmd.OutOrStdout(), "Created subphase %q (%s)\n", sp.Name, sp.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project name or ID")
	cmd.Flags().StringVar(&phase, "phase", "", "Parent phase name or ID")
	cmd.Flags().StringVar(&parent, "parent", "", "Parent subphase name or ID (nested)")
	cmd.Flags().StringVar(&name, "name", "", "Subphase name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&color, "color", "", "Display color (hex)")
	cmd.Flags().BoolVar(&milestone, "milestone", false, "Mark as milestone")
	cmd.Flags().Float64Var(&completion, "completion", 0, "Completion percentage (0-100)")
	cmd.Flags().IntVar(&order, "order", 0, "Display order index")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newSubphaseRmCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "rm <subphase>",
		Short: "Delete a subphase and its children",
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
			if match.Type != domain.EntitySubphase {
				return fmt.Errorf("%q is a phase, not a subphase", match.Name)
			}
			if err := app.Subphases.Delete(ctx, match.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted subphase %q\n", match.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project name or ID")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwhitford/planline/internal/cli/formatter"
	"github.com/mwhitford/planline/internal/contract"
	"github.com/mwhitford/planline/internal/dateutil"
	"github.com/mwhitford/planline/internal/domain"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects",
	}
	cmd.AddCommand(
		newProjectAddCmd(app),
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectRmCmd(app),
	)
	return cmd
}

func newProjectAddCmd(app *App) *cobra.Command {
	var name, start, end string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			startDate, err := dateutil.ParseISO(start)
			if err != nil {
				return fmt.Errorf("parsing --start: %w", err)
			}
			endDate, err := dateutil.ParseISO(end)
			if err != nil {
				return fmt.Errorf("parsing --end: %w", err)
			}

			p := &domain.Project{Name: name, StartDate: startDate, EndDate: endDate}
			if err := app.Projects.Create(ctx, p); err != nil {
				return err
			}

			loggerFrom(ctx).Debug("project created", "id", p.ID)
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %q (%s)\n", p.Name, p.ID[:8])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Project name")
	cmd.Flags().StringVar(&start, "start", "", "Start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "End date (YYYY-MM-DD)")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := app.Projects.List(cmd.Context())
			if err != nil {
				return err
			}
			if len(projects) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No projects. Create one with: planline project add"))
				return nil
			}

			headers := []string{"ID", "Name", "Start", "End", "Days"}
			rows := make([][]string, 0, len(projects))
			for _, p := range projects {
				rows = append(rows, []string{
					p.ID[:8],
					p.Name,
					dateutil.FormatISO(p.StartDate),
					dateutil.FormatISO(p.EndDate),
					fmt.Sprintf("%d", dateutil.DurationDays(p.StartDate, p.EndDate)),
				})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(headers, rows))
			return nil
		},
	}
}

func newProjectShowCmd(app *App) *cobra.Command {
	var showCritical bool

	cmd := &cobra.Command{
		Use:   "show <project>",
		Short: "Show a project's phase tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			project, err := app.Tree.Load(ctx, projectID)
			if err != nil {
				return err
			}

			critical := map[string]bool{}
			if showCritical {
				resp, err := app.Critical.Compute(ctx, contract.CriticalPathRequest{ProjectID: projectID})
				if err != nil {
					return err
				}
				if resp.HasDependencies {
					for _, k := range resp.Keys {
						critical[k] = true
					}
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.RenderProjectSummary(project))
			fmt.Fprintln(out)
			fmt.Fprint(out, formatter.RenderProjectTree(project, critical))
			return nil
		},
	}

	cmd.Flags().BoolVar(&showCritical, "critical", false, "Highlight critical-path entities")

	return cmd
}

func newProjectRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <project>",
		Short: "Delete a project and everything under it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			if err := app.Projects.Delete(ctx, projectID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", projectID[:8])
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mwhitford/planline/internal/contract"
	"github.com/mwhitford/planline/internal/domain"
)

func newDepCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage typed dependencies between phases and subphases",
	}
	cmd.AddCommand(
		newDepAddCmd(app),
		newDepRmCmd(app),
	)
	return cmd
}

func newDepAddCmd(app *App) *cobra.Command {
	var project, from, to, depType string
	var lag int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a dependency edge (predecessor → successor)",
		Long: "Creates a typed edge from --from (predecessor) to --to (successor).\n" +
			"FS and SS edges snap the successor into position at creation time and\n" +
			"cascade through downstream dependents. Run without --from/--to on a\n" +
			"terminal to fill the edge in interactively.",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}

			if (from == "" || to == "") && app.interactive() {
				if err := runDepForm(&from, &to, &depType, &lag); err != nil {
					return err
				}
			}
			if from == "" || to == "" {
				return fmt.Errorf("--from and --to are required")
			}

			pred, err := resolveEntity(ctx, app, projectID, from)
			if err != nil {
				return err
			}
			succ, err := resolveEntity(ctx, app, projectID, to)
			if err != nil {
				return err
			}

			resp, err := app.Deps.Add(ctx, contract.AddDependencyRequest{
				ProjectID:     projectID,
				PredecessorID: pred.ID,
				SuccessorID:   succ.ID,
				Type:          domain.DependencyType(depType),
				LagDays:       lag,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Added %s edge %s → %s (lag %d)\n", depType, pred.Name, succ.Name, lag)
			printCascadeOutcome(out, resp.Updates, resp.Saved, resp.Failures)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project name or ID")
	cmd.Flags().StringVar(&from, "from", "", "Predecessor phase/subphase")
	cmd.Flags().StringVar(&to, "to", "", "Successor phase/subphase")
	cmd.Flags().StringVar(&depType, "type", "FS", "Dependency type (FS|SS|FF|SF)")
	cmd.Flags().IntVar(&lag, "lag", 0, "Lag in days (may be negative)")
	_ = cmd.MarkFlagRequired("project")

	return cmd
}

// runDepForm collects the edge fields interactively.
func runDepForm(from, to, depType *string, lag *int) error {
	lagStr := strconv.Itoa(*lag)
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Predecessor (name or ID)").
				Value(from),
			huh.NewInput().
				Title("Successor (name or ID)").
				Value(to),
			huh.NewSelect[string]().
				Title("Dependency type").
				Options(
					huh.NewOption("Finish to Start (FS)", "FS"),
					huh.NewOption("Start to Start (SS)", "SS"),
					huh.NewOption("Finish to Finish (FF)", "FF"),
					huh.NewOption("Start to Finish (SF)", "SF"),
				).
				Value(depType),
			huh.NewInput().
				Title("Lag days").
				Placeholder("0").
				Value(&lagStr).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}
					_, err := strconv.Atoi(s)
					return err
				}),
		),
	).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return err
	}
	if lagStr != "" {
		*lag, _ = strconv.Atoi(lagStr)
	}
	return nil
}

func newDepRmCmd(app *App) *cobra.Command {
	var project, from, to string

	cmd := &cobra.Command{
		Use:   "rm",
		Short: "Remove a dependency edge",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			projectID, err := resolveProjectID(ctx, app, project)
			if err != nil {
				return err
			}
			pred, err := resolveEntity(ctx, app, projectID, from)
			if err != nil {
				return err
			}
			succ, err := resolveEntity(ctx, app, projectID, to)
			if err != nil {
				return err
			}

			err = app.Deps.Remove(ctx, contract.RemoveDependencyRequest{
				ProjectID:     projectID,
				PredecessorID: pred.ID,
				SuccessorID:   succ.ID,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed edge %s → %s\n", pred.Name, succ.Name)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project name or ID")
	cmd.Flags().StringVar(&from, "from", "", "Predecessor phase/subphase")
	cmd.Flags().StringVar(&to, "to", "", "Successor phase/subphase")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

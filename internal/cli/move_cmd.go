package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mwhitford/planline/internal/cli/formatter"
	"github.com/mwhitford/planline/internal/contract"
)

func newMoveCmd(app *App) *cobra.Command {
	var project, start, end string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "move <phase-or-subphase>",
		Short: "Move or resize an entity and cascade the edit",
		Long: "Applies a committed date edit to one phase or subphase. A move (same\n" +
			"duration) carries the whole subtree along; a resize leaves children in\n" +
			"place. Parent and project bounds are re-derived to contain the edit.\n" +
			"Dependency edges do not re-align existing dates; they snap only when\n" +
			"the edge is created. --dry-run previews the cascade without saving.",
		Args: cobra.ExactArgs(1),
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

			resp, err := app.Schedule.Move(ctx, contract.MoveRequest{
				ProjectID:  projectID,
				EntityType: match.Type,
				EntityID:   match.ID,
				NewStart:   start,
				NewEnd:     end,
				DryRun:     dryRun,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintln(out, formatter.Dim("Dry run: nothing persisted."))
			}
			fmt.Fprintf(out, "Moved %q to %s → %s\n", match.Name, start, end)
			printCascadeOutcome(out, resp.Updates, resp.Saved, resp.Failures)
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project name or ID")
	cmd.Flags().StringVar(&start, "start", "", "New start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&end, "end", "", "New end date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute the cascade without saving")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

// printCascadeOutcome lists every entity the cascade touched and any
// per-item save failures.
func printCascadeOutcome(out io.Writer, updates []contract.PendingUpdate, saved int, failures []contract.SaveFailure) {
	if len(updates) == 0 {
		return
	}

	headers := []string{"Entity", "ID", "Start", "End"}
	rows := make([][]string, 0, len(updates))
	for _, u := range updates {
		id := u.ID
		if len(id) > 8 {
			id = id[:8]
		}
		rows = append(rows, []string{string(u.EntityType), id, u.StartDate, u.EndDate})
	}
	fmt.Fprintf(out, "\nCascade touched %d entities (%d saved):\n", len(updates), saved)
	fmt.Fprint(out, formatter.RenderTable(headers, rows))

	for _, f := range failures {
		fmt.Fprintf(out, "%s\n", formatter.StyleRed.Render(
			fmt.Sprintf("  FAILED %s %s: %s", f.Update.EntityType, f.Update.ID, f.Err)))
	}
}

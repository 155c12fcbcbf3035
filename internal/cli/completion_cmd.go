package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwhitford/planline/internal/cli/formatter"
)

func newCompletionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "completion <project>",
		Short: "Show the completion rollup for a project",
		Long: "Completion is stored on leaf entities and rolls up read-side: a\n" +
			"parent's percentage is the duration-weighted average of its children.",
		Args: cobra.ExactArgs(1),
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

			out := cmd.OutOrStdout()
			if pct, ok := project.EffectiveCompletion(); ok {
				fmt.Fprintf(out, "%s  %s\n", formatter.Bold(project.Name),
					formatter.StyleGreen.Render(fmt.Sprintf("%.1f%%", pct)))
			} else {
				fmt.Fprintf(out, "%s  %s\n", formatter.Bold(project.Name),
					formatter.Dim("no completion data"))
			}

			fmt.Fprint(out, formatter.RenderProjectTree(project, nil))
			return nil
		},
	}
}

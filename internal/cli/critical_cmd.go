package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwhitford/planline/internal/cli/formatter"
	"github.com/mwhitford/planline/internal/contract"
)

func newCriticalCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "critical <project>",
		Short: "Compute the critical path for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			projectID, err := resolveProjectID(ctx, app, args[0])
			if err != nil {
				return err
			}
			resp, err := app.Critical.Compute(ctx, contract.CriticalPathRequest{ProjectID: projectID})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !resp.HasDependencies {
				fmt.Fprintln(out, formatter.Dim("No dependencies; critical path not applicable."))
				return nil
			}

			critical := make(map[string]bool, len(resp.Keys))
			for _, k := range resp.Keys {
				critical[k] = true
			}

			project, err := app.Tree.Load(ctx, projectID)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, formatter.Header("Critical Path"))
			fmt.Fprintf(out, "  %d of the project's entities have zero float.\n\n", len(resp.Keys))
			fmt.Fprint(out, formatter.RenderProjectTree(project, critical))
			return nil
		},
	}
}
